package service

import (
	"context"
	"errors"
	"testing"

	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

func TestEnrollAndWithdraw(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db), nil)
	ctx := context.Background()

	if _, err := svc.Enroll(ctx, 1, 999); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("missing course: err = %v, want ErrCourseNotFound", err)
	}

	enrollment, err := svc.Enroll(ctx, 1, course.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if enrollment.UserID != 1 || enrollment.CourseID != course.ID {
		t.Errorf("enrollment = %+v", enrollment)
	}

	if _, err := svc.Enroll(ctx, 1, course.ID); !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Errorf("repeat enroll: err = %v, want ErrAlreadyEnrolled", err)
	}

	enrolled, err := svc.IsEnrolled(ctx, 1, course.ID)
	if err != nil || !enrolled {
		t.Errorf("IsEnrolled = %v, %v; want true", enrolled, err)
	}

	if err := svc.Withdraw(ctx, 1, course.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if err := svc.Withdraw(ctx, 1, course.ID); !errors.Is(err, util.ErrNotEnrolled) {
		t.Errorf("repeat withdraw: err = %v, want ErrNotEnrolled", err)
	}
}

func TestReenrollAfterWithdraw(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db), nil)
	ctx := context.Background()

	if _, err := svc.Enroll(ctx, 1, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := svc.Withdraw(ctx, 1, course.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// The unique index must not retain the withdrawn row.
	if _, err := svc.Enroll(ctx, 1, course.ID); err != nil {
		t.Fatalf("re-enroll after withdraw: %v", err)
	}
	enrolled, err := svc.IsEnrolled(ctx, 1, course.ID)
	if err != nil || !enrolled {
		t.Errorf("IsEnrolled = %v, %v; want true", enrolled, err)
	}
}

func TestIsEnrolledAnonymous(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db), nil)

	// A zero user ID never reads as enrolled.
	enrolled, err := svc.IsEnrolled(context.Background(), 0, course.ID)
	if err != nil {
		t.Fatalf("IsEnrolled: %v", err)
	}
	if enrolled {
		t.Error("anonymous caller reads as enrolled")
	}
}
