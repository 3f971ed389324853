package service

import (
	"context"
	"testing"

	"lms_backend/internal/repository"
)

func TestLessonRedaction(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	lesson := seedLesson(t, db, course.ID, "intro")

	enrollments := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db), nil)
	svc := NewLessonService(repository.NewLessonRepository(db), repository.NewCourseRepository(db), enrollments, &StorageService{})
	ctx := context.Background()

	// Not enrolled: video URL stripped.
	got, err := svc.GetByID(ctx, lesson.ID, 1, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.VideoURL != "" {
		t.Errorf("videoUrl = %q, want empty for non-enrolled caller", got.VideoURL)
	}

	// Enrolled: full record.
	seedEnrollment(t, db, 1, course.ID)
	got, err = svc.GetByID(ctx, lesson.ID, 1, false)
	if err != nil {
		t.Fatalf("get enrolled: %v", err)
	}
	if got.VideoURL == "" {
		t.Error("videoUrl empty for enrolled caller")
	}

	// Admin: full record without enrollment.
	got, err = svc.GetByID(ctx, lesson.ID, 2, true)
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if got.VideoURL == "" {
		t.Error("videoUrl empty for admin")
	}

	// Anonymous list: all stripped.
	lessons, err := svc.ListByCourse(ctx, course.ID, 0, false, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lessons) != 1 || lessons[0].VideoURL != "" {
		t.Errorf("anonymous list = %+v, want stripped video URLs", lessons)
	}
}
