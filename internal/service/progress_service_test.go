package service

import (
	"context"
	"errors"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

func TestCourseProgressRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newProgressService(db)
	ctx := context.Background()

	if _, err := svc.GetCourseProgress(ctx, 1, course.ID); !errors.Is(err, util.ErrNotEnrolled) {
		t.Errorf("unenrolled: err = %v, want ErrNotEnrolled", err)
	}
	if _, err := svc.GetCourseProgress(ctx, 1, 999); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("missing course: err = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseProgressEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)

	progress, err := svc.GetCourseProgress(context.Background(), 1, course.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.LessonProgress != "0%" {
		t.Errorf("lessonProgress = %q, want \"0%%\"", progress.LessonProgress)
	}
	if progress.TotalLessons != 0 || progress.CompletedLessons != 0 || progress.TotalQuizzes != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", progress.TotalLessons, progress.CompletedLessons, progress.TotalQuizzes)
	}
	if progress.LatestQuizScore != nil {
		t.Errorf("latestQuizScore = %v, want nil", *progress.LatestQuizScore)
	}
}

func TestCourseProgressCountsOnlyThisCourse(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	other := seedCourse(t, db)
	seedEnrollment(t, db, 1, course.ID)

	l1 := seedLesson(t, db, course.ID, "one")
	l2 := seedLesson(t, db, course.ID, "two")
	seedLesson(t, db, course.ID, "three")
	foreign := seedLesson(t, db, other.ID, "foreign")

	// Two completions in this course, one in another.
	for _, id := range []uint{l1.ID, l2.ID, foreign.ID} {
		if err := db.Create(&model.LessonCompletion{UserID: 1, LessonID: id}).Error; err != nil {
			t.Fatalf("seed completion: %v", err)
		}
	}

	svc := newProgressService(db)
	progress, err := svc.GetCourseProgress(context.Background(), 1, course.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.TotalLessons != 3 || progress.CompletedLessons != 2 {
		t.Errorf("lessons = %d/%d, want 2 of 3", progress.CompletedLessons, progress.TotalLessons)
	}
	// 2 of 3 is 66.67%, rounded.
	if progress.LessonProgress != "67%" {
		t.Errorf("lessonProgress = %q, want \"67%%\"", progress.LessonProgress)
	}
}

func TestCourseProgressUsesFirstQuizOnly(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	seedEnrollment(t, db, 1, course.ID)
	first, firstQuestions, firstCorrect, _ := seedQuiz(t, db, course.ID, 1)
	second, secondQuestions, secondCorrect, _ := seedQuiz(t, db, course.ID, 1)
	_ = first

	attempts := newAttemptService(db)
	svc := newProgressService(db)
	ctx := context.Background()

	// An attempt on the second quiz leaves the quiz signal empty.
	if _, err := attempts.Submit(1, second.ID, submitAnswers(secondQuestions, secondCorrect)); err != nil {
		t.Fatalf("submit second quiz: %v", err)
	}
	progress, err := svc.GetCourseProgress(ctx, 1, course.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.TotalQuizzes != 2 {
		t.Errorf("totalQuizzes = %d, want 2", progress.TotalQuizzes)
	}
	if progress.LatestQuizScore != nil {
		t.Errorf("latestQuizScore = %v, want nil before first-quiz attempt", *progress.LatestQuizScore)
	}

	// An attempt on the first quiz sets it.
	if _, err := attempts.Submit(1, first.ID, submitAnswers(firstQuestions, firstCorrect)); err != nil {
		t.Fatalf("submit first quiz: %v", err)
	}
	progress, err = svc.GetCourseProgress(ctx, 1, course.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.LatestQuizScore == nil || *progress.LatestQuizScore != 100 {
		t.Errorf("latestQuizScore = %v, want 100", progress.LatestQuizScore)
	}
	if progress.LastActivity == nil {
		t.Error("lastActivity is nil after an attempt")
	}
}

func TestMarkLessonComplete(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	lesson := seedLesson(t, db, course.ID, "one")
	svc := newProgressService(db)
	ctx := context.Background()

	if err := svc.MarkLessonComplete(ctx, 1, lesson.ID); !errors.Is(err, util.ErrNotEnrolled) {
		t.Errorf("unenrolled: err = %v, want ErrNotEnrolled", err)
	}
	if err := svc.MarkLessonComplete(ctx, 1, 999); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("missing lesson: err = %v, want ErrLessonNotFound", err)
	}

	seedEnrollment(t, db, 1, course.ID)
	if err := svc.MarkLessonComplete(ctx, 1, lesson.ID); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	// Repeat is a no-op, not an error.
	if err := svc.MarkLessonComplete(ctx, 1, lesson.ID); err != nil {
		t.Fatalf("repeat completion: %v", err)
	}

	var count int64
	db.Model(&model.LessonCompletion{}).Where("user_id = ? AND lesson_id = ?", 1, lesson.ID).Count(&count)
	if count != 1 {
		t.Errorf("completion rows = %d, want 1", count)
	}
}

func TestUserProgressListsEnrolledCourses(t *testing.T) {
	db := newTestDB(t)
	first := seedCourse(t, db)
	second := seedCourse(t, db)
	seedCourse(t, db) // not enrolled
	seedEnrollment(t, db, 1, first.ID)
	seedEnrollment(t, db, 1, second.ID)

	lesson := seedLesson(t, db, first.ID, "one")
	if err := db.Create(&model.LessonCompletion{UserID: 1, LessonID: lesson.ID}).Error; err != nil {
		t.Fatalf("seed completion: %v", err)
	}

	svc := newProgressService(db)
	progress, err := svc.GetUserProgress(1)
	if err != nil {
		t.Fatalf("user progress: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("rows = %d, want 2", len(progress))
	}

	byCourse := map[uint]UserCourseProgress{}
	for _, p := range progress {
		byCourse[p.CourseID] = p
	}
	if p := byCourse[first.ID]; p.CompletedLessons != 1 || p.LessonProgress != "100%" {
		t.Errorf("first course = %d completed, %q; want 1, \"100%%\"", p.CompletedLessons, p.LessonProgress)
	}
	if p := byCourse[second.ID]; p.TotalLessons != 0 || p.LessonProgress != "0%" {
		t.Errorf("second course = %d lessons, %q; want 0, \"0%%\"", p.TotalLessons, p.LessonProgress)
	}
}
