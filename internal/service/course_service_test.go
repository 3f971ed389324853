package service

import (
	"errors"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

func TestCourseDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	lesson := seedLesson(t, db, course.ID, "one")
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 1)
	seedEnrollment(t, db, 1, course.ID)
	if err := db.Create(&model.LessonCompletion{UserID: 1, LessonID: lesson.ID}).Error; err != nil {
		t.Fatalf("seed completion: %v", err)
	}

	attempts := newAttemptService(db)
	if _, err := attempts.Submit(1, quiz.ID, submitAnswers(questionIDs, correctIDs)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	svc := NewCourseService(repository.NewCourseRepository(db))
	if err := svc.Delete(course.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for table, query := range map[string]*gorm.DB{
		"lessons":     db.Model(&model.Lesson{}).Where("course_id = ?", course.ID),
		"quizzes":     db.Model(&model.Quiz{}).Where("course_id = ?", course.ID),
		"questions":   db.Model(&model.Question{}),
		"options":     db.Model(&model.Option{}),
		"attempts":    db.Model(&model.QuizAttempt{}),
		"answers":     db.Model(&model.QuizAttemptAnswer{}),
		"enrollments": db.Model(&model.Enrollment{}).Where("course_id = ?", course.ID),
		"completions": db.Model(&model.LessonCompletion{}),
	} {
		var n int64
		if err := query.Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s left after course delete: %d rows", table, n)
		}
	}

	if _, err := svc.GetByID(course.ID); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("get deleted course: err = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseListSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(repository.NewCourseRepository(db))

	for _, title := range []string{"Go Fundamentals", "Advanced Go", "SQL Basics"} {
		if _, err := svc.Create(CreateCourseInput{Title: title, Description: "d", Instructor: "i"}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	courses, total, err := svc.List(1, 10, "Go")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(courses) != 2 {
		t.Errorf("search results = %d/%d, want 2", len(courses), total)
	}

	_, total, err = svc.List(1, 10, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}
