package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A second pooled connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCourse(t *testing.T, db *gorm.DB) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:       "Intro to Databases",
		Description: "Relational fundamentals.",
		Instructor:  "Sam Ortiz",
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func seedLesson(t *testing.T, db *gorm.DB, courseID uint, title string) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		CourseID: courseID,
		Title:    title,
		VideoURL: "https://videos.example.com/" + title + ".mp4",
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return lesson
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	if err := db.Create(&model.Enrollment{UserID: userID, CourseID: courseID}).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}

// seedQuiz creates a quiz with n questions, each carrying one correct and one
// wrong option. Returns the quiz plus per-question correct and wrong option
// IDs in question order.
func seedQuiz(t *testing.T, db *gorm.DB, courseID uint, n int) (*model.Quiz, []uint, []uint, []uint) {
	t.Helper()

	quiz := &model.Quiz{CourseID: courseID, Title: "Checkpoint"}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}

	var questionIDs, correctIDs, wrongIDs []uint
	for i := 0; i < n; i++ {
		q := &model.Question{QuizID: quiz.ID, Text: "Question"}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}

		correct := &model.Option{QuestionID: q.ID, Text: "right", IsCorrect: true}
		wrong := &model.Option{QuestionID: q.ID, Text: "wrong"}
		if err := db.Create(correct).Error; err != nil {
			t.Fatalf("seed option: %v", err)
		}
		if err := db.Create(wrong).Error; err != nil {
			t.Fatalf("seed option: %v", err)
		}

		questionIDs = append(questionIDs, q.ID)
		correctIDs = append(correctIDs, correct.ID)
		wrongIDs = append(wrongIDs, wrong.ID)
	}
	return quiz, questionIDs, correctIDs, wrongIDs
}

func newAttemptService(db *gorm.DB) *AttemptService {
	return NewAttemptService(repository.NewAttemptRepository(db), repository.NewQuizRepository(db), db)
}

func newProgressService(db *gorm.DB) *ProgressService {
	enrollments := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db), nil)
	return NewProgressService(
		repository.NewLessonRepository(db),
		repository.NewQuizRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewCompletionRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		enrollments,
	)
}
