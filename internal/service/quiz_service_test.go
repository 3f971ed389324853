package service

import (
	"errors"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

func TestQuizDetailNestsQuestionsAndOptions(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, _, _, _ := seedQuiz(t, db, course.ID, 2)
	svc := NewQuizService(repository.NewQuizRepository(db), repository.NewCourseRepository(db))

	detail, err := svc.GetDetail(quiz.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(detail.Questions))
	}
	for _, q := range detail.Questions {
		if len(q.Options) != 2 {
			t.Errorf("question %d: options = %d, want 2", q.ID, len(q.Options))
		}
	}

	if _, err := svc.GetDetail(999); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("missing quiz: err = %v, want ErrQuizNotFound", err)
	}
}

func TestQuestionReads(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, _, _ := seedQuiz(t, db, course.ID, 3)
	svc := NewQuizService(repository.NewQuizRepository(db), repository.NewCourseRepository(db))

	questions, err := svc.ListQuestions(quiz.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(questions))
	}

	one, err := svc.GetQuestion(questionIDs[0])
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if len(one.Options) != 2 {
		t.Errorf("options = %d, want 2", len(one.Options))
	}

	if _, err := svc.ListQuestions(999); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("missing quiz: err = %v, want ErrQuizNotFound", err)
	}
	if _, err := svc.GetQuestion(999); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("missing question: err = %v, want ErrQuestionNotFound", err)
	}
}

func TestQuizDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, _, _, _ := seedQuiz(t, db, course.ID, 2)
	svc := NewQuizService(repository.NewQuizRepository(db), repository.NewCourseRepository(db))

	if err := svc.Delete(quiz.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var questions, options int64
	db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questions)
	db.Model(&model.Option{}).Count(&options)
	if questions != 0 || options != 0 {
		t.Errorf("leftover questions=%d options=%d after delete", questions, options)
	}
}

func TestUpdateOptionPreservesAttemptSnapshots(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 1)
	quizzes := NewQuizService(repository.NewQuizRepository(db), repository.NewCourseRepository(db))
	attempts := newAttemptService(db)

	result, err := attempts.Submit(1, quiz.ID, submitAnswers(questionIDs, correctIDs))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 100 {
		t.Fatalf("score = %d, want 100", result.Score)
	}

	// Flipping the option's correctness does not rewrite history.
	wrong := false
	if _, err := quizzes.UpdateOption(correctIDs[0], UpdateOptionInput{IsCorrect: &wrong}); err != nil {
		t.Fatalf("update option: %v", err)
	}

	var answer model.QuizAttemptAnswer
	if err := db.Where("attempt_id = ?", result.AttemptID).First(&answer).Error; err != nil {
		t.Fatalf("load answer: %v", err)
	}
	if !answer.IsCorrect {
		t.Error("answer snapshot flipped after option edit")
	}
}
