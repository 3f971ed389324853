package service

import (
	"errors"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

func submitAnswers(questionIDs, optionIDs []uint) SubmitAttemptInput {
	answers := make([]AnswerInput, len(questionIDs))
	for i := range questionIDs {
		answers[i] = AnswerInput{QuestionID: questionIDs[i], SelectedOptionID: optionIDs[i]}
	}
	return SubmitAttemptInput{Answers: answers}
}

func TestSubmitScoresAndPersists(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, wrongIDs := seedQuiz(t, db, course.ID, 4)
	svc := newAttemptService(db)

	// 3 of 4 correct.
	picked := []uint{correctIDs[0], correctIDs[1], correctIDs[2], wrongIDs[3]}
	result, err := svc.Submit(1, quiz.ID, submitAnswers(questionIDs, picked))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Score != 75 {
		t.Errorf("score = %d, want 75", result.Score)
	}
	if result.CorrectAnswers != 3 || result.TotalQuestions != 4 {
		t.Errorf("correct/total = %d/%d, want 3/4", result.CorrectAnswers, result.TotalQuestions)
	}

	var attempt model.QuizAttempt
	if err := db.First(&attempt, result.AttemptID).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if attempt.Score != 75 || attempt.AttemptNumber != 1 {
		t.Errorf("persisted score/number = %d/%d, want 75/1", attempt.Score, attempt.AttemptNumber)
	}

	var answers []model.QuizAttemptAnswer
	if err := db.Where("attempt_id = ?", result.AttemptID).Find(&answers).Error; err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if len(answers) != 4 {
		t.Fatalf("answer rows = %d, want 4", len(answers))
	}
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != 3 {
		t.Errorf("correct snapshots = %d, want 3", correct)
	}
}

func TestSubmitRoundsHalfAwayFromZero(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, wrongIDs := seedQuiz(t, db, course.ID, 8)
	svc := newAttemptService(db)

	// 5 of 8 correct is 62.5%, which rounds up.
	picked := make([]uint, 8)
	for i := 0; i < 5; i++ {
		picked[i] = correctIDs[i]
	}
	for i := 5; i < 8; i++ {
		picked[i] = wrongIDs[i]
	}

	result, err := svc.Submit(1, quiz.ID, submitAnswers(questionIDs, picked))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 63 {
		t.Errorf("score = %d, want 63", result.Score)
	}
}

func TestSubmitRejectsWrongAnswerCount(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 3)
	svc := newAttemptService(db)

	short := submitAnswers(questionIDs[:2], correctIDs[:2])
	if _, err := svc.Submit(1, quiz.ID, short); !errors.Is(err, util.ErrAnswerCountMismatch) {
		t.Errorf("short set: err = %v, want ErrAnswerCountMismatch", err)
	}

	long := submitAnswers(questionIDs, correctIDs)
	long.Answers = append(long.Answers, AnswerInput{QuestionID: questionIDs[0], SelectedOptionID: correctIDs[0]})
	if _, err := svc.Submit(1, quiz.ID, long); !errors.Is(err, util.ErrAnswerCountMismatch) {
		t.Errorf("long set: err = %v, want ErrAnswerCountMismatch", err)
	}

	var count int64
	db.Model(&model.QuizAttempt{}).Count(&count)
	if count != 0 {
		t.Errorf("attempt rows after rejected submissions = %d, want 0", count)
	}
}

func TestSubmitRejectsEmptyAnswerSet(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, _, _, _ := seedQuiz(t, db, course.ID, 0)
	svc := newAttemptService(db)

	// With no questions the count comparison is vacuous; the empty set is
	// rejected before it.
	if _, err := svc.Submit(1, quiz.ID, SubmitAttemptInput{Answers: []AnswerInput{}}); !errors.Is(err, util.ErrAnswerCountMismatch) {
		t.Errorf("empty set: err = %v, want ErrAnswerCountMismatch", err)
	}

	var count int64
	db.Model(&model.QuizAttempt{}).Count(&count)
	if count != 0 {
		t.Errorf("attempt rows after rejected submission = %d, want 0", count)
	}
}

func TestSubmitRejectsForeignQuestion(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 2)
	_, otherQuestionIDs, otherCorrectIDs, _ := seedQuiz(t, db, course.ID, 1)
	svc := newAttemptService(db)

	mixed := submitAnswers(
		[]uint{questionIDs[0], otherQuestionIDs[0]},
		[]uint{correctIDs[0], otherCorrectIDs[0]},
	)
	if _, err := svc.Submit(1, quiz.ID, mixed); !errors.Is(err, util.ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}
}

func TestSubmitUnknownOptionScoresIncorrect(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 2)
	svc := newAttemptService(db)

	// An option ID outside the question's option set records as incorrect.
	picked := []uint{correctIDs[0], 99999}
	result, err := svc.Submit(1, quiz.ID, submitAnswers(questionIDs, picked))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 50 || result.CorrectAnswers != 1 {
		t.Errorf("score/correct = %d/%d, want 50/1", result.Score, result.CorrectAnswers)
	}
}

func TestSubmitQuizNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	_, err := svc.Submit(1, 42, SubmitAttemptInput{Answers: []AnswerInput{}})
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestAttemptNumbersIncrementPerUserAndQuiz(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 2)
	svc := newAttemptService(db)

	input := submitAnswers(questionIDs, correctIDs)
	for i := 1; i <= 3; i++ {
		result, err := svc.Submit(7, quiz.ID, input)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		var attempt model.QuizAttempt
		if err := db.First(&attempt, result.AttemptID).Error; err != nil {
			t.Fatalf("load attempt: %v", err)
		}
		if attempt.AttemptNumber != i {
			t.Errorf("attempt %d: number = %d", i, attempt.AttemptNumber)
		}
	}

	// A different user starts at 1.
	result, err := svc.Submit(8, quiz.ID, input)
	if err != nil {
		t.Fatalf("submit other user: %v", err)
	}
	var attempt model.QuizAttempt
	if err := db.First(&attempt, result.AttemptID).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if attempt.AttemptNumber != 1 {
		t.Errorf("other user's first attempt number = %d, want 1", attempt.AttemptNumber)
	}

	attempts, err := svc.GetQuizAttempts(7, quiz.ID)
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 3 || attempts[0].AttemptNumber != 3 {
		t.Errorf("attempts = %d rows, head number %d; want 3 rows, head 3", len(attempts), attempts[0].AttemptNumber)
	}
}

func TestSubmitRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 2)
	svc := newAttemptService(db)

	// Force the answer insert to fail mid-transaction.
	if err := db.Migrator().DropTable(&model.QuizAttemptAnswer{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	if _, err := svc.Submit(1, quiz.ID, submitAnswers(questionIDs, correctIDs)); err == nil {
		t.Fatal("submit succeeded despite missing answers table")
	}

	var count int64
	db.Model(&model.QuizAttempt{}).Count(&count)
	if count != 0 {
		t.Errorf("attempt rows after rollback = %d, want 0", count)
	}
}

func TestGetDetailEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quiz, questionIDs, correctIDs, _ := seedQuiz(t, db, course.ID, 1)
	svc := newAttemptService(db)

	result, err := svc.Submit(5, quiz.ID, submitAnswers(questionIDs, correctIDs))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	detail, err := svc.GetDetail(result.AttemptID, 5)
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if len(detail.Answers) != 1 {
		t.Errorf("answers = %d, want 1", len(detail.Answers))
	}

	if _, err := svc.GetDetail(result.AttemptID, 6); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign read: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.GetDetail(9999, 5); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("missing attempt: err = %v, want ErrAttemptNotFound", err)
	}
}
