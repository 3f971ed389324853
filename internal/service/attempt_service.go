package service

import (
	"errors"
	"math"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type AttemptService struct {
	AttemptRepo *repository.AttemptRepository
	QuizRepo    *repository.QuizRepository
	DB          *gorm.DB
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, quizRepo *repository.QuizRepository, db *gorm.DB) *AttemptService {
	return &AttemptService{
		AttemptRepo: attemptRepo,
		QuizRepo:    quizRepo,
		DB:          db,
	}
}

type AnswerInput struct {
	QuestionID       uint `json:"questionId" binding:"required"`
	SelectedOptionID uint `json:"selectedOptionId" binding:"required"`
}

type SubmitAttemptInput struct {
	Answers []AnswerInput `json:"answers" binding:"required"`
}

// AttemptResult is the outcome of a scored submission.
type AttemptResult struct {
	AttemptID      uint `json:"attemptId"`
	Score          int  `json:"score"`
	CorrectAnswers int  `json:"correctAnswers"`
	TotalQuestions int  `json:"totalQuestions"`
}

// AttemptDetail is an attempt with its recorded answers enriched with
// question and option text.
type AttemptDetail struct {
	model.QuizAttempt
	Answers []repository.AnswerRow `json:"answers"`
}

// Submit validates and scores a set of answers in one transaction.
//
// The answer set must cover the quiz exactly: as many answers as the quiz has
// questions, every answered question belonging to the quiz. Duplicate answers
// to one question can mask an unanswered one; only the count and membership
// are checked. The attempt number is the prior attempt count plus one, read
// outside any lock, so concurrent submissions may record the same number.
func (s *AttemptService) Submit(userID, quizID uint, input SubmitAttemptInput) (*AttemptResult, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	// An empty submission is rejected outright; the count comparison alone
	// would let it through on a quiz with no questions.
	if len(input.Answers) == 0 {
		return nil, util.ErrAnswerCountMismatch
	}

	questions, err := s.QuizRepo.FindQuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if len(input.Answers) != len(questions) {
		return nil, util.ErrAnswerCountMismatch
	}

	questionIDs := make(map[uint]bool, len(questions))
	for _, q := range questions {
		questionIDs[q.ID] = true
	}
	for _, a := range input.Answers {
		if !questionIDs[a.QuestionID] {
			return nil, util.ErrUnknownQuestion
		}
	}

	priorCount, err := s.AttemptRepo.CountByQuizAndUser(s.DB, quizID, userID)
	if err != nil {
		return nil, err
	}
	attemptNumber := int(priorCount) + 1

	var result *AttemptResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		attempt := &model.QuizAttempt{
			UserID:        userID,
			QuizID:        quizID,
			AttemptNumber: attemptNumber,
			Score:         0,
		}
		if err := s.AttemptRepo.Create(tx, attempt); err != nil {
			return err
		}

		correctAnswers := 0
		totalQuestions := len(questions)

		for _, a := range input.Answers {
			var options []model.Option
			if err := tx.Where("question_id = ?", a.QuestionID).Find(&options).Error; err != nil {
				return err
			}

			isCorrect := false
			for _, opt := range options {
				if opt.ID == a.SelectedOptionID {
					isCorrect = opt.IsCorrect
					break
				}
			}
			if isCorrect {
				correctAnswers++
			}

			answer := &model.QuizAttemptAnswer{
				AttemptID:        attempt.ID,
				QuestionID:       a.QuestionID,
				SelectedOptionID: a.SelectedOptionID,
				IsCorrect:        isCorrect,
			}
			if err := s.AttemptRepo.CreateAnswer(tx, answer); err != nil {
				return err
			}
		}

		score := 0
		if totalQuestions > 0 {
			score = int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100))
		}
		if err := tx.Model(attempt).Update("score", score).Error; err != nil {
			return err
		}

		result = &AttemptResult{
			AttemptID:      attempt.ID,
			Score:          score,
			CorrectAnswers: correctAnswers,
			TotalQuestions: totalQuestions,
		}
		return nil
	})
	if err != nil {
		monitoring.AttemptCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	monitoring.AttemptCounter.WithLabelValues("ok").Inc()
	return result, nil
}

// GetQuizAttempts lists the caller's attempts on one quiz, newest first.
func (s *AttemptService) GetQuizAttempts(userID, quizID uint) ([]model.QuizAttempt, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.AttemptRepo.FindByQuizAndUser(quizID, userID)
}

// GetUserAttempts lists all of the caller's attempts across courses.
func (s *AttemptService) GetUserAttempts(userID uint) ([]repository.AttemptRow, error) {
	return s.AttemptRepo.FindByUser(userID)
}

// GetDetail returns an attempt with its answers. Only the attempt's owner may
// read it.
func (s *AttemptService) GetDetail(attemptID, userID uint) (*AttemptDetail, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}

	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	answers, err := s.AttemptRepo.FindAnswersByAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	return &AttemptDetail{QuizAttempt: *attempt, Answers: answers}, nil
}
