package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

// AttemptRow is an attempt joined with quiz and course titles for the
// per-user attempt history listing.
type AttemptRow struct {
	ID            uint      `json:"id"`
	QuizID        uint      `json:"quizId"`
	QuizTitle     string    `json:"quizTitle"`
	CourseID      uint      `json:"courseId"`
	CourseTitle   string    `json:"courseTitle"`
	AttemptNumber int       `json:"attemptNumber"`
	Score         int       `json:"score"`
	AttemptedAt   time.Time `json:"attemptedAt"`
}

// AnswerRow is a recorded answer joined with its question and option text.
type AnswerRow struct {
	QuestionID       uint   `json:"questionId"`
	QuestionText     string `json:"questionText"`
	SelectedOptionID uint   `json:"selectedOptionId"`
	SelectedOption   string `json:"selectedOption"`
	IsCorrect        bool   `json:"isCorrect"`
}

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// CountByQuizAndUser counts the user's prior attempts on a quiz. The next
// attempt number is this count plus one; concurrent submissions can observe
// the same count and record the same number.
func (r *AttemptRepository) CountByQuizAndUser(tx *gorm.DB, quizID, userID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) Create(tx *gorm.DB, attempt *model.QuizAttempt) error {
	return tx.Create(attempt).Error
}

func (r *AttemptRepository) CreateAnswer(tx *gorm.DB, answer *model.QuizAttemptAnswer) error {
	return tx.Create(answer).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.First(&attempt, id).Error
	return &attempt, err
}

// FindByQuizAndUser returns a user's attempts on one quiz, newest attempt
// first. Callers read the head of this slice as the latest score.
func (r *AttemptRepository) FindByQuizAndUser(quizID, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("attempt_number DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindByUser(userID uint) ([]AttemptRow, error) {
	var rows []AttemptRow
	err := r.DB.Table("quiz_attempts").
		Select(`quiz_attempts.id, quiz_attempts.quiz_id, quizzes.title AS quiz_title,
			quizzes.course_id, courses.title AS course_title,
			quiz_attempts.attempt_number, quiz_attempts.score, quiz_attempts.attempted_at`).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("JOIN courses ON courses.id = quizzes.course_id").
		Where("quiz_attempts.user_id = ?", userID).
		Order("quiz_attempts.attempted_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AttemptRepository) FindAnswersByAttempt(attemptID uint) ([]AnswerRow, error) {
	var rows []AnswerRow
	err := r.DB.Table("quiz_attempt_answers").
		Select(`quiz_attempt_answers.question_id, questions.text AS question_text,
			quiz_attempt_answers.selected_option_id, options.text AS selected_option,
			quiz_attempt_answers.is_correct`).
		Joins("JOIN questions ON questions.id = quiz_attempt_answers.question_id").
		Joins("JOIN options ON options.id = quiz_attempt_answers.selected_option_id").
		Where("quiz_attempt_answers.attempt_id = ?", attemptID).
		Scan(&rows).Error
	return rows, err
}
