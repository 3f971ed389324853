package model

import "time"

// QuizAttempt is one scored submission of answers to a quiz. AttemptNumber is
// a 1-based sequence per (user, quiz); Score is 0-100, written once when the
// submission transaction completes.
type QuizAttempt struct {
	BaseModel
	UserID        uint      `gorm:"index;not null" json:"userId"`
	QuizID        uint      `gorm:"index;not null" json:"quizId"`
	AttemptNumber int       `gorm:"not null" json:"attemptNumber"`
	Score         int       `gorm:"not null;default:0" json:"score"`
	AttemptedAt   time.Time `gorm:"autoCreateTime" json:"attemptedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizAttemptAnswer records one selected option of an attempt. IsCorrect is a
// snapshot taken at submission time; later edits to the option do not change
// historical attempts.
type QuizAttemptAnswer struct {
	BaseModel
	AttemptID        uint `gorm:"index;not null" json:"attemptId"`
	QuestionID       uint `gorm:"not null" json:"questionId"`
	SelectedOptionID uint `gorm:"not null" json:"selectedOptionId"`
	IsCorrect        bool `gorm:"not null" json:"isCorrect"`
}

func (QuizAttemptAnswer) TableName() string {
	return "quiz_attempt_answers"
}
