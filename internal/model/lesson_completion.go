package model

// LessonCompletion marks a lesson as finished by a user. The unique index
// backs the idempotent insert: completing twice leaves a single row.
type LessonCompletion struct {
	BaseModel
	UserID   uint `gorm:"uniqueIndex:idx_completion_user_lesson;not null" json:"userId"`
	LessonID uint `gorm:"uniqueIndex:idx_completion_user_lesson;not null" json:"lessonId"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
