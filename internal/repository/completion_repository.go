package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// MarkComplete records a completion. Re-marking an already completed lesson
// is a no-op; the unique index absorbs the duplicate.
func (r *CompletionRepository) MarkComplete(userID, lessonID uint) error {
	completion := model.LessonCompletion{UserID: userID, LessonID: lessonID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error
}

func (r *CompletionRepository) IsCompleted(userID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	return count > 0, err
}

func (r *CompletionRepository) FindByUser(userID uint) ([]model.LessonCompletion, error) {
	var completions []model.LessonCompletion
	err := r.DB.Where("user_id = ?", userID).Find(&completions).Error
	return completions, err
}

// CompletedLessonIDs returns the IDs of the given lessons the user has
// completed. Completions for lessons outside the set are ignored.
func (r *CompletionRepository) CompletedLessonIDs(userID uint, lessonIDs []uint) ([]uint, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Pluck("lesson_id", &ids).Error
	return ids, err
}
