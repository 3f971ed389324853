package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindByCourse(courseID uint, page, limit int) ([]model.Lesson, error) {
	var lessons []model.Lesson
	query := r.DB.Where("course_id = ?", courseID).Order("created_at ASC, id ASC")
	if limit > 0 {
		offset := (page - 1) * limit
		query = query.Offset(offset).Limit(limit)
	}
	err := query.Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) UpdateFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Lesson{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonResource{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, id).Error
	})
}

func (r *LessonRepository) CreateResource(res *model.LessonResource) error {
	return r.DB.Create(res).Error
}

func (r *LessonRepository) FindResourcesByLesson(lessonID uint) ([]model.LessonResource, error) {
	var resources []model.LessonResource
	err := r.DB.Where("lesson_id = ?", lessonID).Order("created_at ASC").Find(&resources).Error
	return resources, err
}

func (r *LessonRepository) DeleteResource(id uint) (int64, error) {
	res := r.DB.Delete(&model.LessonResource{}, id)
	return res.RowsAffected, res.Error
}
