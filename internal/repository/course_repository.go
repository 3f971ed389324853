package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) List(page, limit int, search string) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{})
	if search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) UpdateFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// Delete removes a course and everything hanging off it in one transaction.
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("course_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonResource{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonCompletion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}

		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("course_id = ?", id).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			var questionIDs []uint
			if err := tx.Model(&model.Question{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
					return err
				}
				if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
					return err
				}
			}
			var attemptIDs []uint
			if err := tx.Model(&model.QuizAttempt{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &attemptIDs).Error; err != nil {
				return err
			}
			if len(attemptIDs) > 0 {
				if err := tx.Where("attempt_id IN ?", attemptIDs).Delete(&model.QuizAttemptAnswer{}).Error; err != nil {
					return err
				}
				if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizAttempt{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Quiz{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Course{}, id).Error
	})
}
