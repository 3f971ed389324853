package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

// FindByCourse lists a course's quizzes in insertion order. The progress
// aggregator depends on this ordering for its first-quiz signal.
func (r *QuizRepository) FindByCourse(courseID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("course_id = ?", courseID).Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) UpdateFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Quiz{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

func (r *QuizRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuizRepository) FindQuestionsByQuiz(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("created_at ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (r *QuizRepository) UpdateQuestionFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Question{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func (r *QuizRepository) CreateOption(o *model.Option) error {
	return r.DB.Create(o).Error
}

func (r *QuizRepository) FindOptionByID(id uint) (*model.Option, error) {
	var o model.Option
	err := r.DB.First(&o, id).Error
	return &o, err
}

func (r *QuizRepository) FindOptionsByQuestion(questionID uint) ([]model.Option, error) {
	var options []model.Option
	err := r.DB.Where("question_id = ?", questionID).Find(&options).Error
	return options, err
}

func (r *QuizRepository) UpdateOptionFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Option{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *QuizRepository) DeleteOption(id uint) (int64, error) {
	res := r.DB.Delete(&model.Option{}, id)
	return res.RowsAffected, res.Error
}
