package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

type CreateCourseInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Instructor  string  `json:"instructor" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type UpdateCourseInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Instructor  *string  `json:"instructor"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

func (s *CourseService) Create(input CreateCourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:       input.Title,
		Description: input.Description,
		Instructor:  input.Instructor,
		Price:       input.Price,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) List(page, limit int, search string) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit, search)
}

func (s *CourseService) Update(id uint, input UpdateCourseInput) (*model.Course, error) {
	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Instructor != nil {
		fields["instructor"] = *input.Instructor
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if len(fields) == 0 {
		return nil, util.ErrNoChanges
	}

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	if _, err := s.CourseRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindByID(id)
}

// Delete removes the course and everything hanging off it, including attempt
// history for its quizzes.
func (s *CourseService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.CourseRepo.Delete(id)
}
