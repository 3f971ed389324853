package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// Update applies only the provided fields. Passwords are rehashed before
// persisting.
func (s *UserService) Update(id uint, input UpdateUserInput) (*model.User, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hashed)
	}
	if len(fields) == 0 {
		return nil, util.ErrNoChanges
	}

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.UserRepo.FindByID(id)
}

func (s *UserService) Delete(id uint) error {
	rows, err := s.UserRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (s *UserService) List(page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit)
}
