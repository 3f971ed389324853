package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// UpdateFields applies a partial update; only the provided columns change.
func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.User{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) UpdateLastLogin(id uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("last_login", time.Now()).Error
}

// Delete removes the user outright. Email carries a unique index, so a
// soft-deleted row would keep that address unregisterable forever.
func (r *UserRepository) Delete(id uint) (int64, error) {
	res := r.DB.Unscoped().Delete(&model.User{}, id)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) List(page, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	offset := (page - 1) * limit
	err := r.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}
