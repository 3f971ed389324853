package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

// EnrollmentRow is an enrollment joined with course metadata for the
// per-user enrollment listing.
type EnrollmentRow struct {
	ID         uint      `json:"id"`
	CourseID   uint      `json:"courseId"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// EnrolleeRow is an enrollment joined with user identity for the
// per-course roster listing.
type EnrolleeRow struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// Withdraw removes the user's enrollment and reports whether a row existed.
// The delete is unscoped: a soft-deleted row would still occupy the unique
// index and block re-enrollment.
func (r *EnrollmentRepository) Withdraw(userID, courseID uint) (int64, error) {
	res := r.DB.Unscoped().
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Enrollment{})
	return res.RowsAffected, res.Error
}

func (r *EnrollmentRepository) FindByUser(userID uint, page, limit int) ([]EnrollmentRow, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Enrollment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []EnrollmentRow
	err := r.DB.Table("enrollments").
		Select(`enrollments.id, enrollments.course_id, courses.title,
			courses.instructor, enrollments.enrolled_at`).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.enrolled_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}

func (r *EnrollmentRepository) FindByCourse(courseID uint, page, limit int) ([]EnrolleeRow, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []EnrolleeRow
	err := r.DB.Table("enrollments").
		Select(`enrollments.id, enrollments.user_id, users.name, users.email,
			enrollments.enrolled_at`).
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("enrollments.course_id = ?", courseID).
		Order("enrollments.enrolled_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}
