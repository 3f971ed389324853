package model

import "time"

// Enrollment grants a user access to a course's gated content.
type Enrollment struct {
	BaseModel
	UserID     uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID   uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"courseId"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
