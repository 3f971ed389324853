package service

import (
	"context"
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

const enrollmentCacheTTL = 5 * time.Minute

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Redis          *redis.Client
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, rdb *redis.Client) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Redis:          rdb,
	}
}

func enrollmentCacheKey(userID, courseID uint) string {
	return fmt.Sprintf("enrollment:%d:%d", userID, courseID)
}

// IsEnrolled answers the enrollment gate. Anonymous callers (userID 0) are
// never enrolled. Results are cached briefly; writes invalidate the key.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, enrollmentCacheKey(userID, courseID)).Result(); err == nil {
			return val == "1", nil
		}
	}

	enrolled, err := s.EnrollmentRepo.IsEnrolled(userID, courseID)
	if err != nil {
		return false, err
	}

	if s.Redis != nil {
		val := "0"
		if enrolled {
			val = "1"
		}
		s.Redis.Set(ctx, enrollmentCacheKey(userID, courseID), val, enrollmentCacheTTL)
	}
	return enrolled, nil
}

func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	enrolled, err := s.EnrollmentRepo.IsEnrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID, courseID)
	return enrollment, nil
}

func (s *EnrollmentService) Withdraw(ctx context.Context, userID, courseID uint) error {
	rows, err := s.EnrollmentRepo.Withdraw(userID, courseID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrNotEnrolled
	}
	s.invalidate(ctx, userID, courseID)
	return nil
}

func (s *EnrollmentService) ListByUser(userID uint, page, limit int) ([]repository.EnrollmentRow, int64, error) {
	return s.EnrollmentRepo.FindByUser(userID, page, limit)
}

func (s *EnrollmentService) ListByCourse(courseID uint, page, limit int) ([]repository.EnrolleeRow, int64, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, 0, util.ErrCourseNotFound
	}
	return s.EnrollmentRepo.FindByCourse(courseID, page, limit)
}

func (s *EnrollmentService) invalidate(ctx context.Context, userID, courseID uint) {
	if s.Redis != nil {
		s.Redis.Del(ctx, enrollmentCacheKey(userID, courseID))
	}
}
