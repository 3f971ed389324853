package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// CourseProgress summarizes one user's standing in one course. LessonProgress
// is a percentage string like "67%". LatestQuizScore and LastActivity come
// from the course's first quiz only; attempts on later quizzes do not move
// them.
type CourseProgress struct {
	CourseID         uint       `json:"courseId"`
	TotalLessons     int        `json:"totalLessons"`
	CompletedLessons int        `json:"completedLessons"`
	LessonProgress   string     `json:"lessonProgress"`
	TotalQuizzes     int        `json:"totalQuizzes"`
	LatestQuizScore  *int       `json:"latestQuizScore"`
	LastActivity     *time.Time `json:"lastActivity,omitempty"`
}

// UserCourseProgress is a CourseProgress row in the cross-course listing.
type UserCourseProgress struct {
	CourseID         uint      `json:"courseId"`
	CourseTitle      string    `json:"courseTitle"`
	TotalLessons     int       `json:"totalLessons"`
	CompletedLessons int       `json:"completedLessons"`
	LessonProgress   string    `json:"lessonProgress"`
	TotalQuizzes     int       `json:"totalQuizzes"`
	LatestQuizScore  *int      `json:"latestQuizScore"`
	EnrolledAt       time.Time `json:"enrolledAt"`
}

type ProgressService struct {
	LessonRepo     *repository.LessonRepository
	QuizRepo       *repository.QuizRepository
	AttemptRepo    *repository.AttemptRepository
	CompletionRepo *repository.CompletionRepository
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Enrollments    *EnrollmentService
}

func NewProgressService(
	lessonRepo *repository.LessonRepository,
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	completionRepo *repository.CompletionRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	enrollments *EnrollmentService,
) *ProgressService {
	return &ProgressService{
		LessonRepo:     lessonRepo,
		QuizRepo:       quizRepo,
		AttemptRepo:    attemptRepo,
		CompletionRepo: completionRepo,
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Enrollments:    enrollments,
	}
}

// MarkLessonComplete records a completion for an enrolled user. Repeats are
// absorbed; the call stays successful.
func (s *ProgressService) MarkLessonComplete(ctx context.Context, userID, lessonID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrLessonNotFound
	}
	if err != nil {
		return err
	}

	enrolled, err := s.Enrollments.IsEnrolled(ctx, userID, lesson.CourseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}

	return s.CompletionRepo.MarkComplete(userID, lessonID)
}

func (s *ProgressService) ListCompletions(userID uint) ([]model.LessonCompletion, error) {
	return s.CompletionRepo.FindByUser(userID)
}

// GetCourseProgress computes the caller's progress in one course. The caller
// must be enrolled.
func (s *ProgressService) GetCourseProgress(ctx context.Context, userID, courseID uint) (*CourseProgress, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	enrolled, err := s.Enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	progress, err := s.courseProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// GetUserProgress reports progress for every course the user is enrolled in,
// most recent enrollment first.
func (s *ProgressService) GetUserProgress(userID uint) ([]UserCourseProgress, error) {
	enrollments, _, err := s.EnrollmentRepo.FindByUser(userID, 1, math.MaxInt32)
	if err != nil {
		return nil, err
	}

	progress := make([]UserCourseProgress, 0, len(enrollments))
	for _, e := range enrollments {
		p, err := s.courseProgress(userID, e.CourseID)
		if err != nil {
			return nil, err
		}
		progress = append(progress, UserCourseProgress{
			CourseID:         e.CourseID,
			CourseTitle:      e.Title,
			TotalLessons:     p.TotalLessons,
			CompletedLessons: p.CompletedLessons,
			LessonProgress:   p.LessonProgress,
			TotalQuizzes:     p.TotalQuizzes,
			LatestQuizScore:  p.LatestQuizScore,
			EnrolledAt:       e.EnrolledAt,
		})
	}
	return progress, nil
}

func (s *ProgressService) courseProgress(userID, courseID uint) (*CourseProgress, error) {
	lessons, err := s.LessonRepo.FindByCourse(courseID, 1, math.MaxInt32)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]uint, 0, len(lessons))
	for _, l := range lessons {
		lessonIDs = append(lessonIDs, l.ID)
	}
	completedIDs, err := s.CompletionRepo.CompletedLessonIDs(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.QuizRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	// Only the first quiz's attempts feed the quiz signal.
	var attempts []model.QuizAttempt
	if len(quizzes) > 0 {
		attempts, err = s.AttemptRepo.FindByQuizAndUser(quizzes[0].ID, userID)
		if err != nil {
			return nil, err
		}
	}

	lessonPct := 0
	if len(lessons) > 0 {
		lessonPct = int(math.Round(float64(len(completedIDs)) / float64(len(lessons)) * 100))
	}

	progress := &CourseProgress{
		CourseID:         courseID,
		TotalLessons:     len(lessons),
		CompletedLessons: len(completedIDs),
		LessonProgress:   fmt.Sprintf("%d%%", lessonPct),
		TotalQuizzes:     len(quizzes),
	}
	if len(attempts) > 0 {
		score := attempts[0].Score
		progress.LatestQuizScore = &score
		activity := attempts[0].AttemptedAt
		progress.LastActivity = &activity
	}
	return progress, nil
}
