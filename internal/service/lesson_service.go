package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo  *repository.LessonRepository
	CourseRepo  *repository.CourseRepository
	Enrollments *EnrollmentService
	Storage     *StorageService
}

func NewLessonService(lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository, enrollments *EnrollmentService, storage *StorageService) *LessonService {
	return &LessonService{
		LessonRepo:  lessonRepo,
		CourseRepo:  courseRepo,
		Enrollments: enrollments,
		Storage:     storage,
	}
}

type CreateLessonInput struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"videoUrl" binding:"required,url"`
}

type UpdateLessonInput struct {
	Title    *string `json:"title"`
	VideoURL *string `json:"videoUrl" binding:"omitempty,url"`
}

func (s *LessonService) Create(courseID uint, input CreateLessonInput) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	lesson := &model.Lesson{
		CourseID: courseID,
		Title:    input.Title,
		VideoURL: input.VideoURL,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// GetByID returns a lesson, stripping the video URL when the caller is not
// enrolled in the owning course. Admins always see the full record.
func (s *LessonService) GetByID(ctx context.Context, id, userID uint, isAdmin bool) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		enrolled, err := s.Enrollments.IsEnrolled(ctx, userID, lesson.CourseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			lesson.VideoURL = ""
		}
	}
	return lesson, nil
}

func (s *LessonService) ListByCourse(ctx context.Context, courseID, userID uint, isAdmin bool, page, limit int) ([]model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	lessons, err := s.LessonRepo.FindByCourse(courseID, page, limit)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		enrolled, err := s.Enrollments.IsEnrolled(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			for i := range lessons {
				lessons[i].VideoURL = ""
			}
		}
	}
	return lessons, nil
}

func (s *LessonService) Update(id uint, input UpdateLessonInput) (*model.Lesson, error) {
	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.VideoURL != nil {
		fields["video_url"] = *input.VideoURL
	}
	if len(fields) == 0 {
		return nil, util.ErrNoChanges
	}

	if _, err := s.LessonRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if _, err := s.LessonRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.LessonRepo.FindByID(id)
}

func (s *LessonService) Delete(id uint) error {
	if _, err := s.LessonRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return s.LessonRepo.Delete(id)
}

// UploadResource stores a supplementary file and attaches it to the lesson.
func (s *LessonService) UploadResource(ctx context.Context, lessonID uint, header *multipart.FileHeader) (*model.LessonResource, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if !util.HasAllowedExtension(header.Filename, util.AllowedResourceExtensions) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(header.Filename))
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	allowed := []string{util.MimeImage, util.MimePDF, util.MimeZip, util.MimeOctetStream, "text/"}
	contentType, err := util.ValidateMimeType(file, allowed)
	if err != nil {
		return nil, err
	}
	// Sniffing consumed the head of the file.
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("lessons/%d/%s%s", lesson.ID, uuid.NewString(), filepath.Ext(header.Filename))
	url, err := s.Storage.Provider.Upload(ctx, filename, file, header.Size, contentType)
	if err != nil {
		return nil, err
	}

	resource := &model.LessonResource{LessonID: lesson.ID, ResourceURL: url}
	if err := s.LessonRepo.CreateResource(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *LessonService) ListResources(ctx context.Context, lessonID, userID uint, isAdmin bool) ([]model.LessonResource, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		enrolled, err := s.Enrollments.IsEnrolled(ctx, userID, lesson.CourseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, util.ErrNotEnrolled
		}
	}
	return s.LessonRepo.FindResourcesByLesson(lessonID)
}

func (s *LessonService) DeleteResource(id uint) error {
	rows, err := s.LessonRepo.DeleteResource(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrResourceNotFound
	}
	return nil
}
