package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// MarkLessonComplete godoc
// @Summary Mark a lesson as completed
// @Description Idempotent; completing an already completed lesson succeeds without change
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Not enrolled"
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId}/complete [post]
func (c *ProgressController) MarkLessonComplete(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.ProgressService.MarkLessonComplete(ctx.Request.Context(), claims.UserID, lessonID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Lesson marked as completed"})
}

// MyCompletions godoc
// @Summary List the caller's lesson completions
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LessonCompletion}
// @Router /api/users/me/completions [get]
func (c *ProgressController) MyCompletions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	completions, err := c.ProgressService.ListCompletions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, completions)
}

// CourseProgress godoc
// @Summary The caller's progress in one course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Failure 403 {object} util.Response "Not enrolled"
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/progress [get]
func (c *ProgressController) CourseProgress(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.GetCourseProgress(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// MyProgress godoc
// @Summary The caller's progress across all enrolled courses
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.UserCourseProgress}
// @Router /api/users/me/progress [get]
func (c *ProgressController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.GetUserProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

func (c *ProgressController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx, "Lesson not found")
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx, "Not enrolled in this course")
	default:
		util.LogInternalError(ctx, err)
	}
}
