package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// LessonDetail is a lesson with its resources inlined.
type LessonDetail struct {
	model.Lesson
	Resources []model.LessonResource `json:"resources,omitempty"`
}

// Create godoc
// @Summary Create a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param body body service.CreateLessonInput true "Lesson payload"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{courseId}/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var input service.CreateLessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Create(courseID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// ListByCourse godoc
// @Summary List a course's lessons
// @Description Video URLs are omitted unless the caller is enrolled
// @Tags lessons
// @Produce json
// @Param courseId path int true "Course ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/lessons [get]
func (c *LessonController) ListByCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	userID, isAdmin := callerIdentity(ctx)
	page, limit := pagination(ctx)

	lessons, err := c.LessonService.ListByCourse(ctx.Request.Context(), courseID, userID, isAdmin, page, limit)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// Get godoc
// @Summary Lesson detail
// @Description Video URL and resources are enrollment-gated
// @Tags lessons
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=LessonDetail}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	userID, isAdmin := callerIdentity(ctx)
	lesson, err := c.LessonService.GetByID(ctx.Request.Context(), lessonID, userID, isAdmin)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	detail := LessonDetail{Lesson: *lesson}
	resources, err := c.LessonService.ListResources(ctx.Request.Context(), lessonID, userID, isAdmin)
	if err == nil {
		detail.Resources = resources
	} else if !errors.Is(err, util.ErrNotEnrolled) {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// Update godoc
// @Summary Update a lesson
// @Description Applies only the provided fields
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param body body service.UpdateLessonInput true "Fields to update"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var input service.UpdateLessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Update(lessonID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// Delete godoc
// @Summary Delete a lesson
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	if err := c.LessonService.Delete(lessonID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Lesson deleted"})
}

// UploadResource godoc
// @Summary Attach a resource file to a lesson
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param file formData file true "Resource file"
// @Success 201 {object} util.Response{data=model.LessonResource}
// @Failure 400 {object} util.Response "Unsupported file type"
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId}/resources [post]
func (c *LessonController) UploadResource(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	resource, err := c.LessonService.UploadResource(ctx.Request.Context(), lessonID, header)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "Lesson not found")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, resource)
}

// ListResources godoc
// @Summary List a lesson's resources
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=[]model.LessonResource}
// @Failure 403 {object} util.Response "Not enrolled"
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId}/resources [get]
func (c *LessonController) ListResources(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	userID, isAdmin := callerIdentity(ctx)
	resources, err := c.LessonService.ListResources(ctx.Request.Context(), lessonID, userID, isAdmin)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

// DeleteResource godoc
// @Summary Delete a lesson resource
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param resourceId path int true "Resource ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/resources/{resourceId} [delete]
func (c *LessonController) DeleteResource(ctx *gin.Context) {
	resourceID, ok := pathID(ctx, "resourceId")
	if !ok {
		util.BadRequest(ctx, "invalid resource id")
		return
	}

	if err := c.LessonService.DeleteResource(resourceID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Resource deleted"})
}

func (c *LessonController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx, "Lesson not found")
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrResourceNotFound):
		util.NotFound(ctx, "Resource not found")
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx, "You must be enrolled in this course")
	case errors.Is(err, util.ErrNoChanges):
		util.BadRequest(ctx, "No changes made")
	default:
		util.LogInternalError(ctx, err)
	}
}
