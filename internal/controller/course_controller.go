package controller

import (
	"errors"
	"math"
	"net/http"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	LessonService     *service.LessonService
	QuizService       *service.QuizService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, lessonService *service.LessonService, quizService *service.QuizService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		LessonService:     lessonService,
		QuizService:       quizService,
		EnrollmentService: enrollmentService,
	}
}

// CourseDetail is a course with its lessons and quizzes inlined. Lesson video
// URLs are blank for callers not enrolled in the course.
type CourseDetail struct {
	model.Course
	Lessons []model.Lesson `json:"lessons"`
	Quizzes []model.Quiz   `json:"quizzes"`
}

// List godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Filter by title"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	courses, total, err := c.CourseService.List(page, limit, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Course detail
// @Description Returns the course with lessons and quizzes. Video URLs are omitted unless the caller is enrolled.
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetByID(courseID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	userID, isAdmin := callerIdentity(ctx)
	lessons, err := c.LessonService.ListByCourse(ctx.Request.Context(), courseID, userID, isAdmin, 1, math.MaxInt32)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	quizzes, err := c.QuizService.ListByCourse(courseID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	util.Success(ctx, CourseDetail{Course: *course, Lessons: lessons, Quizzes: quizzes})
}

// Create godoc
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCourseInput true "Course payload"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var input service.CreateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Description Applies only the provided fields
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param body body service.UpdateCourseInput true "Fields to update"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var input service.UpdateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(courseID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course
// @Description Removes the course with its lessons, quizzes, enrollments and attempt history
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.Delete(courseID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Course deleted"})
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Failure 400 {object} util.Response "Already enrolled"
// @Router /api/courses/{courseId}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Enroll(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyEnrolled) {
			util.Error(ctx, http.StatusBadRequest, "Already enrolled in this course")
			return
		}
		c.mapError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// Withdraw godoc
// @Summary Withdraw from a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Not enrolled"
// @Router /api/courses/{courseId}/enroll [delete]
func (c *CourseController) Withdraw(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.EnrollmentService.Withdraw(ctx.Request.Context(), claims.UserID, courseID); err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "Not enrolled in this course")
			return
		}
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Enrollment withdrawn"})
}

// Enrollees godoc
// @Summary List a course's enrolled users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/enrollments [get]
func (c *CourseController) Enrollees(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	page, limit := pagination(ctx)
	rows, total, err := c.EnrollmentService.ListByCourse(courseID, page, limit)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

// MyEnrollments godoc
// @Summary List the caller's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/users/me/enrollments [get]
func (c *CourseController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := pagination(ctx)

	rows, total, err := c.EnrollmentService.ListByUser(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

func (c *CourseController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrNoChanges):
		util.BadRequest(ctx, "No changes made")
	default:
		util.LogInternalError(ctx, err)
	}
}
