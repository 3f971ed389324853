package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type CreateQuizRequest struct {
	Title string `json:"title" binding:"required"`
}

// ListByCourse godoc
// @Summary List a course's quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/quizzes [get]
func (c *QuizController) ListByCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	quizzes, err := c.QuizService.ListByCourse(courseID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary Quiz detail with questions and options
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=service.QuizDetail}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	detail, err := c.QuizService.GetDetail(quizID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// ListQuestions godoc
// @Summary List a quiz's questions with options
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]service.QuestionDetail}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId}/questions [get]
func (c *QuizController) ListQuestions(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	questions, err := c.QuizService.ListQuestions(quizID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary Question detail with options
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response{data=service.QuestionDetail}
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId} [get]
func (c *QuizController) GetQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.QuizService.GetQuestion(questionID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Create godoc
// @Summary Create a quiz
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param body body CreateQuizRequest true "Quiz payload"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{courseId}/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(courseID, req.Title)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// Update godoc
// @Summary Rename a quiz
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Param body body CreateQuizRequest true "New title"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(quizID, req.Title)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary Delete a quiz
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	if err := c.QuizService.Delete(quizID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Quiz deleted"})
}

// AddQuestion godoc
// @Summary Add a question to a quiz
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Param body body service.CreateQuestionInput true "Question payload"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var input service.CreateQuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.AddQuestion(quizID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question's text
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param body body service.CreateQuestionInput true "New text"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var input service.CreateQuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(questionID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.QuizService.DeleteQuestion(questionID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Question deleted"})
}

// AddOption godoc
// @Summary Add an option to a question
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param body body service.CreateOptionInput true "Option payload"
// @Success 201 {object} util.Response{data=model.Option}
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId}/options [post]
func (c *QuizController) AddOption(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var input service.CreateOptionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	option, err := c.QuizService.AddOption(questionID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Created(ctx, option)
}

// UpdateOption godoc
// @Summary Update an option
// @Description Applies only the provided fields. Recorded attempts keep their correctness snapshots.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param optionId path int true "Option ID"
// @Param body body service.UpdateOptionInput true "Fields to update"
// @Success 200 {object} util.Response{data=model.Option}
// @Failure 404 {object} util.Response
// @Router /api/options/{optionId} [put]
func (c *QuizController) UpdateOption(ctx *gin.Context) {
	optionID, ok := pathID(ctx, "optionId")
	if !ok {
		util.BadRequest(ctx, "invalid option id")
		return
	}

	var input service.UpdateOptionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	option, err := c.QuizService.UpdateOption(optionID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, option)
}

// DeleteOption godoc
// @Summary Delete an option
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param optionId path int true "Option ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/options/{optionId} [delete]
func (c *QuizController) DeleteOption(ctx *gin.Context) {
	optionID, ok := pathID(ctx, "optionId")
	if !ok {
		util.BadRequest(ctx, "invalid option id")
		return
	}

	if err := c.QuizService.DeleteOption(optionID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Option deleted"})
}

func (c *QuizController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, "Quiz not found")
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, "Question not found")
	case errors.Is(err, util.ErrOptionNotFound):
		util.NotFound(ctx, "Option not found")
	case errors.Is(err, util.ErrNoChanges):
		util.BadRequest(ctx, "No changes made")
	default:
		util.LogInternalError(ctx, err)
	}
}
