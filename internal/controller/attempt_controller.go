package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// Submit godoc
// @Summary Submit a quiz attempt
// @Description Scores the submitted answers in one transaction. The answer set must match the quiz's question count and question IDs.
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Param body body service.SubmitAttemptInput true "Answers"
// @Success 201 {object} util.Response{data=service.AttemptResult}
// @Failure 400 {object} util.Response "Answer set does not cover the quiz"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/{quizId}/attempts [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var input service.SubmitAttemptInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.Submit(claims.UserID, quizID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListByQuiz godoc
// @Summary List the caller's attempts on a quiz
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId}/attempts [get]
func (c *AttemptController) ListByQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	attempts, err := c.AttemptService.GetQuizAttempts(claims.UserID, quizID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// ListMine godoc
// @Summary List all of the caller's attempts
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]repository.AttemptRow}
// @Router /api/users/me/attempts [get]
func (c *AttemptController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.AttemptService.GetUserAttempts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// Get godoc
// @Summary Attempt detail with recorded answers
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param attemptId path int true "Attempt ID"
// @Success 200 {object} util.Response{data=service.AttemptDetail}
// @Failure 403 {object} util.Response "Not the attempt's owner"
// @Failure 404 {object} util.Response
// @Router /api/attempts/{attemptId} [get]
func (c *AttemptController) Get(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attemptId")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	detail, err := c.AttemptService.GetDetail(attemptID, claims.UserID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

func (c *AttemptController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, "Quiz not found")
	case errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx, "Attempt not found")
	case errors.Is(err, util.ErrAnswerCountMismatch):
		util.BadRequest(ctx, "Number of answers must match number of questions")
	case errors.Is(err, util.ErrUnknownQuestion):
		util.BadRequest(ctx, "Invalid question IDs provided")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "Access denied")
	default:
		util.LogInternalError(ctx, err)
	}
}
