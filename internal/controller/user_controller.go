package controller

import (
	"errors"
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateMe godoc
// @Summary Update current user profile
// @Description Applies only the provided fields
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdateUserInput true "Fields to update"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "No changes made"
// @Router /api/users/me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var input service.UpdateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Update(claims.UserID, input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// List godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	users, total, err := c.UserService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	user, svcErr := c.UserService.GetByID(uint(id))
	if svcErr != nil {
		c.mapError(ctx, svcErr)
		return
	}
	util.Success(ctx, user)
}

// Update godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body service.UpdateUserInput true "Fields to update"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var input service.UpdateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, svcErr := c.UserService.Update(uint(id), input)
	if svcErr != nil {
		c.mapError(ctx, svcErr)
		return
	}
	util.Success(ctx, user)
}

// Delete godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	if err := c.UserService.Delete(uint(id)); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "User deleted"})
}

func (c *UserController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "User not found")
	case errors.Is(err, util.ErrNoChanges):
		util.BadRequest(ctx, "No changes made")
	default:
		util.LogInternalError(ctx, err)
	}
}
