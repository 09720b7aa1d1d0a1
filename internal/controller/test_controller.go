package controller

import (
	"feedback_backend/internal/service"
	"feedback_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// swagger:model TestRequest
type TestRequest struct {
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func (r TestRequest) input() service.TestInput {
	return service.TestInput{
		Title:     r.Title,
		Topic:     r.Topic,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// CreateTest godoc
// @Summary Create a test
// @Description The window must start in the future and end after it starts
// @Tags tests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body TestRequest true "test details"
// @Success 201 {object} util.Response{data=model.Test} "created"
// @Failure 400 {object} util.Response "validation error"
// @Failure 403 {object} util.Response "teachers only"
// @Router /api/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req TestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	test, err := c.TestService.Create(claims.UserID, req.input())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, test)
}

// GetTest godoc
// @Summary Get a test
// @Description Question sets are only included for the owning teacher
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Success 200 {object} util.Response{data=model.Test} "Success"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.TestService.Get(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// UpdateTest godoc
// @Summary Update a test
// @Tags tests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Param   body body TestRequest true "test details"
// @Success 200 {object} util.Response{data=model.Test} "updated"
// @Failure 400 {object} util.Response "validation error"
// @Failure 403 {object} util.Response "not the owner"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/tests/{id} [patch]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req TestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	test, err := c.TestService.Update(claims.UserID, ctx.Param("id"), req.input())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// DeleteTest godoc
// @Summary Delete a test
// @Description Refused once any student has attempted the test
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Success 200 {object} util.Response "deleted"
// @Failure 403 {object} util.Response "attempted or not the owner"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.TestService.Delete(claims.UserID, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Test deleted", nil)
}

// ListTests godoc
// @Summary List my tests
// @Description Owned tests for teachers, attempted tests for students
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "tests"
// @Router /api/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tests, err := c.TestService.List(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"tests": tests})
}

// CheckAttempted godoc
// @Summary Has the student attempted the test
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Success 200 {object} util.Response{data=object} "attempted flag"
// @Failure 400 {object} util.Response "test has not started"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/tests/{id}/attempted [get]
func (c *TestController) CheckAttempted(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempted, err := c.TestService.Attempted(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"attempted": attempted})
}
