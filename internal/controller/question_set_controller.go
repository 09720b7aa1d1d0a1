package controller

import (
	"feedback_backend/internal/service"
	"feedback_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionSetController struct {
	QuestionSetService *service.QuestionSetService
}

func NewQuestionSetController(questionSetService *service.QuestionSetService) *QuestionSetController {
	return &QuestionSetController{QuestionSetService: questionSetService}
}

type QuestionSetQuery struct {
	TestID string `form:"testId" binding:"required"`
}

// GetRandomSet godoc
// @Summary Draw a question set
// @Description Returns one of the test's question sets chosen uniformly at random
// @Tags question-sets
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId query string true "test id"
// @Success 200 {object} util.Response{data=object} "questions"
// @Failure 400 {object} util.Response "no sets or test not started"
// @Failure 403 {object} util.Response "students only"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/question-set [get]
func (c *QuestionSetController) GetRandomSet(ctx *gin.Context) {
	var q QuestionSetQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	set, err := c.QuestionSetService.ForStudent(q.TestID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"testId":    set.TestID,
		"setId":     set.ID,
		"questions": set.Questions,
	})
}

// swagger:model QuestionSetRequest
type QuestionSetRequest struct {
	Questions []string `json:"questions" binding:"required,min=1"`
}

// CreateSet godoc
// @Summary Add a question set to a test
// @Tags question-sets
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Param   body body QuestionSetRequest true "questions"
// @Success 201 {object} util.Response{data=model.QuestionSet} "created"
// @Failure 400 {object} util.Response "invalid questions or too many sets"
// @Failure 403 {object} util.Response "not the owner"
// @Router /api/tests/{id}/sets [post]
func (c *QuestionSetController) CreateSet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	set, err := c.QuestionSetService.Create(claims.UserID, ctx.Param("id"), req.Questions)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, set)
}

// GetSet godoc
// @Summary Get a question set
// @Tags question-sets
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Param   setId path string true "set id"
// @Success 200 {object} util.Response{data=model.QuestionSet} "Success"
// @Failure 404 {object} util.Response "not found"
// @Router /api/tests/{id}/sets/{setId} [get]
func (c *QuestionSetController) GetSet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	set, err := c.QuestionSetService.Get(claims.UserID, ctx.Param("id"), ctx.Param("setId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, set)
}

// UpdateSet godoc
// @Summary Replace the questions of a set
// @Tags question-sets
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Param   setId path string true "set id"
// @Param   body body QuestionSetRequest true "questions"
// @Success 200 {object} util.Response{data=model.QuestionSet} "updated"
// @Router /api/tests/{id}/sets/{setId} [put]
func (c *QuestionSetController) UpdateSet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	set, err := c.QuestionSetService.Update(claims.UserID, ctx.Param("id"), ctx.Param("setId"), req.Questions)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, set)
}

// DeleteSet godoc
// @Summary Delete a question set
// @Tags question-sets
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Param   setId path string true "set id"
// @Success 200 {object} util.Response "deleted"
// @Router /api/tests/{id}/sets/{setId} [delete]
func (c *QuestionSetController) DeleteSet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuestionSetService.Delete(claims.UserID, ctx.Param("id"), ctx.Param("setId")); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Question set deleted", nil)
}
