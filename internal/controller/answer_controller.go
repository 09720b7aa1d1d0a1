package controller

import (
	"feedback_backend/internal/service"
	"feedback_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

// swagger:model SubmitAnswersRequest
type SubmitAnswersRequest struct {
	Answers []string `json:"answers" binding:"required,min=1"`
}

// SubmitAnswers godoc
// @Summary Submit answers for a question set
// @Description One submission per student per test, accepted only while the test is open
// @Tags answers
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Param   setId path string true "set id"
// @Param   body body SubmitAnswersRequest true "answers in question order"
// @Success 201 {object} util.Response{data=model.Answer} "submitted"
// @Failure 400 {object} util.Response "invalid answers or test not open"
// @Failure 409 {object} util.Response "already submitted"
// @Router /api/tests/{id}/sets/{setId}/answers [post]
func (c *AnswerController) SubmitAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	answer, err := c.AnswerService.Submit(claims.UserID, ctx.Param("id"), ctx.Param("setId"), req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, answer)
}

// ListAnswers godoc
// @Summary List submissions of a test
// @Tags answers
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "test id"
// @Success 200 {object} util.Response{data=object} "answers"
// @Failure 403 {object} util.Response "not the owner"
// @Router /api/tests/{id}/answers [get]
func (c *AnswerController) ListAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	answers, err := c.AnswerService.ListForTest(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"answers": answers})
}

// swagger:model GradeRequest
type GradeRequest struct {
	Grade       *int   `json:"grade" binding:"required,min=0,max=100"`
	Explanation string `json:"explanation" binding:"max=2000"`
}

// GradeAnswer godoc
// @Summary Grade a submission
// @Tags answers
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "answer id"
// @Param   body body GradeRequest true "grade and explanation"
// @Success 200 {object} util.Response{data=model.Answer} "graded"
// @Failure 403 {object} util.Response "not the owner"
// @Failure 404 {object} util.Response "answer not found"
// @Router /api/answers/{id}/grade [patch]
func (c *AnswerController) GradeAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	answer, err := c.AnswerService.Grade(claims.UserID, ctx.Param("id"), *req.Grade, req.Explanation)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}
