package controller

import (
	"feedback_backend/internal/service"
	"feedback_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SuggestionController struct {
	SuggestionService *service.SuggestionService
}

func NewSuggestionController(suggestionService *service.SuggestionService) *SuggestionController {
	return &SuggestionController{SuggestionService: suggestionService}
}

// SuggestMessages godoc
// @Summary Suggest anonymous questions
// @Description Asks the configured model for three open-ended questions
// @Tags messages
// @Produce  json
// @Success 200 {object} util.Response{data=object} "suggestions"
// @Failure 503 {object} util.Response "suggestions unavailable"
// @Router /api/suggest-messages [post]
func (c *SuggestionController) SuggestMessages(ctx *gin.Context) {
	suggestions, err := c.SuggestionService.Suggest(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"suggestions": suggestions})
}
