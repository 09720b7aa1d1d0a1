package controller

import (
	"feedback_backend/internal/model"
	"feedback_backend/internal/service"
	"feedback_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageService *service.MessageService
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

// swagger:model MessageView
type MessageView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageViews(msgs []model.Message) []MessageView {
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, MessageView{ID: m.ID, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return views
}

// ListMessages godoc
// @Summary List received messages
// @Description Messages of the signed-in account, newest first
// @Tags messages
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "messages"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 404 {object} util.Response "user not found"
// @Router /api/messages [get]
func (c *MessageController) ListMessages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	msgs, err := c.MessageService.List(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"messages": toMessageViews(msgs)})
}

// swagger:model SendMessageRequest
type SendMessageRequest struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required,notblank,max=500"`
}

// SendMessage godoc
// @Summary Send an anonymous message
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   body body SendMessageRequest true "recipient and content"
// @Success 201 {object} util.Response "message sent"
// @Failure 400 {object} util.Response "invalid content"
// @Failure 403 {object} util.Response "recipient not accepting messages"
// @Failure 404 {object} util.Response "user not found"
// @Router /api/send-message [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	msg, err := c.MessageService.Send(req.Username, req.Content)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, MessageView{ID: msg.ID, Content: msg.Content, CreatedAt: msg.CreatedAt})
}

// DeleteMessage godoc
// @Summary Delete a received message
// @Tags messages
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "message id"
// @Success 200 {object} util.Response "deleted"
// @Failure 404 {object} util.Response "message not found"
// @Router /api/messages/{id} [delete]
func (c *MessageController) DeleteMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := util.ParseUint(ctx.Param("id"))
	if !ok {
		util.HandleError(ctx, util.ErrMessageNotFound)
		return
	}

	if err := c.MessageService.Delete(claims.UserID, id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Message deleted", nil)
}

// GetAcceptMessages godoc
// @Summary Read the accepting-messages flag
// @Tags messages
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "flag"
// @Router /api/accept-messages [get]
func (c *MessageController) GetAcceptMessages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	accepting, err := c.MessageService.AcceptingMessages(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"isAcceptingMessages": accepting})
}

// swagger:model AcceptMessagesRequest
type AcceptMessagesRequest struct {
	AcceptMessages *bool `json:"acceptMessages" binding:"required"`
}

// SetAcceptMessages godoc
// @Summary Turn message acceptance on or off
// @Tags messages
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AcceptMessagesRequest true "new flag"
// @Success 200 {object} util.Response{data=object} "flag updated"
// @Router /api/accept-messages [post]
func (c *MessageController) SetAcceptMessages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AcceptMessagesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	if err := c.MessageService.SetAcceptingMessages(claims.UserID, *req.AcceptMessages); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Message acceptance status updated", gin.H{"isAcceptingMessages": *req.AcceptMessages})
}
