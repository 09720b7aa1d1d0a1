package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/service"
	"feedback_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMessagesNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "inbox_owner", model.NoRole)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{base, base.Add(5 * time.Minute), base.Add(-time.Minute)} {
		msg := &model.Message{UserID: owner.ID, Content: at.Format(time.Kitchen)}
		msg.CreatedAt = at
		require.NoError(t, db.Create(msg).Error)
	}

	ctrl := NewMessageController(service.NewMessageService(repository.NewMessageRepository(db), repository.NewUserRepository(db)))
	r := gin.New()
	r.GET("/api/messages", signedIn(owner), ctrl.ListMessages)

	w, env := perform(t, r, http.MethodGet, "/api/messages", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Messages []MessageView `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Messages, 3)
	assert.True(t, data.Messages[0].CreatedAt.Equal(base.Add(5*time.Minute)))
	assert.True(t, data.Messages[1].CreatedAt.Equal(base))
	assert.True(t, data.Messages[2].CreatedAt.Equal(base.Add(-time.Minute)))
}

func TestSendMessage(t *testing.T) {
	db := testutil.NewDB(t)
	open := testutil.CreateUser(t, db, "open_inbox", model.NoRole)
	closed := testutil.CreateUser(t, db, "closed_inbox", model.NoRole)
	require.NoError(t, db.Model(closed).Update("is_accepting_messages", false).Error)

	ctrl := NewMessageController(service.NewMessageService(repository.NewMessageRepository(db), repository.NewUserRepository(db)))
	r := gin.New()
	r.POST("/api/send-message", ctrl.SendMessage)

	tests := []struct {
		name string
		req  SendMessageRequest
		want int
	}{
		{"delivered", SendMessageRequest{Username: open.Username, Content: "keep going"}, http.StatusCreated},
		{"not accepting", SendMessageRequest{Username: closed.Username, Content: "hello"}, http.StatusForbidden},
		{"unknown recipient", SendMessageRequest{Username: "nobody_here", Content: "hello"}, http.StatusNotFound},
		{"blank content", SendMessageRequest{Username: open.Username, Content: "   "}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := perform(t, r, http.MethodPost, "/api/send-message", tt.req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	var count int64
	require.NoError(t, db.Model(&model.Message{}).Where("user_id = ?", open.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAcceptMessagesToggle(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "toggle_user", model.NoRole)

	ctrl := NewMessageController(service.NewMessageService(repository.NewMessageRepository(db), repository.NewUserRepository(db)))
	r := gin.New()
	r.GET("/api/accept-messages", signedIn(owner), ctrl.GetAcceptMessages)
	r.POST("/api/accept-messages", signedIn(owner), ctrl.SetAcceptMessages)

	off := false
	w, _ := perform(t, r, http.MethodPost, "/api/accept-messages", AcceptMessagesRequest{AcceptMessages: &off})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := perform(t, r, http.MethodGet, "/api/accept-messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		IsAcceptingMessages bool `json:"isAcceptingMessages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.IsAcceptingMessages)

	w, _ = perform(t, r, http.MethodPost, "/api/accept-messages", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
