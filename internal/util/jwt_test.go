package util

import (
	"testing"
	"time"

	"feedback_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		Username:            "jane_doe",
		Role:                model.Teacher,
		IsVerified:          true,
		IsAcceptingMessages: true,
	}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane_doe", claims.Username)
	assert.Equal(t, model.Teacher, claims.Role)
	assert.True(t, claims.Verified)
	assert.True(t, claims.AcceptingMessages)
}

func TestParseJWTRejects(t *testing.T) {
	user := &model.User{Username: "jane_doe"}

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "other")
	assert.Error(t, err)

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.Error(t, err)
}
