package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserVerification(t *testing.T) {
	code := "123456"
	expiry := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)

	u := &User{OTPCode: &code, OTPExpiresAt: &expiry}
	assert.Equal(t, Unverified{Code: code, ExpiresAt: expiry}, u.Verification())

	u = &User{}
	assert.Equal(t, Unverified{}, u.Verification())

	u = &User{IsVerified: true, OTPCode: &code}
	assert.Equal(t, Verified{}, u.Verification())
}

func TestUserPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("Secret123"))
	assert.NotEqual(t, "Secret123", u.Password)
	assert.True(t, u.CheckPassword("Secret123"))
	assert.False(t, u.CheckPassword("secret123"))
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, NoRole.Valid())
	assert.True(t, Teacher.Valid())
	assert.True(t, Student.Valid())
	assert.False(t, UserRole("admin").Valid())
}

func TestTestWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	test := &Test{StartTime: start, EndTime: start.Add(time.Hour)}

	assert.False(t, test.Started(start.Add(-time.Second)))
	assert.True(t, test.Started(start))
	assert.True(t, test.Open(start))
	assert.True(t, test.Open(start.Add(59*time.Minute)))
	assert.False(t, test.Open(start.Add(time.Hour)))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID(GenerateUUID()))
	assert.False(t, IsUUID("not-a-uuid"))
}
