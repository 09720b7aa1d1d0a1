package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"feedback_backend/internal/config"
	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/service"
	"feedback_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func authEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	otp := service.NewOTPService(users, nopMailer{}, service.NewMemoryCooldown(nil), "Random Feedback", time.Hour, 0)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "controller-secret"}}
	ctrl := NewAuthController(service.NewAuthService(users, otp, cfg), otp)

	r := gin.New()
	r.POST("/api/sign-up", ctrl.SignUp)
	r.POST("/api/verify", ctrl.Verify)
	r.GET("/api/check-username", ctrl.CheckUsername)
	r.POST("/api/sign-in", ctrl.SignIn)
	r.GET("/api/profile/:as", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("as"), 10, 64)
		signedIn(&model.User{BaseModel: model.BaseModel{ID: uint(id)}, IsVerified: true})(c)
	}, ctrl.GetProfile)
	return r, db
}

func pendingCode(t *testing.T, db *gorm.DB, username string) string {
	t.Helper()
	var user model.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	require.NotNil(t, user.OTPCode)
	return *user.OTPCode
}

func TestSignUpAndVerify(t *testing.T) {
	r, db := authEngine(t)

	w, env := perform(t, r, http.MethodPost, "/api/sign-up", SignUpRequest{
		Username: "new_user",
		Email:    "New@Example.com",
		Password: "Secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	w, _ = perform(t, r, http.MethodPost, "/api/sign-in", SignInRequest{Identifier: "new_user", Password: "Secret123"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	code := pendingCode(t, db, "new_user")

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	w, _ = perform(t, r, http.MethodPost, "/api/verify", VerifyRequest{Identifier: "new_user", Code: wrong})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = perform(t, r, http.MethodPost, "/api/verify", VerifyRequest{Identifier: "new@example.com", Code: code})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Verified bool `json:"verified"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Verified)

	w, _ = perform(t, r, http.MethodPost, "/api/verify", VerifyRequest{Identifier: "new_user", Code: code})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w, env = perform(t, r, http.MethodPost, "/api/sign-in", SignInRequest{Identifier: "new_user", Password: "Secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signIn))
	assert.NotEmpty(t, signIn.Token)
}

func TestVerifyUnknownAccount(t *testing.T) {
	r, _ := authEngine(t)
	w, env := perform(t, r, http.MethodPost, "/api/verify", VerifyRequest{Identifier: "nobody", Code: "123456"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestSignUpValidation(t *testing.T) {
	r, _ := authEngine(t)
	w, env := perform(t, r, http.MethodPost, "/api/sign-up", SignUpRequest{
		Username: "x",
		Email:    "not-an-email",
		Password: "weak",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var fields []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"username", "email", "password"}, names)
}

func TestCheckUsername(t *testing.T) {
	r, db := authEngine(t)
	testutil.CreateUser(t, db, "taken_name", model.NoRole)

	w, _ := perform(t, r, http.MethodGet, "/api/check-username?username=taken_name", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = perform(t, r, http.MethodGet, "/api/check-username?username=free_name", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetProfile(t *testing.T) {
	r, db := authEngine(t)
	user := testutil.CreateUser(t, db, "profile_owner", model.NoRole)

	w, env := perform(t, r, http.MethodGet, "/api/profile/"+strconv.FormatUint(uint64(user.ID), 10), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "profile_owner", got.Username)

	w, _ = perform(t, r, http.MethodGet, "/api/profile/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w, _ = perform(t, r, http.MethodGet, "/api/profile/"+strconv.FormatUint(uint64(user.ID), 10), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
