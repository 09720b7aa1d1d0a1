package controller

import (
	"feedback_backend/internal/model"
	"feedback_backend/internal/service"
	"feedback_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	OTPService  *service.OTPService
}

func NewAuthController(authService *service.AuthService, otpService *service.OTPService) *AuthController {
	return &AuthController{
		AuthService: authService,
		OTPService:  otpService,
	}
}

// SignUpRequest defines model for registration
// swagger:model SignUpRequest
type SignUpRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email,max=30"`
	Password string `json:"password" binding:"required,password"`
	Role     string `json:"role" binding:"omitempty,oneof=student teacher"`
}

// SignUp godoc
// @Summary Register a new account
// @Description Creates an unverified account and emails a six digit verification code
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body SignUpRequest true "account details"
// @Success 201 {object} util.Response{data=object} "verification code sent"
// @Failure 400 {object} util.Response "invalid input"
// @Failure 409 {object} util.Response "username or email taken"
// @Failure 500 {object} util.Response "verification email could not be sent"
// @Router /api/sign-up [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	user, err := c.AuthService.SignUp(ctx.Request.Context(), service.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"message":  "User registered successfully. Please verify your account.",
	})
}

// swagger:model VerifyRequest
type VerifyRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required,len=6,numeric"`
}

// Verify godoc
// @Summary Verify an account
// @Description Checks the emailed code. The identifier is a username or an email.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body VerifyRequest true "identifier and code"
// @Success 200 {object} util.Response{data=object} "account verified"
// @Failure 401 {object} util.Response "incorrect or expired code"
// @Failure 402 {object} util.Response "account already verified"
// @Failure 404 {object} util.Response "user not found"
// @Router /api/verify [post]
func (c *AuthController) Verify(ctx *gin.Context) {
	var req VerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	if err := c.OTPService.Verify(ctx.Request.Context(), req.Identifier, req.Code); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Account verified successfully", gin.H{"verified": true})
}

// swagger:model ResendRequest
type ResendRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// ResendOTP godoc
// @Summary Send a new verification code
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body ResendRequest true "username or email"
// @Success 200 {object} util.Response "code sent"
// @Failure 402 {object} util.Response "account already verified"
// @Failure 404 {object} util.Response "user not found"
// @Failure 429 {object} util.Response "requested too soon"
// @Router /api/resend-otp [post]
func (c *AuthController) ResendOTP(ctx *gin.Context) {
	var req ResendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	if err := c.OTPService.Resend(ctx.Request.Context(), req.Identifier); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Verification code sent", nil)
}

type CheckUsernameQuery struct {
	Username string `form:"username" binding:"required"`
}

// CheckUsername godoc
// @Summary Check whether a username is available
// @Tags auth
// @Produce  json
// @Param   username query string true "username"
// @Success 200 {object} util.Response "username is unique"
// @Failure 400 {object} util.Response "invalid username"
// @Failure 409 {object} util.Response "username taken"
// @Router /api/check-username [get]
func (c *AuthController) CheckUsername(ctx *gin.Context) {
	var q CheckUsernameQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	if err := c.AuthService.CheckUsername(q.Username); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Username is unique", gin.H{"available": true})
}

// swagger:model SignInRequest
type SignInRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// SignIn godoc
// @Summary Sign in
// @Description Accepts a username or an email and returns a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body SignInRequest true "credentials"
// @Success 200 {object} util.Response{data=object} "token issued"
// @Failure 401 {object} util.Response "invalid credentials"
// @Failure 403 {object} util.Response "account not verified"
// @Router /api/sign-in [post]
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindError(err))
		return
	}

	token, user, err := c.AuthService.SignIn(req.Identifier, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// GetProfile godoc
// @Summary Current account
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetCurrentUser(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
