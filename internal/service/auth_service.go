package service

import (
	"context"
	"feedback_backend/internal/config"
	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/util"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	OTP      *OTPService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, otp *OTPService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		OTP:      otp,
		Cfg:      cfg,
	}
}

type SignUpInput struct {
	Username string
	Email    string
	Password string
	Role     model.UserRole
}

// SignUp creates an unverified account, or refreshes a pending one registered
// with the same email, and mails a verification code.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	byUsername, err := s.UserRepo.FindByUsername(in.Username)
	switch {
	case err == nil:
		// a pending account may only be reclaimed through its own email
		if byUsername.IsVerified || byUsername.Email != email {
			return nil, util.ErrUsernameTaken
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(err, "find by username")
	}

	byEmail, err := s.UserRepo.FindByEmail(email)
	switch {
	case err == nil:
		if byEmail.IsVerified {
			return nil, util.ErrEmailRegistered
		}
		return s.refreshPending(ctx, byEmail, in)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(err, "find by email")
	}

	user := &model.User{
		Username:            in.Username,
		Email:               email,
		Role:                in.Role,
		IsAcceptingMessages: true,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "create user")
	}

	if _, err := s.OTP.Issue(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// refreshPending reissues the code before touching the stored password so a
// request refused by the resend cooldown leaves the pending account unchanged.
func (s *AuthService) refreshPending(ctx context.Context, user *model.User, in SignUpInput) (*model.User, error) {
	if _, err := s.OTP.Issue(ctx, user); err != nil {
		if errors.Is(err, util.ErrAlreadyVerified) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}

	if err := user.SetPassword(in.Password); err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	ok, err := s.UserRepo.ResetUnverified(user.ID, user.Password, in.Role)
	if err != nil {
		return nil, errors.Wrap(err, "reset pending account")
	}
	if !ok {
		// verified by a concurrent request
		return nil, util.ErrEmailRegistered
	}
	user.Role = in.Role
	return user, nil
}

// SignIn accepts an email or a username. Unknown accounts and wrong passwords
// are reported the same way.
func (s *AuthService) SignIn(identifier, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, errors.Wrap(err, "find user")
	}

	if !user.CheckPassword(password) {
		return "", nil, util.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, util.ErrUnverifiedAccount
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, errors.Wrap(err, "sign token")
	}
	return token, user, nil
}

// CheckUsername reports whether a new account may use username. A name held by
// a pending account counts as taken since only that account's email can reclaim it.
func (s *AuthService) CheckUsername(username string) error {
	if !util.ValidUsername(username) {
		return util.NewValidationError("username", "username must be 4-20 characters and contain only letters, digits or underscores")
	}
	_, err := s.UserRepo.FindByUsername(username)
	if err == nil {
		return util.ErrUsernameTaken
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return errors.Wrap(err, "find by username")
}

// GetCurrentUser loads the signed-in account. A missing row is ErrUserNotFound;
// store failures are returned wrapped.
func (s *AuthService) GetCurrentUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find current user")
	}
	return user, nil
}
