package service

import (
	"context"
	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/util"
	"feedback_backend/pkg/logger"
	"feedback_backend/pkg/monitoring"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	otpMin = 100000
	otpMax = 999999
)

type OTPService struct {
	Users    *repository.UserRepository
	Mailer   MailSender
	Cooldown CooldownStore
	AppName  string
	TTL      time.Duration
	// ResendAfter is the minimum gap between two codes for one account.
	ResendAfter time.Duration

	now  func() time.Time
	intn func(int) int
}

func NewOTPService(users *repository.UserRepository, mailer MailSender, cooldown CooldownStore, appName string, ttl, resendAfter time.Duration) *OTPService {
	return &OTPService{
		Users:       users,
		Mailer:      mailer,
		Cooldown:    cooldown,
		AppName:     appName,
		TTL:         ttl,
		ResendAfter: resendAfter,
		now:         time.Now,
		intn:        rand.IntN,
	}
}

// WithClock replaces the time source. Tests only.
func (s *OTPService) WithClock(now func() time.Time) *OTPService {
	s.now = now
	return s
}

// WithRand replaces the digit source. Tests only.
func (s *OTPService) WithRand(intn func(int) int) *OTPService {
	s.intn = intn
	return s
}

// GenerateCode returns a six digit code drawn uniformly from 100000-999999.
func (s *OTPService) GenerateCode() string {
	return strconv.Itoa(otpMin + s.intn(otpMax-otpMin+1))
}

// Issue stores a fresh code on the account, replacing any pending one, and mails it.
// At most one code is sent per account within ResendAfter; a refused call returns
// ErrOTPCooldown and leaves the pending code untouched.
func (s *OTPService) Issue(ctx context.Context, user *model.User) (code string, err error) {
	held, err := s.acquire(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if held {
		// a failed attempt must not lock the user out of a retry
		defer func() {
			if err != nil {
				s.release(ctx, user.ID)
			}
		}()
	}

	code = s.GenerateCode()
	expiresAt := s.now().Add(s.TTL)

	stored, err := s.Users.StoreOTP(user.ID, code, expiresAt)
	if err != nil {
		return "", errors.Wrap(err, "store otp")
	}
	if !stored {
		return "", alreadyVerified(user.ID)
	}

	user.OTPCode = &code
	user.OTPExpiresAt = &expiresAt

	body := VerificationEmail(s.AppName, user.Username, code, s.TTL)
	if err := s.Mailer.Send(ctx, user.Email, util.VerificationSubject, body); err != nil {
		logger.Log.Error("Failed to send verification email",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return "", errors.Wrap(err, "send verification email")
	}

	monitoring.OTPIssued.Inc()
	return code, nil
}

// acquire takes the account's resend slot. It reports whether a slot is now held.
func (s *OTPService) acquire(ctx context.Context, userID uint) (bool, error) {
	if s.Cooldown == nil || s.ResendAfter <= 0 {
		return false, nil
	}
	free, err := s.Cooldown.Acquire(ctx, resendKey(userID), s.ResendAfter)
	if err != nil {
		return false, errors.Wrap(err, "resend cooldown")
	}
	if !free {
		return false, util.ErrOTPCooldown
	}
	return true, nil
}

func (s *OTPService) release(ctx context.Context, userID uint) {
	if err := s.Cooldown.Release(ctx, resendKey(userID)); err != nil {
		logger.Log.Warn("Failed to release resend cooldown", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// Resend issues a new code to a pending account, subject to the same cooldown as Issue.
func (s *OTPService) Resend(ctx context.Context, identifier string) error {
	user, err := s.Users.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return errors.Wrap(err, "find user")
	}
	if user.IsVerified {
		return util.ErrAlreadyVerified
	}

	_, err = s.Issue(ctx, user)
	return err
}

// Verify checks code against the account named by identifier and marks it verified.
func (s *OTPService) Verify(ctx context.Context, identifier, code string) error {
	err := s.verify(identifier, code)
	monitoring.OTPVerifications.WithLabelValues(verifyOutcome(err)).Inc()
	return err
}

func (s *OTPService) verify(identifier, code string) error {
	user, err := s.Users.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return errors.Wrap(err, "find user")
	}

	if err := CheckCode(user.Verification(), code, s.now()); err != nil {
		return err
	}

	ok, err := s.Users.MarkVerified(user.ID, code)
	if err != nil {
		return errors.Wrap(err, "mark verified")
	}
	if ok {
		return nil
	}

	// Another request changed the row between read and write. Classify what it left behind.
	current, err := s.Users.FindByID(user.ID)
	if err != nil {
		return errors.Wrap(err, "reload user")
	}
	if err := CheckCode(current.Verification(), code, s.now()); err != nil {
		return err
	}
	return util.ErrInvalidCode
}

// CheckCode classifies a verification attempt. Order matters: a verified account
// reports AlreadyVerified whatever the code, and a matching but stale code reports
// Expired, never InvalidCode. A code is expired from the instant now reaches ExpiresAt.
func CheckCode(state model.VerificationState, code string, now time.Time) error {
	switch st := state.(type) {
	case model.Verified:
		return util.ErrAlreadyVerified
	case model.Unverified:
		if st.Code == "" || st.Code != code {
			return util.ErrInvalidCode
		}
		if !now.Before(st.ExpiresAt) {
			return util.ErrOTPExpired
		}
		return nil
	default:
		return errors.Errorf("unknown verification state %T", state)
	}
}

func alreadyVerified(userID uint) error {
	return errors.Wrapf(util.ErrAlreadyVerified, "user %d", userID)
}

func resendKey(userID uint) string {
	return "otp:resend:" + strconv.FormatUint(uint64(userID), 10)
}

func verifyOutcome(err error) string {
	switch {
	case err == nil:
		return "verified"
	case errors.Is(err, util.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, util.ErrAlreadyVerified):
		return "already_verified"
	case errors.Is(err, util.ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, util.ErrOTPExpired):
		return "expired"
	default:
		return "error"
	}
}
