package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	// NoRole marks accounts of the plain feedback app.
	NoRole  UserRole = ""
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

func (r UserRole) Valid() bool {
	return r == NoRole || r == Student || r == Teacher
}

// swagger:model User
type User struct {
	BaseModel
	Username            string     `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email               string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"size:100;not null" json:"-"`
	Role                UserRole   `gorm:"size:10" json:"role,omitempty"`
	IsVerified          bool       `gorm:"not null;default:false" json:"isVerified"`
	OTPCode             *string    `gorm:"column:otp_code;size:6" json:"-"`
	OTPExpiresAt        *time.Time `gorm:"column:otp_expires_at" json:"-"`
	IsAcceptingMessages bool       `gorm:"not null;default:true" json:"isAcceptingMessages"`
	Messages            []Message  `json:"-"`
	// owned tests for teachers, attempted tests for students
	Tests []Test `gorm:"many2many:user_tests" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// VerificationState is either Verified or Unverified. OTP logic works on this
// value rather than on the nullable columns.
type VerificationState interface {
	isVerificationState()
}

type Verified struct{}

// Unverified carries the outstanding code, if any. An empty Code means no code was issued.
type Unverified struct {
	Code      string
	ExpiresAt time.Time
}

func (Verified) isVerificationState()   {}
func (Unverified) isVerificationState() {}

func (u *User) Verification() VerificationState {
	if u.IsVerified {
		return Verified{}
	}
	var state Unverified
	if u.OTPCode != nil {
		state.Code = *u.OTPCode
	}
	if u.OTPExpiresAt != nil {
		state.ExpiresAt = *u.OTPExpiresAt
	}
	return state
}
