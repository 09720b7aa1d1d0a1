package repository

import (
	"feedback_backend/internal/model"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

// FindByIdentifier looks an account up by email when identifier contains '@', by username otherwise.
func (r *UserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	if strings.Contains(identifier, "@") {
		return r.FindByEmail(identifier)
	}
	return r.FindByUsername(identifier)
}

// StoreOTP replaces the pending code of an unverified account. It reports false
// when the account was verified (or removed) after it was read.
func (r *UserRepository) StoreOTP(userID uint, code string, expiresAt time.Time) (bool, error) {
	result := r.DB.Model(&model.User{}).
		Where("id = ? AND is_verified = ?", userID, false).
		Updates(map[string]interface{}{
			"otp_code":       code,
			"otp_expires_at": expiresAt,
		})
	return result.RowsAffected == 1, result.Error
}

// MarkVerified flips the account to verified and clears the code, provided the
// row still holds the code that was checked. It reports false when another
// request changed the row first.
func (r *UserRepository) MarkVerified(userID uint, code string) (bool, error) {
	result := r.DB.Model(&model.User{}).
		Where("id = ? AND is_verified = ? AND otp_code = ?", userID, false, code).
		Updates(map[string]interface{}{
			"is_verified":    true,
			"otp_code":       nil,
			"otp_expires_at": nil,
		})
	return result.RowsAffected == 1, result.Error
}

// ResetUnverified replaces the credentials of a pending sign-up.
func (r *UserRepository) ResetUnverified(userID uint, passwordHash string, role model.UserRole) (bool, error) {
	result := r.DB.Model(&model.User{}).
		Where("id = ? AND is_verified = ?", userID, false).
		Updates(map[string]interface{}{
			"password": passwordHash,
			"role":     role,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *UserRepository) SetAcceptingMessages(userID uint, accepting bool) error {
	result := r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_accepting_messages", accepting)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListTests returns the tests on the user's list, newest window first.
func (r *UserRepository) ListTests(userID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.
		Joins("JOIN user_tests ut ON ut.test_id = tests.id").
		Where("ut.user_id = ?", userID).
		Order("tests.start_time desc").
		Find(&tests).Error
	return tests, err
}

func (r *UserRepository) HasTest(userID uint, testID string) (bool, error) {
	var count int64
	err := r.DB.Table("user_tests").
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	return count > 0, err
}

func addTest(tx *gorm.DB, userID uint, testID string) error {
	return tx.Table("user_tests").Create(map[string]interface{}{
		"user_id": userID,
		"test_id": testID,
	}).Error
}
