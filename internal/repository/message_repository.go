package repository

import (
	"feedback_backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(msg *model.Message) error {
	return r.DB.Create(msg).Error
}

// ListByUser returns the user's messages in storage order. Callers sort.
func (r *MessageRepository) ListByUser(userID uint) ([]model.Message, error) {
	var msgs []model.Message
	err := r.DB.Where("user_id = ?", userID).Find(&msgs).Error
	return msgs, err
}

// DeleteOwned removes a message only if it belongs to userID.
func (r *MessageRepository) DeleteOwned(userID, messageID uint) error {
	result := r.DB.Where("id = ? AND user_id = ?", messageID, userID).Delete(&model.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
