package service

import (
	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/util"
	"feedback_backend/pkg/monitoring"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MessageService struct {
	Messages *repository.MessageRepository
	Users    *repository.UserRepository
}

func NewMessageService(messages *repository.MessageRepository, users *repository.UserRepository) *MessageService {
	return &MessageService{Messages: messages, Users: users}
}

// List returns the account's messages, newest first.
func (s *MessageService) List(userID uint) ([]model.Message, error) {
	if _, err := s.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find user")
	}

	msgs, err := s.Messages.ListByUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}
	SortNewestFirst(msgs)
	return msgs, nil
}

// SortNewestFirst orders messages by CreatedAt descending. Equal timestamps keep no particular order.
func SortNewestFirst(msgs []model.Message) {
	slices.SortFunc(msgs, func(a, b model.Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Send stores an anonymous message for the account named username.
func (s *MessageService) Send(username, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || len([]rune(content)) > util.MessageMaxLen {
		return nil, util.NewValidationError("content", "content must be between 1 and 500 characters")
	}

	user, err := s.Users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find recipient")
	}
	if !user.IsAcceptingMessages {
		return nil, util.ErrNotAccepting
	}

	msg := &model.Message{UserID: user.ID, Content: content}
	if err := s.Messages.Create(msg); err != nil {
		return nil, errors.Wrap(err, "create message")
	}
	monitoring.MessagesSent.Inc()
	return msg, nil
}

func (s *MessageService) Delete(userID, messageID uint) error {
	if err := s.Messages.DeleteOwned(userID, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrMessageNotFound
		}
		return errors.Wrap(err, "delete message")
	}
	return nil
}

func (s *MessageService) AcceptingMessages(userID uint) (bool, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrUserNotFound
		}
		return false, errors.Wrap(err, "find user")
	}
	return user.IsAcceptingMessages, nil
}

func (s *MessageService) SetAcceptingMessages(userID uint, accepting bool) error {
	if err := s.Users.SetAcceptingMessages(userID, accepting); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return errors.Wrap(err, "update accepting messages")
	}
	return nil
}
