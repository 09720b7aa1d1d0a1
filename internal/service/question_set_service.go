package service

import (
	"feedback_backend/internal/model"
	"feedback_backend/internal/util"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type QuestionSetService struct {
	Tests  *TestService
	Picker *SetPicker
}

func NewQuestionSetService(tests *TestService, picker *SetPicker) *QuestionSetService {
	return &QuestionSetService{Tests: tests, Picker: picker}
}

// ForStudent draws one of the test's sets. Sets are hidden until the test starts.
func (s *QuestionSetService) ForStudent(testID string) (*model.QuestionSet, error) {
	test, err := s.Tests.find(testID, true)
	if err != nil {
		return nil, err
	}
	if !test.Started(s.Tests.now()) {
		return nil, util.ErrTestNotStarted
	}
	return s.Picker.Pick(test)
}

// ValidateQuestions requires at least one question, each 5-100 characters after trimming.
func ValidateQuestions(questions []string) ([]string, error) {
	if len(questions) == 0 {
		return nil, util.NewValidationError("questions", "at least one question is required")
	}

	verr := &util.ValidationError{Err: "invalid question set"}
	cleaned := make([]string, len(questions))
	for i, q := range questions {
		q = strings.TrimSpace(q)
		n := len([]rune(q))
		if n < util.QuestionMinLen || n > util.QuestionMaxLen {
			verr.Add(fmt.Sprintf("questions[%d]", i), "question must be between 5 and 100 characters")
		}
		cleaned[i] = q
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return cleaned, nil
}

func (s *QuestionSetService) Create(teacherID uint, testID string, questions []string) (*model.QuestionSet, error) {
	if _, err := s.Tests.Owned(teacherID, testID); err != nil {
		return nil, err
	}
	cleaned, err := ValidateQuestions(questions)
	if err != nil {
		return nil, err
	}

	count, err := s.Tests.Tests.CountSets(testID)
	if err != nil {
		return nil, errors.Wrap(err, "count sets")
	}
	if count >= model.MaxQuestionSets {
		return nil, util.ErrQuestionSetLimit
	}

	set := &model.QuestionSet{TestID: testID, Position: int(count), Questions: cleaned}
	if err := s.Tests.Tests.CreateSet(set); err != nil {
		return nil, errors.Wrap(err, "create set")
	}
	return set, nil
}

func (s *QuestionSetService) Get(teacherID uint, testID, setID string) (*model.QuestionSet, error) {
	if _, err := s.Tests.Owned(teacherID, testID); err != nil {
		return nil, err
	}
	return s.findSet(testID, setID)
}

func (s *QuestionSetService) Update(teacherID uint, testID, setID string, questions []string) (*model.QuestionSet, error) {
	if _, err := s.Tests.Owned(teacherID, testID); err != nil {
		return nil, err
	}
	cleaned, err := ValidateQuestions(questions)
	if err != nil {
		return nil, err
	}

	set, err := s.findSet(testID, setID)
	if err != nil {
		return nil, err
	}
	set.Questions = cleaned
	if err := s.Tests.Tests.UpdateSet(set); err != nil {
		return nil, errors.Wrap(err, "update set")
	}
	return set, nil
}

func (s *QuestionSetService) Delete(teacherID uint, testID, setID string) error {
	if _, err := s.Tests.Owned(teacherID, testID); err != nil {
		return err
	}
	if err := s.Tests.Tests.DeleteSet(testID, setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSetNotFound
		}
		return errors.Wrap(err, "delete set")
	}
	return nil
}

func (s *QuestionSetService) findSet(testID, setID string) (*model.QuestionSet, error) {
	if !model.IsUUID(setID) {
		return nil, util.ErrSetNotFound
	}
	set, err := s.Tests.Tests.FindSet(testID, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSetNotFound
		}
		return nil, errors.Wrap(err, "find set")
	}
	return set, nil
}
