package service

import (
	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/util"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TestService struct {
	Tests *repository.TestRepository
	Users *repository.UserRepository

	now func() time.Time
}

func NewTestService(tests *repository.TestRepository, users *repository.UserRepository) *TestService {
	return &TestService{Tests: tests, Users: users, now: time.Now}
}

// WithClock replaces the time source. Tests only.
func (s *TestService) WithClock(now func() time.Time) *TestService {
	s.now = now
	return s
}

type TestInput struct {
	Title     string
	Topic     string
	StartTime time.Time
	EndTime   time.Time
}

// ValidateTestInput applies the create/update rules: every field present, the
// window starting strictly after now and ending strictly after it starts.
func ValidateTestInput(in TestInput, now time.Time) error {
	verr := &util.ValidationError{Err: "invalid test"}

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		verr.Add("title", "title is required")
	case len([]rune(title)) > util.TestTitleMaxLen:
		verr.Add("title", "title must be at most 30 characters")
	}

	topic := strings.TrimSpace(in.Topic)
	switch {
	case topic == "":
		verr.Add("topic", "topic is required")
	case len([]rune(topic)) > util.TestTopicMaxLen:
		verr.Add("topic", "topic must be at most 50 characters")
	}

	if in.StartTime.IsZero() {
		verr.Add("startTime", "startTime is required")
	} else if !in.StartTime.After(now) {
		verr.Add("startTime", "startTime must be in the future")
	}

	if in.EndTime.IsZero() {
		verr.Add("endTime", "endTime is required")
	} else if !in.StartTime.IsZero() && !in.EndTime.After(in.StartTime) {
		verr.Add("endTime", "endTime must be after startTime")
	}

	return verr.ErrOrNil()
}

func (s *TestService) Create(teacherID uint, in TestInput) (*model.Test, error) {
	if err := ValidateTestInput(in, s.now()); err != nil {
		return nil, err
	}

	test := &model.Test{
		Title:     strings.TrimSpace(in.Title),
		Topic:     strings.TrimSpace(in.Topic),
		StartTime: in.StartTime.UTC(),
		EndTime:   in.EndTime.UTC(),
		TeacherID: teacherID,
	}
	if err := s.Tests.Create(test); err != nil {
		return nil, errors.Wrap(err, "create test")
	}
	return test, nil
}

// Owned loads a test and checks that teacherID owns it.
func (s *TestService) Owned(teacherID uint, testID string) (*model.Test, error) {
	test, err := s.find(testID, false)
	if err != nil {
		return nil, err
	}
	if test.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return test, nil
}

// Get returns the test with its sets for the owner and without them for anyone else.
func (s *TestService) Get(userID uint, testID string) (*model.Test, error) {
	test, err := s.find(testID, true)
	if err != nil {
		return nil, err
	}
	if test.TeacherID != userID {
		test.QuestionSets = nil
	}
	return test, nil
}

func (s *TestService) Update(teacherID uint, testID string, in TestInput) (*model.Test, error) {
	test, err := s.Owned(teacherID, testID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTestInput(in, s.now()); err != nil {
		return nil, err
	}

	test.Title = strings.TrimSpace(in.Title)
	test.Topic = strings.TrimSpace(in.Topic)
	test.StartTime = in.StartTime.UTC()
	test.EndTime = in.EndTime.UTC()
	if err := s.Tests.Update(test); err != nil {
		return nil, errors.Wrap(err, "update test")
	}
	return test, nil
}

// Delete removes an owned test unless a student has it on their attempted list.
func (s *TestService) Delete(teacherID uint, testID string) error {
	if _, err := s.Owned(teacherID, testID); err != nil {
		return err
	}

	err := s.Tests.Delete(testID, func(tx *gorm.DB) error {
		attempts, err := s.Tests.WithTx(tx).CountStudentAttempts(testID)
		if err != nil {
			return errors.Wrap(err, "count attempts")
		}
		if attempts > 0 {
			return util.ErrTestAttempted
		}
		return nil
	})
	if err != nil && !errors.Is(err, util.ErrTestAttempted) {
		return errors.Wrap(err, "delete test")
	}
	return err
}

// List returns the caller's tests: owned ones for teachers, attempted ones for students.
func (s *TestService) List(userID uint) ([]model.Test, error) {
	tests, err := s.Users.ListTests(userID)
	if err != nil {
		return nil, errors.Wrap(err, "list tests")
	}
	return tests, nil
}

// Attempted reports whether the student has submitted the test. It fails before the test starts.
func (s *TestService) Attempted(studentID uint, testID string) (bool, error) {
	test, err := s.find(testID, false)
	if err != nil {
		return false, err
	}
	if !test.Started(s.now()) {
		return false, util.ErrTestNotStarted
	}
	attempted, err := s.Users.HasTest(studentID, testID)
	if err != nil {
		return false, errors.Wrap(err, "check attempt")
	}
	return attempted, nil
}

func (s *TestService) find(testID string, withSets bool) (*model.Test, error) {
	if !model.IsUUID(testID) {
		return nil, util.ErrTestNotFound
	}
	var (
		test *model.Test
		err  error
	)
	if withSets {
		test, err = s.Tests.FindWithSets(testID)
	} else {
		test, err = s.Tests.FindByID(testID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, errors.Wrap(err, "find test")
	}
	return test, nil
}
