package service

import (
	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/util"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AnswerService struct {
	Answers *repository.AnswerRepository
	Tests   *TestService
	Sets    *QuestionSetService
}

func NewAnswerService(answers *repository.AnswerRepository, tests *TestService, sets *QuestionSetService) *AnswerService {
	return &AnswerService{Answers: answers, Tests: tests, Sets: sets}
}

// Submit records the student's responses to one set. The test must be open and
// each student submits a test once.
func (s *AnswerService) Submit(studentID uint, testID, setID string, responses []string) (*model.Answer, error) {
	test, err := s.Tests.find(testID, false)
	if err != nil {
		return nil, err
	}
	now := s.Tests.now()
	if !test.Started(now) {
		return nil, util.ErrTestNotStarted
	}
	if !test.Open(now) {
		return nil, util.ErrTestClosed
	}

	set, err := s.Sets.findSet(testID, setID)
	if err != nil {
		return nil, err
	}

	cleaned, err := validateResponses(responses, len(set.Questions))
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		TestID:        testID,
		QuestionSetID: setID,
		StudentID:     studentID,
		Responses:     cleaned,
	}
	if err := s.Answers.Submit(answer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrTestAlreadySubmitted
		}
		return nil, errors.Wrap(err, "submit answer")
	}
	return answer, nil
}

func validateResponses(responses []string, questions int) ([]string, error) {
	if len(responses) != questions {
		return nil, util.NewValidationError("answers", fmt.Sprintf("expected %d answers, got %d", questions, len(responses)))
	}
	verr := &util.ValidationError{Err: "invalid answers"}
	cleaned := make([]string, len(responses))
	for i, r := range responses {
		cleaned[i] = strings.TrimSpace(r)
		if cleaned[i] == "" {
			verr.Add(fmt.Sprintf("answers[%d]", i), "answer must not be blank")
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return cleaned, nil
}

// ListForTest returns every submission of an owned test.
func (s *AnswerService) ListForTest(teacherID uint, testID string) ([]model.Answer, error) {
	if _, err := s.Tests.Owned(teacherID, testID); err != nil {
		return nil, err
	}
	answers, err := s.Answers.ListByTest(testID)
	if err != nil {
		return nil, errors.Wrap(err, "list answers")
	}
	return answers, nil
}

// Grade stores a grade and explanation. Only the teacher owning the test may grade.
func (s *AnswerService) Grade(teacherID uint, answerID string, grade int, explanation string) (*model.Answer, error) {
	if !model.IsUUID(answerID) {
		return nil, util.ErrAnswerNotFound
	}
	answer, err := s.Answers.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, errors.Wrap(err, "find answer")
	}
	if _, err := s.Tests.Owned(teacherID, answer.TestID); err != nil {
		return nil, err
	}

	answer.Grade = &grade
	answer.Explanation = strings.TrimSpace(explanation)
	if err := s.Answers.UpdateGrade(answer); err != nil {
		return nil, errors.Wrap(err, "grade answer")
	}
	return answer, nil
}
