package service

import (
	"feedback_backend/internal/model"
	"feedback_backend/internal/util"
	"math/rand/v2"
)

// SetPicker draws one question set of a test uniformly at random.
type SetPicker struct {
	intn func(int) int
}

// NewSetPicker uses intn as the index source; nil selects the shared math/rand generator.
func NewSetPicker(intn func(int) int) *SetPicker {
	if intn == nil {
		intn = rand.IntN
	}
	return &SetPicker{intn: intn}
}

func (p *SetPicker) Pick(test *model.Test) (*model.QuestionSet, error) {
	n := len(test.QuestionSets)
	if n == 0 {
		return nil, util.ErrNoQuestionSets
	}
	return &test.QuestionSets[p.intn(n)], nil
}
