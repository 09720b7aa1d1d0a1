package service

import (
	"math"
	"math/rand/v2"
	"testing"

	"feedback_backend/internal/model"
	"feedback_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWithSets(n int) *model.Test {
	test := &model.Test{}
	for i := 0; i < n; i++ {
		set := model.QuestionSet{Position: i}
		set.ID = model.GenerateUUID()
		test.QuestionSets = append(test.QuestionSets, set)
	}
	return test
}

func TestPickSetUniform(t *testing.T) {
	const runs = 10000
	picker := NewSetPicker(rand.New(rand.NewPCG(7, 11)).IntN)

	for _, n := range []int{1, 2, 3, 10} {
		test := testWithSets(n)
		counts := make(map[int]int, n)
		for i := 0; i < runs; i++ {
			set, err := picker.Pick(test)
			require.NoError(t, err)
			counts[set.Position]++
		}

		expected := float64(runs) / float64(n)
		for pos := 0; pos < n; pos++ {
			// ~5 sigma for a binomial with p = 1/n
			tolerance := 5 * math.Sqrt(expected*(1-1/float64(n)))
			assert.InDelta(t, expected, float64(counts[pos]), tolerance+1, "n=%d position=%d", n, pos)
		}
	}
}

func TestPickSetEmpty(t *testing.T) {
	_, err := NewSetPicker(nil).Pick(&model.Test{})
	assert.ErrorIs(t, err, util.ErrNoQuestionSets)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestPickSetDoesNotMutate(t *testing.T) {
	test := testWithSets(3)
	before := append([]model.QuestionSet(nil), test.QuestionSets...)

	_, err := NewSetPicker(func(n int) int { return n - 1 }).Pick(test)
	require.NoError(t, err)
	assert.Equal(t, before, test.QuestionSets)
}
