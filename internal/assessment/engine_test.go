package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestComputeKnownTotals(t *testing.T) {
	e := DefaultEngine()

	cases := []struct {
		code    string
		answers []int
		total   int
		level   string
	}{
		{CodePHQ9, repeat(3, 9), 27, "Severe"},
		{CodePHQ9, repeat(0, 9), 0, "Minimal"},
		{CodePHQ9, []int{1, 1, 1, 1, 1, 0, 0, 0, 0}, 5, "Mild"},
		{CodePHQ9, []int{2, 2, 2, 2, 2, 2, 2, 1, 0}, 15, "Moderately Severe"},
		{CodeGAD7, repeat(1, 7), 7, "Mild"},
		{CodeGAD7, repeat(2, 7), 14, "Moderate"},
		{CodeGAD7, repeat(3, 7), 21, "Severe"},
		{CodeGHQ12, repeat(1, 12), 12, "Good"},
		{CodeGHQ12, []int{2, 2, 2, 2, 2, 2, 2, 2, 0, 0, 0, 0}, 16, "Mild Distress"},
		{CodeGHQ12, repeat(3, 12), 36, "Severe Distress"},
	}

	for _, tc := range cases {
		res, err := e.Compute(tc.code, tc.answers)
		require.NoError(t, err, tc.code)
		assert.Equal(t, tc.total, res.TotalScore, tc.code)
		assert.Equal(t, tc.level, res.Severity.Level, tc.code)
		assert.Equal(t, tc.code, res.InstrumentCode)
	}
}

func TestComputeMaxScore(t *testing.T) {
	e := DefaultEngine()
	want := map[string]int{CodePHQ9: 27, CodeGAD7: 21, CodeGHQ12: 36}
	for code, max := range want {
		in, ok := e.Instrument(code)
		require.True(t, ok)
		res, err := e.Compute(code, repeat(0, len(in.Questions)))
		require.NoError(t, err)
		assert.Equal(t, max, res.MaxScore, code)
	}
}

func TestComputeErrors(t *testing.T) {
	e := DefaultEngine()

	_, err := e.Compute("bdi", repeat(0, 21))
	assert.ErrorIs(t, err, ErrUnknownInstrument)

	_, err = e.Compute(CodeGAD7, repeat(0, 9))
	assert.ErrorIs(t, err, ErrIncompleteAnswers)

	_, err = e.Compute(CodePHQ9, repeat(0, 8))
	assert.ErrorIs(t, err, ErrIncompleteAnswers)

	_, err = e.Compute(CodePHQ9, []int{0, 0, 0, 4, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidAnswerValue)

	_, err = e.Compute(CodePHQ9, []int{0, 0, -1, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidAnswerValue)
}

// Every reachable total lands in exactly one band.
func TestEveryTotalHasExactlyOneBand(t *testing.T) {
	for _, in := range DefaultEngine().Instruments() {
		for score := 0; score <= in.MaxScore(); score++ {
			matches := 0
			for _, b := range in.Bands {
				if b.Contains(score) {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "%s score %d", in.Code, score)
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	fixed := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	e := DefaultEngine().WithClock(func() time.Time { return fixed })

	a, err := e.Compute(CodeGAD7, []int{0, 1, 2, 3, 2, 1, 0})
	require.NoError(t, err)
	b, err := e.Compute(CodeGAD7, []int{0, 1, 2, 3, 2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, fixed, a.CompletedAt)
}

func TestValidateRejectsBrokenTables(t *testing.T) {
	gap := GAD7()
	gap.Bands[1].Min = 6
	assert.Error(t, gap.Validate())

	short := PHQ9()
	short.Bands = short.Bands[:4]
	assert.Error(t, short.Validate())

	overlap := GHQ12()
	overlap.Bands[2].Min = 20
	assert.Error(t, overlap.Validate())

	assert.Panics(t, func() { NewEngine(gap) })
}

func TestInstrumentsSorted(t *testing.T) {
	list := DefaultEngine().Instruments()
	require.Len(t, list, 3)
	assert.Equal(t, []string{CodeGAD7, CodeGHQ12, CodePHQ9}, []string{list[0].Code, list[1].Code, list[2].Code})
}
