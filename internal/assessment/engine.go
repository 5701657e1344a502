// Package assessment scores mood-screening questionnaires.
package assessment

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrUnknownInstrument  = errors.New("unknown instrument")
	ErrIncompleteAnswers  = errors.New("incomplete answers")
	ErrInvalidAnswerValue = errors.New("invalid answer value")
)

// Result is the outcome of one completed questionnaire.
type Result struct {
	InstrumentCode string       `json:"instrumentCode" bson:"instrumentCode"`
	TotalScore     int          `json:"totalScore" bson:"totalScore"`
	MaxScore       int          `json:"maxScore" bson:"maxScore"`
	Severity       SeverityBand `json:"severity" bson:"severity"`
	CompletedAt    time.Time    `json:"completedAt" bson:"completedAt"`
}

// Engine scores answers against a fixed set of instruments. It holds no
// mutable state after construction and is safe for concurrent use.
type Engine struct {
	instruments map[string]*Instrument
	now         func() time.Time
}

// NewEngine registers the given instruments. It panics if any severity table
// is misconfigured, since every later lookup depends on it.
func NewEngine(instruments ...*Instrument) *Engine {
	e := &Engine{
		instruments: make(map[string]*Instrument, len(instruments)),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, in := range instruments {
		if err := in.Validate(); err != nil {
			panic(fmt.Sprintf("assessment: %v", err))
		}
		e.instruments[in.Code] = in
	}
	return e
}

// DefaultEngine registers PHQ-9, GAD-7 and GHQ-12.
func DefaultEngine() *Engine {
	return NewEngine(PHQ9(), GAD7(), GHQ12())
}

// WithClock replaces the completion timestamp source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Instrument looks up an instrument by code.
func (e *Engine) Instrument(code string) (*Instrument, bool) {
	in, ok := e.instruments[code]
	return in, ok
}

// Instruments returns all registered instruments sorted by code.
func (e *Engine) Instruments() []*Instrument {
	out := make([]*Instrument, 0, len(e.instruments))
	for _, in := range e.instruments {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Compute sums the answers and resolves the severity band.
func (e *Engine) Compute(code string, answers []int) (*Result, error) {
	in, ok := e.instruments[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, code)
	}
	if len(answers) != len(in.Questions) {
		return nil, fmt.Errorf("%w: %s expects %d answers, got %d", ErrIncompleteAnswers, in.Name, len(in.Questions), len(answers))
	}

	total := 0
	for i, v := range answers {
		if !in.AllowsValue(v) {
			return nil, fmt.Errorf("%w: question %d has value %d", ErrInvalidAnswerValue, i+1, v)
		}
		total += v
	}

	band, ok := lookupBand(in.Bands, total)
	if !ok {
		// Unreachable for tables that passed Validate.
		panic(fmt.Sprintf("assessment: %s has no band for score %d", in.Code, total))
	}

	return &Result{
		InstrumentCode: in.Code,
		TotalScore:     total,
		MaxScore:       in.MaxScore(),
		Severity:       band,
		CompletedAt:    e.now(),
	}, nil
}

func lookupBand(bands []SeverityBand, score int) (SeverityBand, bool) {
	for _, b := range bands {
		if b.Contains(score) {
			return b, true
		}
	}
	return SeverityBand{}, false
}
