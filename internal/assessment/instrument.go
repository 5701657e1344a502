package assessment

import "fmt"

// Option is one permissible answer to a question.
type Option struct {
	Value int    `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
}

// SeverityBand maps an inclusive score range to a severity level.
type SeverityBand struct {
	Min         int    `json:"min" bson:"min"`
	Max         int    `json:"max" bson:"max"`
	Level       string `json:"level" bson:"level"`
	Category    string `json:"category" bson:"category"` // display colour
	Description string `json:"description" bson:"description"`
}

// Contains reports whether score falls inside the band.
func (b SeverityBand) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Instrument is a fixed screening questionnaire such as PHQ-9.
type Instrument struct {
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Timeframe   string         `json:"timeframe"`
	Questions   []string       `json:"questions"`
	Options     []Option       `json:"options"`
	Bands       []SeverityBand `json:"bands"`
}

// MaxScore is the highest reachable total.
func (in *Instrument) MaxScore() int {
	return len(in.Questions) * (len(in.Options) - 1)
}

// AllowsValue reports whether v is one of the option values.
func (in *Instrument) AllowsValue(v int) bool {
	for _, o := range in.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Validate checks that the bands partition [0, MaxScore] in ascending order.
func (in *Instrument) Validate() error {
	if in.Code == "" {
		return fmt.Errorf("instrument has no code")
	}
	if len(in.Questions) == 0 {
		return fmt.Errorf("instrument %s: no questions", in.Code)
	}
	if len(in.Options) < 2 {
		return fmt.Errorf("instrument %s: need at least two options", in.Code)
	}
	if len(in.Bands) == 0 {
		return fmt.Errorf("instrument %s: empty severity table", in.Code)
	}

	next := 0
	for i, b := range in.Bands {
		if b.Min > b.Max {
			return fmt.Errorf("instrument %s: band %d (%s) has min %d > max %d", in.Code, i, b.Level, b.Min, b.Max)
		}
		if b.Min != next {
			return fmt.Errorf("instrument %s: band %d (%s) starts at %d, want %d", in.Code, i, b.Level, b.Min, next)
		}
		next = b.Max + 1
	}
	if max := in.MaxScore(); next-1 != max {
		return fmt.Errorf("instrument %s: severity table ends at %d, max score is %d", in.Code, next-1, max)
	}
	return nil
}
