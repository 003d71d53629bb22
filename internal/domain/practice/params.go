// Package practice implements the drill engine: working-set selection,
// the score model, and the two drill state machines (flashcards, matching).
// The package is pure logic — it never touches storage or transport — and
// mutates store-owned items in place through the scoring functions.
package practice

// Params defines all configurable parameters for the practice engine.
type Params struct {
	// MaxScore is the inclusive upper bound an item's score can reach
	// through correct answers. There is no lower bound.
	MaxScore int

	// RoundSize is the number of pairs presented per matching round.
	// The last round of a drill may be smaller.
	RoundSize int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MaxScore  int
	RoundSize int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MaxScore:  10,
		RoundSize: 10,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxScore > 0 {
		params.MaxScore = config.MaxScore
	}
	if config.RoundSize > 0 {
		params.RoundSize = config.RoundSize
	}

	return params
}
