package adjustment

import (
	"errors"
	"fmt"
	"math"
)

// ErrRankOrder is returned when ranks do not strictly increase.
var ErrRankOrder = errors.New("adjustment: ranks must strictly increase")

// StepUp enforces the step-up monotonicity of Benjamini-Hochberg style
// corrections over a stream in ascending rank order.
//
// Every rank of the stream is reported, either as kept (Keep) or as filtered
// out (Skip). Filtered ranks still bound the adjusted values of lower ranks;
// only their running minimum is stored, so memory stays proportional to the
// number of kept ranks.
type StepUp struct {
	adj     Adjuster
	values  []float64
	gaps    []float64 // gaps[i]: min over skipped ranks after kept i
	last    uint64
	started bool
}

// NewStepUp wraps adj.
func NewStepUp(adj Adjuster) *StepUp {
	return &StepUp{adj: adj}
}

func (s *StepUp) advance(rank uint64) error {
	if s.started && rank <= s.last {
		return fmt.Errorf("%w: %d after %d", ErrRankOrder, rank, s.last)
	}
	s.started = true
	s.last = rank
	return nil
}

// Keep records a kept rank and returns its index among kept ranks.
func (s *StepUp) Keep(pValue float64, rank uint64) (int, error) {
	if err := s.advance(rank); err != nil {
		return 0, err
	}
	s.values = append(s.values, s.adj.Adjust(pValue, rank))
	s.gaps = append(s.gaps, math.Inf(1))
	return len(s.values) - 1, nil
}

// Skip records a rank removed by filtering.
func (s *StepUp) Skip(pValue float64, rank uint64) error {
	if err := s.advance(rank); err != nil {
		return err
	}
	if n := len(s.gaps); n > 0 {
		s.gaps[n-1] = math.Min(s.gaps[n-1], s.adj.Adjust(pValue, rank))
	}
	return nil
}

// Len returns the number of kept ranks.
func (s *StepUp) Len() int { return len(s.values) }

// Finish returns the monotone adjusted value of every kept rank, indexed as
// returned by Keep.
func (s *StepUp) Finish() []float64 {
	out := make([]float64, len(s.values))
	running := math.Inf(1)
	for i := len(s.values) - 1; i >= 0; i-- {
		running = math.Min(running, math.Min(s.gaps[i], s.values[i]))
		out[i] = math.Min(1, running)
	}
	return out
}
