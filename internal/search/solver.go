package search

import (
	"fmt"
	"log"
	"time"

	"github.com/hailam/gridlock/internal/board"
)

// Algorithm selects the scheduling strategy.
type Algorithm int

const (
	// AlgorithmFixedIW runs a single IW(numPieces+1) search.
	AlgorithmFixedIW Algorithm = 1
	// AlgorithmUCS runs a single unbounded uniform-cost search.
	AlgorithmUCS Algorithm = 2
	// AlgorithmIterativeWidening runs IW(1), IW(2), .. IW(numPieces) and
	// falls back to UCS when every width fails.
	AlgorithmIterativeWidening Algorithm = 3
)

// DefaultAlgorithm is used when no valid selection is supplied.
const DefaultAlgorithm = AlgorithmIterativeWidening

// Valid reports whether a is a recognized algorithm selector.
func (a Algorithm) Valid() bool {
	return a >= AlgorithmFixedIW && a <= AlgorithmIterativeWidening
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmFixedIW:
		return "fixed-iw"
	case AlgorithmUCS:
		return "ucs"
	case AlgorithmIterativeWidening:
		return "iterative-widening"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Outcome is the scheduler-level result: the successful sub-run's solution
// plus counters accumulated across every sub-run.
type Outcome struct {
	Result

	Algorithm Algorithm
	Pieces    int
	Elapsed   time.Duration

	// SolvingWidth is the novelty width of the successful sub-run, 0 for
	// UCS. Algorithms 1 and 2 report the width of their single run whether
	// or not it solved; iterative widening reports -1 when nothing solved.
	SolvingWidth int
	UsedFallback bool
}

// Steps returns the solution length in moves.
func (o Outcome) Steps() int {
	return len(o.Trail) / 2
}

// Label names the algorithm and width that solved, in the reporter's format.
func (o Outcome) Label() string {
	var label string
	switch o.Algorithm {
	case AlgorithmFixedIW:
		label = fmt.Sprintf("Algorithm1-IW(%d)", o.SolvingWidth)
	case AlgorithmUCS:
		label = "Algorithm2-UCS"
	default:
		switch {
		case o.Solved && o.SolvingWidth > 0:
			label = fmt.Sprintf("Algorithm3-IW(%d)", o.SolvingWidth)
		case o.Solved || o.UsedFallback:
			label = "Algorithm3-UCS"
		default:
			label = "Algorithm3-IW"
		}
	}
	if !o.Solved {
		label += " (no solution)"
	}
	return label
}

// Solver owns the search-level resources and schedules Run calls according
// to the selected algorithm. The searcher is stateless across runs, so one
// Solver may solve several boards in sequence.
type Solver struct {
	alg      Algorithm
	searcher *Searcher
}

// New creates a solver. An invalid selector falls back to the default
// iterative-widening strategy.
func New(alg Algorithm) *Solver {
	if !alg.Valid() {
		alg = DefaultAlgorithm
	}
	return &Solver{
		alg:      alg,
		searcher: NewSearcher(),
	}
}

// Algorithm returns the selected strategy.
func (s *Solver) Algorithm() Algorithm {
	return s.alg
}

// Stop aborts the search cooperatively.
func (s *Solver) Stop() {
	s.searcher.Stop()
}

// Solve runs the selected strategy against the initial board.
func (s *Solver) Solve(initial *board.Board) (Outcome, error) {
	s.searcher.Reset()

	out := Outcome{
		Algorithm:    s.alg,
		Pieces:       initial.NumPieces,
		SolvingWidth: -1,
	}
	start := time.Now()

	switch s.alg {
	case AlgorithmFixedIW:
		width := initial.NumPieces + 1
		res, err := s.searcher.Run(initial, width)
		out.Result = res
		if err != nil {
			return out, err
		}
		out.SolvingWidth = width

	case AlgorithmUCS:
		res, err := s.searcher.Run(initial, 0)
		out.Result = res
		if err != nil {
			return out, err
		}
		out.SolvingWidth = 0

	default:
		for width := 1; width <= initial.NumPieces && !out.Solved; width++ {
			log.Printf("[Solver] IW(%d) pass", width)
			res, err := s.searcher.Run(initial, width)
			out.accumulate(res)
			if err != nil {
				return out, err
			}
			if res.Solved {
				out.adopt(res)
				out.SolvingWidth = width
			}
		}
		if !out.Solved {
			log.Printf("[Solver] widening exhausted, falling back to UCS")
			out.UsedFallback = true
			res, err := s.searcher.Run(initial, 0)
			out.accumulate(res)
			if err != nil {
				return out, err
			}
			if res.Solved {
				out.adopt(res)
				out.SolvingWidth = 0
			}
		}
	}

	out.Elapsed = time.Since(start)
	return out, nil
}

// accumulate folds a sub-run's counters into the outcome.
func (o *Outcome) accumulate(res Result) {
	o.Expanded += res.Expanded
	o.Generated += res.Generated
	o.Duplicated += res.Duplicated
	o.Memory += res.Memory
}

// adopt takes the solution of a successful sub-run, keeping the accumulated
// counters.
func (o *Outcome) adopt(res Result) {
	expanded, generated, duplicated, memory := o.Expanded, o.Generated, o.Duplicated, o.Memory
	o.Result = res
	o.Expanded, o.Generated, o.Duplicated, o.Memory = expanded, generated, duplicated, memory
}
