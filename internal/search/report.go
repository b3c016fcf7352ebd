package search

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// WriteReport prints the result block for a finished solve: solution path,
// timing, node counters, memory, puzzle facts and the solving label.
func WriteReport(w io.Writer, o Outcome) {
	fmt.Fprintf(w, "Solution path: %s\n", o.Trail)
	fmt.Fprintf(w, "Execution time: %f\n", o.Elapsed.Seconds())
	fmt.Fprintf(w, "Expanded nodes: %d\n", o.Expanded)
	fmt.Fprintf(w, "Generated nodes: %d\n", o.Generated)
	fmt.Fprintf(w, "Duplicated nodes: %d\n", o.Duplicated)
	fmt.Fprintf(w, "Auxiliary memory usage: %s\n", humanize.IBytes(o.Memory))
	fmt.Fprintf(w, "Number of pieces in the puzzle: %d\n", o.Pieces)
	fmt.Fprintf(w, "Number of steps in solution: %d\n", o.Steps())

	emptyCells := 0
	if o.Final != nil {
		emptyCells = o.Final.EmptyCells()
	}
	fmt.Fprintf(w, "Number of empty spaces: %d\n", emptyCells)
	fmt.Fprintf(w, "Solved by %s\n", o.Label())

	seconds := o.Elapsed.Seconds()
	if seconds <= 0 {
		seconds = 1
	}
	fmt.Fprintf(w, "Number of nodes expanded per second: %f\n", float64(o.Expanded+1)/seconds)
}
