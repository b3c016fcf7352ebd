package search

import (
	"strings"
	"testing"

	"github.com/hailam/gridlock/internal/board"
)

func TestAlgorithmValid(t *testing.T) {
	for _, a := range []Algorithm{AlgorithmFixedIW, AlgorithmUCS, AlgorithmIterativeWidening} {
		if !a.Valid() {
			t.Errorf("Algorithm %d reported invalid", a)
		}
	}
	for _, a := range []Algorithm{0, -1, 4, 99} {
		if a.Valid() {
			t.Errorf("Algorithm %d reported valid", a)
		}
	}
}

func TestNewDefaultsOnInvalid(t *testing.T) {
	s := New(Algorithm(7))
	if s.Algorithm() != DefaultAlgorithm {
		t.Errorf("Algorithm() = %v, want %v", s.Algorithm(), DefaultAlgorithm)
	}
}

func TestSolveUCS(t *testing.T) {
	out, err := New(AlgorithmUCS).Solve(mustParse(t, "0 G "))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !out.Solved {
		t.Fatal("Not solved")
	}
	if out.Trail != "0r0r" {
		t.Errorf("Trail = %q, want %q", out.Trail, "0r0r")
	}
	if out.Steps() != 2 {
		t.Errorf("Steps() = %d, want 2", out.Steps())
	}
	if out.SolvingWidth != 0 {
		t.Errorf("SolvingWidth = %d, want 0", out.SolvingWidth)
	}
	if out.Label() != "Algorithm2-UCS" {
		t.Errorf("Label() = %q", out.Label())
	}
}

func TestSolveFixedIW(t *testing.T) {
	initial := mustParse(t, "01 G ")
	out, err := New(AlgorithmFixedIW).Solve(initial)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !out.Solved {
		t.Fatal("Not solved")
	}
	if out.SolvingWidth != initial.NumPieces+1 {
		t.Errorf("SolvingWidth = %d, want %d", out.SolvingWidth, initial.NumPieces+1)
	}
	if out.Label() != "Algorithm1-IW(3)" {
		t.Errorf("Label() = %q", out.Label())
	}
}

func TestIterativeWideningNeedsWidthTwo(t *testing.T) {
	// In this corridor piece 1 must cross the goal and park behind it before
	// piece 0 can follow. The last corridor state reuses only already-seen
	// single-piece positions, so IW(1) exhausts without a solution and the
	// scheduler must widen.
	initial := mustParse(t, "01 G ")

	iw1, err := NewSearcher().Run(initial, 1)
	if err != nil {
		t.Fatalf("IW(1) failed: %v", err)
	}
	if iw1.Solved {
		t.Fatal("IW(1) unexpectedly solved; the map no longer exercises widening")
	}

	out, err := New(AlgorithmIterativeWidening).Solve(initial)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !out.Solved {
		t.Fatal("Algorithm 3 must solve a solvable map")
	}
	if out.SolvingWidth != 2 {
		t.Errorf("SolvingWidth = %d, want 2", out.SolvingWidth)
	}
	if out.UsedFallback {
		t.Error("Fallback should not trigger when a width succeeds")
	}
	if out.Label() != "Algorithm3-IW(2)" {
		t.Errorf("Label() = %q", out.Label())
	}

	final, err := board.Replay(initial, out.Trail)
	if err != nil || !final.Winning() {
		t.Errorf("Trail %q does not replay to a win: %v", out.Trail, err)
	}
}

func TestIterativeWideningSolvesSimpleMaps(t *testing.T) {
	maps := [][]string{
		{"H  "},
		{"0G "},
		{"0 G "},
		{
			"#####",
			"#0  #",
			"#  G#",
			"#####",
		},
	}
	for _, rows := range maps {
		out, err := New(AlgorithmIterativeWidening).Solve(mustParse(t, rows...))
		if err != nil {
			t.Fatalf("Solve(%v) failed: %v", rows, err)
		}
		if !out.Solved {
			t.Errorf("Algorithm 3 failed on solvable map %v", rows)
		}
	}
}

func TestSolveUnsolvable(t *testing.T) {
	out, err := New(AlgorithmIterativeWidening).Solve(mustParse(t, "0#G"))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if out.Solved {
		t.Fatal("Unsolvable map reported solved")
	}
	if !out.UsedFallback {
		t.Error("Failing widening must fall back to UCS")
	}
	if out.SolvingWidth != -1 {
		t.Errorf("SolvingWidth = %d, want -1", out.SolvingWidth)
	}
	if out.Label() != "Algorithm3-UCS (no solution)" {
		t.Errorf("Label() = %q", out.Label())
	}
}

func TestCountersAccumulateAcrossWidths(t *testing.T) {
	initial := mustParse(t, "01 G ")

	iw1, err := NewSearcher().Run(initial, 1)
	if err != nil {
		t.Fatalf("IW(1) failed: %v", err)
	}

	out, err := New(AlgorithmIterativeWidening).Solve(initial)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if out.Expanded <= iw1.Expanded {
		t.Errorf("Accumulated expanded %d should exceed the failed IW(1) pass's %d",
			out.Expanded, iw1.Expanded)
	}
}

func TestWriteReport(t *testing.T) {
	initial := mustParse(t, "0 G ")
	out, err := New(AlgorithmUCS).Solve(initial)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	var sb strings.Builder
	WriteReport(&sb, out)
	got := sb.String()

	for _, want := range []string{
		"Solution path: 0r0r\n",
		"Expanded nodes: ",
		"Generated nodes: ",
		"Duplicated nodes: ",
		"Number of pieces in the puzzle: 1\n",
		"Number of steps in solution: 2\n",
		"Solved by Algorithm2-UCS\n",
		"Number of nodes expanded per second: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Report missing %q:\n%s", want, got)
		}
	}
}
