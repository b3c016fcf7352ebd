// Package search implements uniform-cost search over sliding-block boards
// with optional Iterated Width novelty pruning, and the scheduler that
// iterates the novelty width with a UCS fallback.
package search

import (
	"errors"
	"sync/atomic"

	"github.com/hailam/gridlock/internal/bitkey"
	"github.com/hailam/gridlock/internal/board"
	"github.com/hailam/gridlock/internal/radix"
)

// ErrStopped is returned by Run when Stop was called mid-search.
var ErrStopped = errors.New("search: stopped")

// stopPollMask throttles stop-flag polling to every 1024 expansions.
const stopPollMask = 1023

// Result carries the outcome of one Run.
type Result struct {
	Solved bool
	Trail  string
	Final  *board.Board

	Expanded   uint64
	Generated  uint64
	Duplicated uint64

	// Memory is the approximate footprint of the closed set and novelty
	// tables at the end of the run, informational only.
	Memory uint64
}

// Searcher runs UCS/IW passes. It holds no state between runs other than the
// cooperative stop flag.
type Searcher struct {
	stopFlag atomic.Bool
}

// NewSearcher creates a searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Stop signals the current and any future Run to abort.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset clears the stop flag.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
}

// Run performs one search from the initial board. widthLimit 0 is pure UCS;
// widthLimit w >= 1 prunes by novelty at width w: a candidate is enqueued
// only if some subset of at most w piece atoms has never been seen in a
// previously expanded state. Novelty tables are fed on expansion, not on
// generation.
func (s *Searcher) Run(initial *board.Board, widthLimit int) (Result, error) {
	var res Result

	geo := bitkey.NewGeometry(initial.NumPieces, initial.Lines, initial.Width)
	fullKey := make([]byte, geo.KeyBytes())
	childKey := make([]byte, geo.KeyBytes())

	closed := radix.New(geo.AtomBits())

	noveltyLimit := widthLimit
	if noveltyLimit > initial.NumPieces {
		noveltyLimit = initial.NumPieces
	}
	if noveltyLimit < 0 {
		noveltyLimit = 0
	}

	var tables []*radix.Tree
	var subsetBufs [][]byte
	if noveltyLimit > 0 {
		tables = make([]*radix.Tree, noveltyLimit)
		subsetBufs = make([][]byte, noveltyLimit)
		for k := 1; k <= noveltyLimit; k++ {
			tables[k-1] = radix.New(geo.AtomBits())
			subsetBufs[k-1] = make([]byte, geo.SubsetBytes(k))
		}
	}

	queue := NewQueue()
	queue.Push(&Node{Board: initial.Clone(), Depth: 0})
	res.Generated++

	for !queue.Empty() {
		if res.Expanded&stopPollMask == 0 && s.stopFlag.Load() {
			return res, ErrStopped
		}

		cur := queue.PopMin()
		res.Expanded++

		if cur.Board.Winning() {
			res.Solved = true
			res.Trail = cur.Board.Trail()
			res.Final = cur.Board
			break
		}

		geo.Pack(fullKey, cur.Board.PieceY[:], cur.Board.PieceX[:])
		if closed.Contains(fullKey, geo.Pieces) {
			res.Duplicated++
			continue
		}
		closed.Insert(fullKey, geo.Pieces)

		for k := 1; k <= noveltyLimit; k++ {
			insertAllSubsets(tables[k-1], geo, fullKey, subsetBufs[k-1], k)
		}

		for piece := 0; piece < cur.Board.NumPieces; piece++ {
			for _, dir := range board.Directions {
				child, ok := cur.Board.Apply(piece, dir)
				if !ok {
					continue
				}

				geo.Pack(childKey, child.PieceY[:], child.PieceX[:])
				if closed.Contains(childKey, geo.Pieces) {
					res.Duplicated++
					continue
				}
				if noveltyLimit > 0 && !isNovel(tables, geo, childKey, subsetBufs, noveltyLimit) {
					res.Duplicated++
					continue
				}

				queue.Push(&Node{
					Board: child,
					Depth: cur.Depth + 1,
					Piece: piece,
					Dir:   dir,
				})
				res.Generated++
			}
		}
	}

	res.Memory = closed.MemoryBytes()
	for _, t := range tables {
		res.Memory += t.MemoryBytes()
	}
	return res, nil
}

// isNovel reports whether any subset of at most maxSize atoms of the key is
// absent from its novelty table.
func isNovel(tables []*radix.Tree, geo bitkey.Geometry, key []byte, bufs [][]byte, maxSize int) bool {
	for k := 1; k <= maxSize; k++ {
		if !allSubsetsPresent(tables[k-1], geo, key, bufs[k-1], k) {
			return true
		}
	}
	return false
}

// allSubsetsPresent checks every k-subset key of the full key against the
// size-k table.
func allSubsetsPresent(t *radix.Tree, geo bitkey.Geometry, key []byte, buf []byte, k int) bool {
	indices := make([]int, k)
	bitkey.FirstCombination(indices)
	for {
		geo.PackSubset(buf, key, indices)
		if !t.Contains(buf, k) {
			return false
		}
		if !bitkey.NextCombination(indices, geo.Pieces) {
			return true
		}
	}
}

// insertAllSubsets feeds every k-subset key of an expanded state into the
// size-k table.
func insertAllSubsets(t *radix.Tree, geo bitkey.Geometry, key []byte, buf []byte, k int) {
	indices := make([]int, k)
	bitkey.FirstCombination(indices)
	for {
		geo.PackSubset(buf, key, indices)
		t.Insert(buf, k)
		if !bitkey.NextCombination(indices, geo.Pieces) {
			return
		}
	}
}
