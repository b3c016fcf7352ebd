// Package board models a sliding-block puzzle state: a rectangular character
// grid, the located piece coordinates, and the move trail that produced it.
package board

import "strings"

// MaxPieces is the highest number of pieces a map may contain.
const MaxPieces = 10

// Unknown marks a piece coordinate that has not been located yet.
const Unknown = -1

// Cell alphabet:
//
//	' '        empty passable cell
//	'G'        uncovered goal square
//	'0'..'9'   body cell of piece k = c-'0', not on a goal
//	'H'..'Q'   body cell of piece k = c-'H', on a goal
//
// Any other character is a wall.
const (
	Empty = ' '
	Goal  = 'G'
	Wall  = '#'
)

// Digit returns the off-goal grid character for a piece.
func Digit(piece int) byte {
	return byte('0' + piece)
}

// Letter returns the on-goal grid character for a piece.
func Letter(piece int) byte {
	return byte('H' + piece)
}

// IsPiece reports whether c is a body cell of any piece, and which.
func IsPiece(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'H' && c <= 'Q':
		return int(c - 'H'), true
	}
	return 0, false
}

func passable(c byte) bool {
	return c == Empty || c == Goal
}

// Board is one puzzle state. The grid is owned by the board; Clone produces a
// deep copy. The scratch grid is a same-shape snapshot buffer used by the move
// engine so that cell updates are computed against a consistent pre-move view.
type Board struct {
	Lines     int
	Width     int
	NumPieces int

	PieceX [MaxPieces]int
	PieceY [MaxPieces]int

	grid    [][]byte
	scratch [][]byte
	trail   []byte
}

// Clone returns a deep copy of the board, including its move trail.
func (b *Board) Clone() *Board {
	c := &Board{
		Lines:     b.Lines,
		Width:     b.Width,
		NumPieces: b.NumPieces,
		PieceX:    b.PieceX,
		PieceY:    b.PieceY,
	}
	c.grid = make([][]byte, b.Lines)
	c.scratch = make([][]byte, b.Lines)
	for y := 0; y < b.Lines; y++ {
		c.grid[y] = append([]byte(nil), b.grid[y]...)
		c.scratch[y] = make([]byte, b.Width)
	}
	c.trail = append([]byte(nil), b.trail...)
	return c
}

// Cell returns the grid character at (y, x).
func (b *Board) Cell(y, x int) byte {
	return b.grid[y][x]
}

// Trail returns the move transcript from the initial board to this one, as
// interleaved piece digits and direction letters.
func (b *Board) Trail() string {
	return string(b.trail)
}

// Steps returns the number of moves in the trail.
func (b *Board) Steps() int {
	return len(b.trail) / 2
}

func (b *Board) inBounds(y, x int) bool {
	return y >= 0 && y < b.Lines && x >= 0 && x < b.Width
}

// locatePiece records the first cell of the piece in row-major order, or
// Unknown when the piece is absent from the grid.
func (b *Board) locatePiece(piece int) bool {
	digit, letter := Digit(piece), Letter(piece)
	b.PieceX[piece] = Unknown
	b.PieceY[piece] = Unknown
	for y := 0; y < b.Lines; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.grid[y][x]
			if c == digit || c == letter {
				b.PieceY[piece] = y
				b.PieceX[piece] = x
				return true
			}
		}
	}
	return false
}

func (b *Board) locateAllPieces() bool {
	for p := 0; p < b.NumPieces; p++ {
		if !b.locatePiece(p) {
			return false
		}
	}
	return true
}

// Winning reports whether the board is solved: every goal is covered and no
// piece other than piece 0 sits on a goal. Letter 'H' (piece 0 on a goal) is
// the only on-goal form tolerated in a won position.
func (b *Board) Winning() bool {
	for y := 0; y < b.Lines; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.grid[y][x]
			if c == Goal || (c >= 'I' && c <= 'Q') {
				return false
			}
		}
	}
	return true
}

// EmptyCells counts the passable empty cells of the grid.
func (b *Board) EmptyCells() int {
	n := 0
	for y := 0; y < b.Lines; y++ {
		for x := 0; x < b.Width; x++ {
			if b.grid[y][x] == Empty {
				n++
			}
		}
	}
	return n
}

// PieceCells counts the body cells of a piece in either form.
func (b *Board) PieceCells(piece int) int {
	digit, letter := Digit(piece), Letter(piece)
	n := 0
	for y := 0; y < b.Lines; y++ {
		for x := 0; x < b.Width; x++ {
			if c := b.grid[y][x]; c == digit || c == letter {
				n++
			}
		}
	}
	return n
}

// String renders the grid one row per line, for logs and test output.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.Lines; y++ {
		sb.Write(b.grid[y])
		if y < b.Lines-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
