package board

import "fmt"

// Direction is one of the four slide directions, encoded as its trail letter.
type Direction byte

const (
	Up    Direction = 'u'
	Down  Direction = 'd'
	Left  Direction = 'l'
	Right Direction = 'r'
)

// Directions lists the four directions in expansion order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four slide directions.
func (d Direction) Valid() bool {
	return d == Up || d == Down || d == Left || d == Right
}

// Delta returns the (dy, dx) offset of one slide in d.
func (d Direction) Delta() (dy, dx int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	return string(byte(d))
}

// Apply slides the piece one cell in d on a clone of the board and appends the
// move to the clone's trail. It returns (nil, false) when the move is illegal:
// the piece is out of range, or any body cell would leave the grid or land on
// a wall or another piece.
func (b *Board) Apply(piece int, d Direction) (*Board, bool) {
	if piece < 0 || piece >= b.NumPieces || !d.Valid() {
		return nil, false
	}
	next := b.Clone()
	if !next.applyInPlace(piece, d) {
		return nil, false
	}
	next.trail = append(next.trail, Digit(piece), byte(d))
	return next, true
}

// applyInPlace performs the slide on b's own grid. Legality is decided for
// every body cell before any mutation; the rewrite then reads only the
// snapshot so a row-major pass never sees partially updated state.
func (b *Board) applyInPlace(piece int, d Direction) bool {
	digit, letter := Digit(piece), Letter(piece)
	dy, dx := d.Delta()

	if !b.locatePiece(piece) {
		return false
	}

	for y := 0; y < b.Lines; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.grid[y][x]
			if c != digit && c != letter {
				continue
			}
			ty, tx := y+dy, x+dx
			if !b.inBounds(ty, tx) {
				return false
			}
			t := b.grid[ty][tx]
			if t != digit && t != letter && !passable(t) {
				return false
			}
		}
	}

	for y := 0; y < b.Lines; y++ {
		copy(b.scratch[y], b.grid[y])
	}

	for y := 0; y < b.Lines; y++ {
		for x := 0; x < b.Width; x++ {
			saved := b.scratch[y][x]
			if saved != digit && saved != letter {
				continue
			}

			ty, tx := y+dy, x+dx
			if dest := b.scratch[ty][tx]; dest == Goal || dest == letter {
				b.grid[ty][tx] = letter
			} else {
				b.grid[ty][tx] = digit
			}

			// The cell stays occupied when the trailing neighbour (opposite
			// the move direction) also belongs to this piece and slides in.
			oy, ox := y-dy, x-dx
			occupied := false
			if b.inBounds(oy, ox) {
				if c := b.scratch[oy][ox]; c == digit || c == letter {
					occupied = true
				}
			}
			if occupied {
				continue
			}
			if saved == letter {
				b.grid[y][x] = Goal
			} else {
				b.grid[y][x] = Empty
			}
		}
	}

	b.locatePiece(piece)
	return true
}

// Replay applies a trail to a clone of the initial board and returns the
// resulting board. It fails on malformed trails and on illegal moves.
func Replay(initial *Board, trail string) (*Board, error) {
	if len(trail)%2 != 0 {
		return nil, fmt.Errorf("board: trail %q has odd length", trail)
	}
	cur := initial.Clone()
	for i := 0; i < len(trail); i += 2 {
		p, d := trail[i], Direction(trail[i+1])
		if p < '0' || p > '9' || !d.Valid() {
			return nil, fmt.Errorf("board: bad trail move %q at offset %d", trail[i:i+2], i)
		}
		next, ok := cur.Apply(int(p-'0'), d)
		if !ok {
			return nil, fmt.Errorf("board: illegal trail move %q at offset %d", trail[i:i+2], i)
		}
		cur = next
	}
	return cur, nil
}
