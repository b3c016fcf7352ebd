package board

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a map file and returns the validated initial board.
func Load(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// LoadReader parses a map from a reader. The map is a rectangular grid of
// cell-alphabet characters, one row per line. Pieces must be contiguously
// numbered from 0 and the map must contain at least one goal square, covered
// or not.
func LoadReader(r io.Reader) (*Board, error) {
	var rows [][]byte
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		rows = append(rows, []byte(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// Parse builds a board from in-memory rows. Used heavily by tests.
func Parse(rows ...string) (*Board, error) {
	byteRows := make([][]byte, len(rows))
	for i, r := range rows {
		byteRows[i] = []byte(r)
	}
	return fromRows(byteRows)
}

func fromRows(rows [][]byte) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("board: empty map")
	}

	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("board: empty first row")
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("board: row %d is %d cells wide, want %d", i, len(row), width)
		}
	}

	b := &Board{
		Lines: len(rows),
		Width: width,
	}
	b.grid = make([][]byte, b.Lines)
	b.scratch = make([][]byte, b.Lines)
	for y, row := range rows {
		b.grid[y] = append([]byte(nil), row...)
		b.scratch[y] = make([]byte, width)
	}

	goals := 0
	var seen [MaxPieces]bool
	maxPiece := -1
	for y := 0; y < b.Lines; y++ {
		for x := 0; x < width; x++ {
			c := b.grid[y][x]
			if c == Goal {
				goals++
			}
			if p, ok := IsPiece(c); ok {
				seen[p] = true
				if p > maxPiece {
					maxPiece = p
				}
				if c >= 'H' && c <= 'Q' {
					// A letter-form cell sits on a goal.
					goals++
				}
			}
		}
	}

	b.NumPieces = maxPiece + 1
	for p := 0; p < b.NumPieces; p++ {
		if !seen[p] {
			return nil, fmt.Errorf("board: pieces are not contiguously numbered, piece %d is missing", p)
		}
	}
	if goals == 0 {
		return nil, fmt.Errorf("board: map has no goal square")
	}

	if !b.locateAllPieces() {
		return nil, fmt.Errorf("board: failed to locate all pieces")
	}
	return b, nil
}
