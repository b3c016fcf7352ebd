// Package bitkey packs piece positions into compact bit-level keys for
// duplicate detection and novelty tables.
//
// A state key is the concatenation of one atom per piece. An atom is the
// triple <piece_id><y><x>, each field written little-endian into the minimum
// number of bits for the board geometry. Subset keys concatenate the atoms of
// a sorted index subset and are used by the width-w novelty test.
package bitkey

import "math/bits"

// Bits returns the number of bits needed to distinguish n values, at least 1.
func Bits(n int) int {
	if n <= 2 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// SetBit sets bit idx of buf, ascending bit order within each byte.
func SetBit(buf []byte, idx int) {
	buf[idx>>3] |= 1 << (idx & 7)
}

// ClearBit clears bit idx of buf.
func ClearBit(buf []byte, idx int) {
	buf[idx>>3] &^= 1 << (idx & 7)
}

// GetBit reads bit idx of buf.
func GetBit(buf []byte, idx int) bool {
	return buf[idx>>3]&(1<<(idx&7)) != 0
}

// Geometry fixes the bit widths of a key for one board shape.
type Geometry struct {
	Pieces int
	PBits  int
	HBits  int
	WBits  int
}

// NewGeometry derives the key geometry for a board with the given piece
// count, line count and width.
func NewGeometry(pieces, lines, width int) Geometry {
	return Geometry{
		Pieces: pieces,
		PBits:  Bits(pieces),
		HBits:  Bits(lines),
		WBits:  Bits(width),
	}
}

// AtomBits is the width of one <piece_id><y><x> atom.
func (g Geometry) AtomBits() int {
	return g.PBits + g.HBits + g.WBits
}

// KeyBits is the width of a full state key.
func (g Geometry) KeyBits() int {
	return g.AtomBits() * g.Pieces
}

// KeyBytes is the full key width rounded up to whole bytes, at least 1.
func (g Geometry) KeyBytes() int {
	return keyBytes(g.KeyBits())
}

// SubsetBytes is the byte width of a k-atom subset key, at least 1.
func (g Geometry) SubsetBytes(k int) int {
	return keyBytes(g.AtomBits() * k)
}

func keyBytes(bitCount int) int {
	n := (bitCount + 7) / 8
	if n <= 0 {
		n = 1
	}
	return n
}

func putField(dst []byte, bitIdx, value, width int) int {
	for j := 0; j < width; j++ {
		if (value>>j)&1 == 1 {
			SetBit(dst, bitIdx)
		} else {
			ClearBit(dst, bitIdx)
		}
		bitIdx++
	}
	return bitIdx
}

// Pack writes the full state key for the given piece coordinates into dst,
// which must be at least KeyBytes long. Atom order is piece 0 first.
func (g Geometry) Pack(dst []byte, pieceY, pieceX []int) {
	bitIdx := 0
	for p := 0; p < g.Pieces; p++ {
		bitIdx = putField(dst, bitIdx, p, g.PBits)
		bitIdx = putField(dst, bitIdx, pieceY[p], g.HBits)
		bitIdx = putField(dst, bitIdx, pieceX[p], g.WBits)
	}
}

// PackSubset copies the atoms named by the sorted index list out of a full
// key into dst, which must be at least SubsetBytes(len(indices)) long.
func (g Geometry) PackSubset(dst []byte, full []byte, indices []int) {
	for i := range dst {
		dst[i] = 0
	}
	atom := g.AtomBits()
	dstBit := 0
	for _, idx := range indices {
		srcBit := idx * atom
		for j := 0; j < atom; j++ {
			if GetBit(full, srcBit+j) {
				SetBit(dst, dstBit)
			}
			dstBit++
		}
	}
}

// FirstCombination resets indices to the lexicographically first
// k-combination {0, 1, .., k-1}.
func FirstCombination(indices []int) {
	for i := range indices {
		indices[i] = i
	}
}

// NextCombination advances indices to the next k-combination of {0..n-1} in
// lexicographic order, returning false after the last one.
func NextCombination(indices []int, n int) bool {
	k := len(indices)
	for i := k - 1; i >= 0; i-- {
		if indices[i] < n-(k-i) {
			indices[i]++
			for j := i + 1; j < k; j++ {
				indices[j] = indices[j-1] + 1
			}
			return true
		}
	}
	return false
}
