package model

import "github.com/bits-and-blooms/bitset"

// Cells is a borrowed, read-only view of a universe's packed cell store.
//
// The store is row-major: cell (row, col) is bit row*width+col, and bit i lives in
// word i/64 at position i%64. Renderers may read Words directly but must never write
// through it. A view is invalidated by the next Tick, resize, clear or mutation of
// the universe it came from.
type Cells struct {
	bits   *bitset.BitSet
	width  uint
	height uint
}

// Words exposes the packed backing memory of the store
func (c Cells) Words() []uint64 {
	return c.bits.Bytes()
}

// Alive reports whether the cell at (row, col) is alive. Out of range cells read as dead.
func (c Cells) Alive(row, col uint) bool {
	if row >= c.height || col >= c.width {
		return false
	}
	return c.bits.Test(row*c.width + col)
}

// Width is the grid width in cells
func (c Cells) Width() uint { return c.width }

// Height is the grid height in cells
func (c Cells) Height() uint { return c.height }

// Len is the number of cells in the store
func (c Cells) Len() uint {
	return c.bits.Len()
}

// Count is the number of living cells
func (c Cells) Count() uint {
	return c.bits.Count()
}

// Equal reports whether both views have the same dimensions and living cells
func (c Cells) Equal(other Cells) bool {
	return c.width == other.width &&
		c.height == other.height &&
		c.bits.Equal(other.bits)
}
