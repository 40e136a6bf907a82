package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-universe/rules"
)

const (
	cellAlive = "◼"
	cellDead  = "◻"
)

// RandomSource produces uniform floats in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Coord addresses a single cell by row and column
type Coord struct {
	Row, Col uint
}

// Universe is a toroidal Game of Life grid backed by a packed bit-per-cell store
type Universe struct {
	width  uint
	height uint

	// cells holds the current generation, next is the tick target.
	// Both always hold width*height bits and are swapped after every tick.
	cells *bitset.BitSet
	next  *bitset.BitSet

	random RandomSource
	pool   *BufferPool
}

// Option configures a Universe at construction
type Option func(*Universe)

// WithRandom injects the random source used by Randomize
func WithRandom(src RandomSource) Option {
	return func(u *Universe) {
		u.random = src
	}
}

// WithBufferPool makes the universe draw its cell buffers from pool and return them on resize
func WithBufferPool(pool *BufferPool) Option {
	return func(u *Universe) {
		u.pool = pool
	}
}

// NewUniverse creates an all-dead universe with the specified dimensions
func NewUniverse(width, height uint, opts ...Option) (*Universe, error) {
	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrZeroDimension, "[NewUniverse] got %dx%d", width, height)
	}
	u := &Universe{
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.random == nil {
		u.random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	u.allocate()
	return u, nil
}

// Width returns the width of the grid in cells
func (u *Universe) Width() uint {
	return u.width
}

// Height returns the height of the grid in cells
func (u *Universe) Height() uint {
	return u.height
}

// Cells returns a read-only view of the current generation.
// The view is only valid until the next mutating call.
func (u *Universe) Cells() Cells {
	return Cells{
		bits:   u.cells,
		width:  u.width,
		height: u.height,
	}
}

// index maps a cell to its bit. Callers guarantee row < height and col < width.
func (u *Universe) index(row, col uint) uint {
	return row*u.width + col
}

// liveNeighborCount counts the live cells among the eight wrapped neighbours of (row, col)
func (u *Universe) liveNeighborCount(row, col uint) (count uint8) {
	for _, deltaRow := range [3]uint{u.height - 1, 0, 1} {
		for _, deltaCol := range [3]uint{u.width - 1, 0, 1} {
			if deltaRow == 0 && deltaCol == 0 {
				continue
			}
			neighbor := u.index((row+deltaRow)%u.height, (col+deltaCol)%u.width)
			if u.cells.Test(neighbor) {
				count++
			}
		}
	}
	return
}

// Tick advances the universe by one generation.
// Every cell of next is written from the current generation before the buffers swap.
func (u *Universe) Tick() {
	for row := uint(0); row < u.height; row++ {
		for col := uint(0); col < u.width; col++ {
			idx := u.index(row, col)
			u.next.SetTo(idx, rules.Conway(u.cells.Test(idx), u.liveNeighborCount(row, col)))
		}
	}
	u.cells, u.next = u.next, u.cells
}

// SetCells marks every given cell alive, leaving the others untouched.
// Nothing is written if any coordinate is outside the grid.
func (u *Universe) SetCells(coords ...Coord) error {
	for _, c := range coords {
		if c.Row >= u.height || c.Col >= u.width {
			return errors.Wrapf(ErrOutOfRange, "[SetCells] (%d, %d) on %dx%d grid", c.Row, c.Col, u.width, u.height)
		}
	}
	for _, c := range coords {
		u.cells.Set(u.index(c.Row, c.Col))
	}
	return nil
}

// Randomize sets each cell alive when the random source yields strictly more than 0.5
func (u *Universe) Randomize() {
	for i := uint(0); i < u.width*u.height; i++ {
		u.cells.SetTo(i, u.random.Float64() > 0.5)
	}
}

// Clear kills every cell
func (u *Universe) Clear() {
	u.cells.ClearAll()
}

// Empty kills every cell. It is the same operation as Clear, kept for hosts that bind both names.
func (u *Universe) Empty() {
	u.Clear()
}

// SetWidth changes the width and reallocates the grid. All cells are dead afterwards,
// even when the width is unchanged.
func (u *Universe) SetWidth(width uint) error {
	if width == 0 {
		return errors.Wrapf(ErrZeroDimension, "[SetWidth] width %d", width)
	}
	u.width = width
	u.allocate()
	return nil
}

// SetHeight changes the height and reallocates the grid. All cells are dead afterwards,
// even when the height is unchanged.
func (u *Universe) SetHeight(height uint) error {
	if height == 0 {
		return errors.Wrapf(ErrZeroDimension, "[SetHeight] height %d", height)
	}
	u.height = height
	u.allocate()
	return nil
}

// ToggleCell flips the cell at (row, col), wrapping both coordinates onto the grid
func (u *Universe) ToggleCell(row, col uint) {
	u.cells.Flip(u.index(row%u.height, col%u.width))
}

// ActivateCell makes the cell at (row, col) alive, wrapping both coordinates onto the grid
func (u *Universe) ActivateCell(row, col uint) {
	u.cells.Set(u.index(row%u.height, col%u.width))
}

// LiveCells returns the number of living cells
func (u *Universe) LiveCells() uint {
	return u.cells.Count()
}

// Hash returns an MD5 digest of the dimensions and the packed cell store
func (u *Universe) Hash() string {
	words := u.cells.Bytes()
	buf := make([]byte, 0, 16+8*len(words))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(u.width))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(u.height))
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return fmt.Sprintf("%x", md5.Sum(buf))
}

// String draws the grid one row per line
func (u *Universe) String() string {
	var sb strings.Builder
	sb.Grow(int(u.width*u.height)*len(cellAlive) + int(u.height))
	for row := uint(0); row < u.height; row++ {
		for col := uint(0); col < u.width; col++ {
			if u.cells.Test(u.index(row, col)) {
				sb.WriteString(cellAlive)
			} else {
				sb.WriteString(cellDead)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// allocate replaces both buffers with all-dead stores sized for the current dimensions
func (u *Universe) allocate() {
	u.pool.Put(u.cells)
	u.pool.Put(u.next)

	size := u.width * u.height
	u.cells = u.pool.Get(size)
	u.next = u.pool.Get(size)
}
