package model

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// BufferPool recycles packed cell buffers between resizes and restarts.
// A nil *BufferPool is valid and simply allocates.
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return bitset.New(0)
			},
		},
	}
}

// Get retrieves an all-dead buffer holding exactly size bits
func (p *BufferPool) Get(size uint) *bitset.BitSet {
	if p == nil {
		return bitset.New(size)
	}
	b := p.pool.Get().(*bitset.BitSet)
	if b.Len() != size {
		return bitset.New(size)
	}
	return b
}

// Put returns a buffer to the pool, clearing its state
func (p *BufferPool) Put(b *bitset.BitSet) {
	if p == nil || b == nil {
		return
	}
	b.ClearAll()
	p.pool.Put(b)
}
