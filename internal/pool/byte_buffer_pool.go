package pool

import (
	"sync"
)

// Default buffer sizes for the variable block pool. A variable block can never
// exceed the uint16 channel data offset, so larger buffers are never retained.
const (
	VariableBufferDefaultSize  = 512       // 512B, enough for the usual handful of records
	VariableBufferMaxThreshold = 1024 * 64 // 64KiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// PadTo appends zero bytes until the length is a multiple of alignment.
// It returns the number of bytes added.
func (bb *ByteBuffer) PadTo(alignment int) int {
	if alignment <= 1 {
		return 0
	}

	n := (alignment - len(bb.B)%alignment) % alignment
	for range n {
		bb.B = append(bb.B, 0)
	}

	return n
}

// Clone returns a copy of the buffer contents that does not alias the pooled memory.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var variableDefaultPool = NewByteBufferPool(VariableBufferDefaultSize, VariableBufferMaxThreshold)

// GetVariableBuffer retrieves a ByteBuffer from the default variable block pool.
func GetVariableBuffer() *ByteBuffer {
	return variableDefaultPool.Get()
}

// PutVariableBuffer returns a ByteBuffer to the default variable block pool.
func PutVariableBuffer(bb *ByteBuffer) {
	variableDefaultPool.Put(bb)
}
