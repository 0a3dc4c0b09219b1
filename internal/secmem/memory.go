// Package secmem provides zeroizable buffers for key material and
// constant-time comparison helpers used by the signing algorithms.
package secmem

import (
	"crypto/subtle"
	"runtime"
	"sync"
)

// Buffer holds a copy of sensitive bytes and zeroes them on Destroy.
type Buffer struct {
	mu   sync.Mutex
	data []byte
}

// NewBuffer copies data into a fresh Buffer. The caller keeps ownership of
// the original slice.
func NewBuffer(data []byte) *Buffer {
	b := &Buffer{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Bytes returns the underlying slice. The slice is only valid until Destroy
// is called.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len reports the length of the held key material.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Destroy zeroes the buffer. Safe to call more than once.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	Zero(b.data)
	b.data = nil
}

// Zero overwrites data with zeroes.
func Zero(data []byte) {
	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}

// Equal compares two byte slices in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
