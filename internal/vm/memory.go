// Copyright 2026 The Guillotine Authors
// This file is part of the Guillotine EVM engine.
//
// Guillotine is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Guillotine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Guillotine. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

// initialMemoryCapacity is the backing array size a fresh Memory starts
// with, chosen to cover most call frames without a reallocation.
const initialMemoryCapacity = 4096

// Memory is the frame's byte-addressable linear memory. It grows by whole
// words and never shrinks within a frame's lifetime (spec §4.4); Resize is
// the only way to grow it, and it is always called with the gas-charged
// size computed by the interpreter before a memory opcode runs.
type Memory struct {
	store        []byte
	lastGasCost  uint64
}

var memoryPool = sync.Pool{
	New: func() interface{} {
		return &Memory{store: make([]byte, 0, initialMemoryCapacity)}
	},
}

// NewMemory returns an empty Memory, reused from the pool when possible.
func NewMemory() *Memory {
	return memoryPool.Get().(*Memory)
}

// ReturnMemory clears m and returns it to the pool.
func ReturnMemory(m *Memory) {
	m.Reset()
	memoryPool.Put(m)
}

// Len returns the current size of memory in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Reset empties memory and clears the last-charged gas cost, without
// releasing the backing array.
func (m *Memory) Reset() {
	m.store = m.store[:0]
	m.lastGasCost = 0
}

// Resize grows memory to at least size bytes, zero-filling the new region.
// It is a no-op if memory is already at least that large: memory never
// shrinks.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	if uint64(cap(m.store)) >= size {
		grown := m.store[:size]
		for i := len(m.store); i < int(size); i++ {
			grown[i] = 0
		}
		m.store = grown
		return
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
}

// Set writes data into memory starting at offset. The caller must have
// already grown memory to cover [offset, offset+size) via Resize.
func (m *Memory) Set(offset, size uint64, data []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		return
	}
	copy(m.store[offset:offset+size], data)
}

// Set32 writes val as a 32-byte big-endian word at offset. The caller must
// have already grown memory to cover the 32-byte window.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		return
	}
	val.WriteToSlice(m.store[offset : offset+32])
}

// GetCopy returns an independent copy of the size bytes starting at offset.
// It returns nil if size is zero or the region is out of bounds.
func (m *Memory) GetCopy(offset uint64, size int64) []byte {
	if size == 0 {
		return nil
	}
	if offset+uint64(size) > uint64(len(m.store)) {
		return nil
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+uint64(size)])
	return out
}

// GetPtr returns a slice referencing memory's own backing array. The
// returned slice is invalidated by any later Resize. It returns nil if size
// is zero.
func (m *Memory) GetPtr(offset uint64, size int) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+uint64(size)]
}

// Data returns a slice referencing the entirety of memory's backing array.
func (m *Memory) Data() []byte { return m.store }

// Copy moves length bytes from src to dst within memory, using Go's builtin
// copy semantics: overlapping regions copy as if through a temporary buffer
// whichever of dst and src is lower, matching MCOPY's required behavior.
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:dst+length], m.store[src:src+length])
}
