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

// Address is a 20-byte account address.
type Address [20]byte

// StorageHost is the narrow boundary between a Frame and the world state it
// runs against (spec §6.3). The engine never reads or writes storage
// itself; every SLOAD/SSTORE/TLOAD/TSTORE delegates to the host supplied by
// the embedder.
type StorageHost interface {
	GetState(addr Address, key Hash256) uint256.Int
	SetState(addr Address, key Hash256, val uint256.Int)
	GetTransientState(addr Address, key Hash256) uint256.Int
	SetTransientState(addr Address, key Hash256, val uint256.Int)
}

// MapStorageHost is a plain in-memory StorageHost, suitable for tests and
// the standalone CLI runner. Each method holds an internal mutex for its
// duration, so individual calls are safe for concurrent use; a read followed
// by a write (as SSTORE does) is not atomic across frames.
type MapStorageHost struct {
	mu          sync.Mutex
	storage     map[Address]map[Hash256]uint256.Int
	transient   map[Address]map[Hash256]uint256.Int
}

// NewMapStorageHost returns an empty MapStorageHost.
func NewMapStorageHost() *MapStorageHost {
	return &MapStorageHost{
		storage:   make(map[Address]map[Hash256]uint256.Int),
		transient: make(map[Address]map[Hash256]uint256.Int),
	}
}

func (h *MapStorageHost) GetState(addr Address, key Hash256) uint256.Int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.storage[addr]; ok {
		return m[key]
	}
	return uint256.Int{}
}

func (h *MapStorageHost) SetState(addr Address, key Hash256, val uint256.Int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.storage[addr]
	if !ok {
		m = make(map[Hash256]uint256.Int)
		h.storage[addr] = m
	}
	m[key] = val
}

func (h *MapStorageHost) GetTransientState(addr Address, key Hash256) uint256.Int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.transient[addr]; ok {
		return m[key]
	}
	return uint256.Int{}
}

func (h *MapStorageHost) SetTransientState(addr Address, key Hash256, val uint256.Int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.transient[addr]
	if !ok {
		m = make(map[Hash256]uint256.Int)
		h.transient[addr] = m
	}
	m[key] = val
}

// ClearTransient drops all transient storage. Callers own transaction
// boundaries and must call this between transactions (EIP-1153 transient
// storage does not persist across them); the engine itself never calls it.
func (h *MapStorageHost) ClearTransient() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transient = make(map[Address]map[Hash256]uint256.Int)
}
