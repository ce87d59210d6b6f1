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
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemoryNew(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)
	if m.Len() != 0 {
		t.Errorf("new memory should be empty, got len=%d", m.Len())
	}
}

func TestMemoryResize(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)

	m.Resize(32)
	if m.Len() != 32 {
		t.Fatalf("Resize(32) should set len=32, got %d", m.Len())
	}
	for _, b := range m.Data() {
		if b != 0 {
			t.Fatalf("resized memory should be zero-filled")
		}
	}

	// Resize never shrinks.
	m.Resize(16)
	if m.Len() != 32 {
		t.Errorf("Resize should never shrink memory, got len=%d", m.Len())
	}
}

func TestMemorySetAndGetCopy(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)

	m.Resize(32)
	m.Set(0, 4, []byte{1, 2, 3, 4})

	got := m.GetCopy(0, 4)
	want := []byte{1, 2, 3, 4}
	if !bytes.Equal(got, want) {
		t.Errorf("GetCopy = %v, want %v", got, want)
	}

	// Mutating the copy must not affect memory.
	got[0] = 0xff
	if m.Data()[0] == 0xff {
		t.Errorf("GetCopy must return an independent copy")
	}
}

func TestMemoryGetCopyZeroSize(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)
	m.Resize(32)
	if got := m.GetCopy(0, 0); got != nil {
		t.Errorf("GetCopy with size=0 should return nil, got %v", got)
	}
}

func TestMemorySet32(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)

	m.Resize(32)
	val := uint256.NewInt(0xdeadbeef)
	m.Set32(0, val)

	got := new(uint256.Int).SetBytes(m.GetPtr(0, 32))
	if got.Cmp(val) != 0 {
		t.Errorf("Set32 round-trip mismatch: got %v, want %v", got, val)
	}
}

func TestMemoryGetPtrAliasesStorage(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)

	m.Resize(32)
	m.Set(0, 4, []byte{1, 2, 3, 4})

	ptr := m.GetPtr(0, 4)
	ptr[0] = 0xff
	if m.Data()[0] != 0xff {
		t.Errorf("GetPtr should alias the underlying storage")
	}
}

func TestMemoryGetPtrZeroSize(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)
	m.Resize(32)
	if got := m.GetPtr(0, 0); got != nil {
		t.Errorf("GetPtr with size=0 should return nil, got %v", got)
	}
}

func TestMemoryCopyOverlap(t *testing.T) {
	m := NewMemory()
	defer ReturnMemory(m)

	m.Resize(8)
	m.Set(0, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	m.Copy(2, 0, 4)

	want := []byte{1, 2, 1, 2, 3, 4, 7, 8}
	if !bytes.Equal(m.Data(), want) {
		t.Errorf("Copy(2,0,4) = %v, want %v", m.Data(), want)
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	m.Set(0, 4, []byte{1, 2, 3, 4})

	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Reset should zero length, got %d", m.Len())
	}
	if m.lastGasCost != 0 {
		t.Errorf("Reset should clear lastGasCost, got %d", m.lastGasCost)
	}
	ReturnMemory(m)
}

func TestMemoryPoolReuseIsEmpty(t *testing.T) {
	m1 := NewMemory()
	m1.Resize(64)
	ReturnMemory(m1)

	m2 := NewMemory()
	if m2.Len() != 0 {
		t.Errorf("memory reused from the pool should start empty, got len=%d", m2.Len())
	}
	ReturnMemory(m2)
}

func BenchmarkMemoryResize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		m := NewMemory()
		m.Resize(1024)
		ReturnMemory(m)
	}
}

func BenchmarkMemorySet32(b *testing.B) {
	m := NewMemory()
	defer ReturnMemory(m)
	m.Resize(32)
	val := uint256.NewInt(42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Set32(0, val)
	}
}

func BenchmarkMemoryGetCopy(b *testing.B) {
	m := NewMemory()
	defer ReturnMemory(m)
	m.Resize(256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.GetCopy(0, 32)
	}
}
