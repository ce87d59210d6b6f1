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

// Package stack implements the EVM's 1024-word operand stack and a separate
// pooled stack of uint32 stream indices (ReturnStack).
package stack

import (
	"sync"

	"github.com/holiman/uint256"
)

// Limit is the maximum number of words the operand stack may hold (spec
// §4.3). A push that would exceed it fails with StackOverflow.
const Limit = 1024

const initialCapacity = 16

// Stack is a LIFO of 256-bit words. The zero value is not usable; obtain one
// with New and return it to the pool with ReturnNormalStack when done.
type Stack struct {
	data []uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, initialCapacity)}
	},
}

// New returns an empty Stack, reused from the pool when possible.
func New() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnNormalStack clears s and returns it to the pool.
func ReturnNormalStack(s *Stack) {
	s.Reset()
	stackPool.Put(s)
}

// Len returns the number of words currently on the stack.
func (s *Stack) Len() int { return len(s.data) }

// Cap returns the stack's current backing capacity.
func (s *Stack) Cap() int { return cap(s.data) }

// Reset empties the stack without releasing its backing array.
func (s *Stack) Reset() { s.data = s.data[:0] }

// Push pushes a copy of val onto the stack.
func (s *Stack) Push(val *uint256.Int) {
	s.data = append(s.data, *val)
}

// PushN pushes vals in order, so the last element of vals ends up on top.
func (s *Stack) PushN(vals ...uint256.Int) {
	s.data = append(s.data, vals...)
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() *uint256.Int {
	n := len(s.data) - 1
	v := s.data[n]
	s.data = s.data[:n]
	return &v
}

// Peek returns a pointer to the top element without popping it. The pointer
// aliases the stack's backing array and is invalidated by the next Push.
func (s *Stack) Peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// Back returns a pointer to the n-th element from the top (0 is the top).
// Like Peek, the pointer aliases the backing array.
func (s *Stack) Back(n int) *uint256.Int {
	return &s.data[len(s.data)-1-n]
}

// Swap exchanges the top element with the element at depth n, counting the
// top itself as depth 1 (so Swap(2) exchanges the top two elements).
func (s *Stack) Swap(n int) {
	top := len(s.data) - 1
	other := top - n + 1
	s.data[top], s.data[other] = s.data[other], s.data[top]
}

// Dup pushes a copy of the n-th element from the top (DUP1..DUP16 pass
// n=1..16; DUP1 duplicates the current top).
func (s *Stack) Dup(n int) {
	v := s.data[len(s.data)-n]
	s.data = append(s.data, v)
}

// ReturnStack is an auxiliary stack of stream indices. It holds plain
// uint32s, not EVM words, and is never visible to bytecode. The planner and
// interpreter in package vm do not use it; fused jump targets are resolved
// directly in Build.
type ReturnStack struct {
	data []uint32
}

var returnStackPool = sync.Pool{
	New: func() interface{} {
		return &ReturnStack{data: make([]uint32, 0, initialCapacity)}
	},
}

// NewReturnStack returns an empty ReturnStack, reused from the pool when
// possible.
func NewReturnStack() *ReturnStack {
	return returnStackPool.Get().(*ReturnStack)
}

// ReturnRStack clears rs and returns it to the pool.
func ReturnRStack(rs *ReturnStack) {
	rs.data = rs.data[:0]
	returnStackPool.Put(rs)
}

// Push pushes a stream index.
func (rs *ReturnStack) Push(v uint32) {
	rs.data = append(rs.data, v)
}

// Pop removes and returns the top stream index.
func (rs *ReturnStack) Pop() uint32 {
	n := len(rs.data) - 1
	v := rs.data[n]
	rs.data = rs.data[:n]
	return v
}

// Data returns the underlying slice, oldest entry first. Callers must not
// retain it past the next mutating call.
func (rs *ReturnStack) Data() []uint32 { return rs.data }
