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

import "github.com/holiman/uint256"

// Tracer observes a Frame's execution one opcode at a time. It is consulted
// at every step whether or not a tracer is attached in any meaningful way:
// Frame.Run always calls the three hooks, so a NoopTracer's empty methods are
// what get inlined away when no observation is needed.
type Tracer interface {
	// OnStep fires before op executes, with the stack and memory as they
	// stand at that instant. It must not retain stack or mem past the call.
	OnStep(pc uint64, op OpCode, gas uint64, stack *stackSnapshot, mem *Memory, depth int)

	// OnFault fires when op fails, in place of the next OnStep.
	OnFault(pc uint64, op OpCode, gas uint64, err *Failure, depth int)

	// OnEnd fires exactly once, when the frame reaches a terminal status.
	OnEnd(status Status, gasUsed uint64, returnData []byte)
}

// stackSnapshot is the read-only view of the operand stack a Tracer
// receives. It is defined separately from stack.Stack so the vm package's
// tracer surface does not leak the pooled stack's mutation methods.
type stackSnapshot struct {
	peek func(n int) *uint256.Int
	len  int
}

// Len returns the number of words on the stack.
func (s *stackSnapshot) Len() int { return s.len }

// Back returns the n-th word from the top (0 is the top). The returned
// pointer is only valid for the duration of the current tracer callback.
func (s *stackSnapshot) Back(n int) *uint256.Int { return s.peek(n) }

// NoopTracer implements Tracer with empty bodies. It is the default
// attached to a Frame when the caller does not want observation.
type NoopTracer struct{}

func (NoopTracer) OnStep(uint64, OpCode, uint64, *stackSnapshot, *Memory, int) {}
func (NoopTracer) OnFault(uint64, OpCode, uint64, *Failure, int)               {}
func (NoopTracer) OnEnd(Status, uint64, []byte)                                {}

var _ Tracer = NoopTracer{}
