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
	"github.com/holiman/uint256"

	"github.com/evmts/guillotine/internal/vm/stack"
)

// Status is a frame's terminal disposition. A frame in StatusRunning has not
// yet reached STOP, RETURN, REVERT, or a failure.
type Status int

const (
	StatusRunning Status = iota
	StatusStop
	StatusReturn
	StatusRevert
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusStop:
		return "Stop"
	case StatusReturn:
		return "Return"
	case StatusRevert:
		return "Revert"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// LogEntry is one LOG0..LOG4 emission.
type LogEntry struct {
	Topics []Hash256
	Data   []byte
}

// Frame is the single-threaded execution context for one contract
// invocation (spec §3, §4.6, §6.3). It holds no reference to any other
// frame: the engine does not orchestrate calls between frames, only
// executes one to a terminal status.
type Frame struct {
	Plan   *Plan
	Idx    uint32
	Gas    int64
	Stack  *stack.Stack
	Memory *Memory

	Address   Address
	Caller    Address
	CallValue uint256.Int
	CallData  []byte

	Storage  StorageHost
	Host     HostContext
	Block    BlockContext
	Tx       TxContext
	ReadOnly bool

	Tracer  Tracer
	Metrics *Metrics
	Config  Config

	ReturnData []byte
	Logs       []LogEntry

	Status  Status
	Failure *Failure

	depth  int
	jumped bool
}

// jumpTo sets the frame's next instruction to idx and suppresses the
// interpreter's automatic advance for this step. Control-transfer handlers
// (JUMP, JUMPI when taken) call this instead of letting Idx increment.
func (f *Frame) jumpTo(idx uint32) {
	f.Idx = idx
	f.jumped = true
}

// NewFrame constructs a Frame ready to Run. gas is the call's gas limit. A
// nil tracer defaults to NoopTracer{}; a nil metrics defaults to a
// no-op collector.
func NewFrame(plan *Plan, gas uint64, storage StorageHost, addr, caller Address, callValue uint256.Int, callData []byte, readOnly bool, tracer Tracer, metrics *Metrics) *Frame {
	if tracer == nil {
		tracer = NoopTracer{}
	}
	if metrics == nil {
		metrics = noopMetrics
	}
	return &Frame{
		Plan:      plan,
		Gas:       int64(gas),
		Stack:     stack.New(),
		Memory:    NewMemory(),
		Address:   addr,
		Caller:    caller,
		CallValue: callValue,
		CallData:  callData,
		Storage:   storage,
		Host:      NoopHostContext{},
		ReadOnly:  readOnly,
		Tracer:    tracer,
		Metrics:   metrics,
		Config:    DefaultConfig(),
	}
}

// WithHost overrides the frame's HostContext (default NoopHostContext{}).
func (f *Frame) WithHost(h HostContext) *Frame {
	f.Host = h
	return f
}

// WithConfig overrides the frame's resource limits (default DefaultConfig()).
func (f *Frame) WithConfig(cfg Config) *Frame {
	f.Config = cfg
	return f
}

// WithBlockContext sets the frame's block-level environment.
func (f *Frame) WithBlockContext(b BlockContext) *Frame {
	f.Block = b
	return f
}

// WithTxContext sets the frame's transaction-level environment.
func (f *Frame) WithTxContext(tx TxContext) *Frame {
	f.Tx = tx
	return f
}

// Release returns the frame's pooled stack and memory. Call it once the
// frame has reached a terminal status and its results have been consumed.
func (f *Frame) Release() {
	stack.ReturnNormalStack(f.Stack)
	ReturnMemory(f.Memory)
}

// PC returns the bytecode offset of the frame's current instruction.
func (f *Frame) PC() uint64 {
	if int(f.Idx) >= f.Plan.Len() {
		return uint64(f.Plan.Bytecode.Len())
	}
	return f.Plan.At(f.Idx).PC
}

// UseGas deducts amount from the frame's remaining gas. It returns false,
// leaving Gas unchanged, if amount exceeds what remains.
func (f *Frame) UseGas(amount uint64) bool {
	if amount > uint64(f.Gas) {
		return false
	}
	f.Gas -= int64(amount)
	return true
}

// fail transitions the frame to StatusFailed with the given failure and
// records it in Metrics.
func (f *Frame) fail(kind FailureKind, format string, args ...interface{}) error {
	failure := NewFailuref(kind, format, args...)
	f.Status = StatusFailed
	f.Failure = failure
	f.Metrics.Failures.WithLabelValues(kind.String()).Inc()
	return failure
}

// requireStack fails with StackUnderflow unless the stack holds at least n
// words.
func (f *Frame) requireStack(n int) error {
	if f.Stack.Len() < n {
		return f.fail(StackUnderflow, "have %d, want %d", f.Stack.Len(), n)
	}
	return nil
}

// push pushes val, failing with StackOverflow if that would exceed the
// 1024-word limit.
func (f *Frame) push(val *uint256.Int) error {
	if f.Stack.Len() >= stack.Limit {
		return f.fail(StackOverflow, "have %d, limit %d", f.Stack.Len(), stack.Limit)
	}
	f.Stack.Push(val)
	return nil
}

// PushExternal pushes val onto the frame's operand stack from outside the
// dispatch loop (pkg/cabi priming a frame before Run, or a test harness).
func (f *Frame) PushExternal(val *uint256.Int) error {
	return f.push(val)
}

// PopExternal pops the top of the frame's operand stack from outside the
// dispatch loop, failing with StackUnderflow if it is empty.
func (f *Frame) PopExternal() (*uint256.Int, error) {
	if err := f.requireStack(1); err != nil {
		return nil, err
	}
	return f.Stack.Pop(), nil
}
