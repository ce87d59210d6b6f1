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
	"testing"

	"github.com/holiman/uint256"
)

func runCode(t *testing.T, code []byte, gas uint64) *Frame {
	t.Helper()
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	plan := Build(bc)
	storage := NewMapStorageHost()
	frame := NewFrame(plan, gas, storage, Address{}, Address{}, uint256.Int{}, nil, false, nil, nil)
	frame.Run()
	return frame
}

func TestInterpreterAddAndStop(t *testing.T) {
	// PUSH1 1 PUSH1 2 ADD STOP
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}
	f := runCode(t, code, 100000)
	if f.Status != StatusStop {
		t.Fatalf("status = %s, want Stop (failure: %v)", f.Status, f.Failure)
	}
	if f.Stack.Len() != 1 {
		t.Fatalf("stack len = %d, want 1", f.Stack.Len())
	}
	if got := f.Stack.Peek(); got.Uint64() != 3 {
		t.Fatalf("top of stack = %s, want 3", got)
	}
}

func TestInterpreterReturn(t *testing.T) {
	// PUSH1 0x2a PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN
	code := []byte{
		0x60, 0x2a,
		0x60, 0x00,
		0x52,
		0x60, 0x20,
		0x60, 0x00,
		0xf3,
	}
	f := runCode(t, code, 100000)
	if f.Status != StatusReturn {
		t.Fatalf("status = %s, want Return (failure: %v)", f.Status, f.Failure)
	}
	if len(f.ReturnData) != 32 {
		t.Fatalf("len(ReturnData) = %d, want 32", len(f.ReturnData))
	}
	v := new(uint256.Int).SetBytes(f.ReturnData)
	if v.Uint64() != 0x2a {
		t.Fatalf("returned word = %s, want 42", v)
	}
}

func TestInterpreterRevert(t *testing.T) {
	// PUSH1 0 PUSH1 0 REVERT
	code := []byte{0x60, 0x00, 0x60, 0x00, 0xfd}
	f := runCode(t, code, 100000)
	if f.Status != StatusRevert {
		t.Fatalf("status = %s, want Revert (failure: %v)", f.Status, f.Failure)
	}
}

func TestInterpreterOutOfGas(t *testing.T) {
	// PUSH1 1 PUSH1 2 ADD STOP, but with only 1 unit of gas.
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}
	f := runCode(t, code, 1)
	if f.Status != StatusFailed {
		t.Fatalf("status = %s, want Failed", f.Status)
	}
	if f.Failure == nil || f.Failure.Kind != OutOfGas {
		t.Fatalf("failure = %v, want OutOfGas", f.Failure)
	}
}

func TestInterpreterStackUnderflow(t *testing.T) {
	// ADD with an empty stack.
	code := []byte{0x01}
	f := runCode(t, code, 100000)
	if f.Status != StatusFailed {
		t.Fatalf("status = %s, want Failed", f.Status)
	}
	if f.Failure == nil || f.Failure.Kind != StackUnderflow {
		t.Fatalf("failure = %v, want StackUnderflow", f.Failure)
	}
}

func TestInterpreterInvalidOpcode(t *testing.T) {
	code := []byte{0xfe} // INVALID
	f := runCode(t, code, 100000)
	if f.Status != StatusFailed {
		t.Fatalf("status = %s, want Failed", f.Status)
	}
	if f.Failure == nil || f.Failure.Kind != InvalidOpcode {
		t.Fatalf("failure = %v, want InvalidOpcode", f.Failure)
	}
}

func TestInterpreterJumpLoop(t *testing.T) {
	// PUSH1 3; JUMPDEST; PUSH1 1; SWAP1; SUB; DUP1; PUSH1 2; JUMPI; STOP
	// counts down from 3 to 0, looping back to JUMPDEST each time.
	code := []byte{
		0x60, 0x03, // PUSH1 3
		0x5b,       // JUMPDEST (pc=2)
		0x60, 0x01, // PUSH1 1
		0x90,       // SWAP1
		0x03,       // SUB
		0x80,       // DUP1
		0x60, 0x02, // PUSH1 2
		0x57, // JUMPI
		0x00, // STOP
	}
	f := runCode(t, code, 1000000)
	if f.Status != StatusStop {
		t.Fatalf("status = %s, want Stop (failure: %v)", f.Status, f.Failure)
	}
	if f.Stack.Len() != 1 {
		t.Fatalf("stack len = %d, want 1", f.Stack.Len())
	}
	if got := f.Stack.Peek(); !got.IsZero() {
		t.Fatalf("top of stack = %s, want 0", got)
	}
}

func TestInterpreterInvalidJump(t *testing.T) {
	// PUSH1 3 DUP1 JUMP STOP STOP. The jump target (3) is not a PUSH
	// immediate directly feeding JUMP — it comes off DUP1 — so it is not
	// statically fusible and must surface as a run-time InvalidJump rather
	// than be caught by Validate's static pre-check. pc=3 is JUMP itself,
	// not a JUMPDEST.
	code := []byte{0x60, 0x03, 0x80, 0x56, 0x00, 0x00}
	f := runCode(t, code, 100000)
	if f.Status != StatusFailed {
		t.Fatalf("status = %s, want Failed", f.Status)
	}
	if f.Failure == nil || f.Failure.Kind != InvalidJump {
		t.Fatalf("failure = %v, want InvalidJump", f.Failure)
	}
}

func TestInterpreterMemoryLimit(t *testing.T) {
	// PUSH1 1 PUSH4 0x01000000 MSTORE8: write one byte far past a small
	// configured memory limit. Gas alone would happily afford this
	// expansion; the limit must reject it first.
	code := []byte{
		0x60, 0x01, // PUSH1 1
		0x63, 0x01, 0x00, 0x00, 0x00, // PUSH4 0x01000000
		0x53, // MSTORE8
	}
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	plan := Build(bc)
	storage := NewMapStorageHost()
	f := NewFrame(plan, 10_000_000, storage, Address{}, Address{}, uint256.Int{}, nil, false, nil, nil)
	f.WithConfig(Config{MemoryLimit: 1024, InitcodeSizeLimit: DefaultInitcodeSizeLimit})
	f.Run()

	if f.Status != StatusFailed {
		t.Fatalf("status = %s, want Failed", f.Status)
	}
	if f.Failure == nil || f.Failure.Kind != OutOfMemory {
		t.Fatalf("failure = %v, want OutOfMemory", f.Failure)
	}
}

func TestInterpreterMemoryWithinLimitSucceeds(t *testing.T) {
	// Same shape as above but within the configured limit.
	code := []byte{
		0x60, 0x01, // PUSH1 1
		0x60, 0x00, // PUSH1 0
		0x53, // MSTORE8
		0x00, // STOP
	}
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	plan := Build(bc)
	storage := NewMapStorageHost()
	f := NewFrame(plan, 100000, storage, Address{}, Address{}, uint256.Int{}, nil, false, nil, nil)
	f.WithConfig(Config{MemoryLimit: 1024, InitcodeSizeLimit: DefaultInitcodeSizeLimit})
	f.Run()

	if f.Status != StatusStop {
		t.Fatalf("status = %s, want Stop (failure: %v)", f.Status, f.Failure)
	}
}

func TestFramePushPopExternal(t *testing.T) {
	bc, err := Validate([]byte{0x00}, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	plan := Build(bc)
	storage := NewMapStorageHost()
	f := NewFrame(plan, 100000, storage, Address{}, Address{}, uint256.Int{}, nil, false, nil, nil)
	defer f.Release()

	if err := f.PushExternal(uint256.NewInt(7)); err != nil {
		t.Fatalf("PushExternal: %v", err)
	}
	v, err := f.PopExternal()
	if err != nil {
		t.Fatalf("PopExternal: %v", err)
	}
	if v.Uint64() != 7 {
		t.Fatalf("popped %s, want 7", v)
	}
	if _, err := f.PopExternal(); err == nil {
		t.Fatal("PopExternal on an empty stack should fail")
	}
}
