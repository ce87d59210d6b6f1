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

type recordingTracer struct {
	steps     []OpCode
	faults    []OpCode
	endStatus Status
	ended     bool
}

func (r *recordingTracer) OnStep(_ uint64, op OpCode, _ uint64, _ *stackSnapshot, _ *Memory, _ int) {
	r.steps = append(r.steps, op)
}

func (r *recordingTracer) OnFault(_ uint64, op OpCode, _ uint64, _ *Failure, _ int) {
	r.faults = append(r.faults, op)
}

func (r *recordingTracer) OnEnd(status Status, _ uint64, _ []byte) {
	r.endStatus = status
	r.ended = true
}

func TestTracerReceivesSteps(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00} // PUSH1 1 PUSH1 2 ADD STOP
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	plan := Build(bc)
	storage := NewMapStorageHost()
	tr := &recordingTracer{}
	f := NewFrame(plan, 100000, storage, Address{}, Address{}, uint256.Int{}, nil, false, tr, nil)
	f.Run()

	if !tr.ended {
		t.Fatal("OnEnd was never called")
	}
	if tr.endStatus != StatusStop {
		t.Fatalf("OnEnd status = %s, want Stop", tr.endStatus)
	}
	if len(tr.steps) == 0 {
		t.Fatal("OnStep was never called")
	}
	if len(tr.faults) != 0 {
		t.Fatalf("OnFault called %d times on a successful run, want 0", len(tr.faults))
	}
}

func TestTracerReceivesFault(t *testing.T) {
	code := []byte{0x01} // ADD on an empty stack
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	plan := Build(bc)
	storage := NewMapStorageHost()
	tr := &recordingTracer{}
	f := NewFrame(plan, 100000, storage, Address{}, Address{}, uint256.Int{}, nil, false, tr, nil)
	f.Run()

	if !tr.ended {
		t.Fatal("OnEnd was never called")
	}
	if tr.endStatus != StatusFailed {
		t.Fatalf("OnEnd status = %s, want Failed", tr.endStatus)
	}
	if len(tr.faults) != 1 {
		t.Fatalf("OnFault called %d times, want 1", len(tr.faults))
	}
}

func TestNoopTracerIsZeroValue(t *testing.T) {
	var tr NoopTracer
	tr.OnStep(0, STOP, 0, nil, nil, 0)
	tr.OnFault(0, STOP, 0, nil, 0)
	tr.OnEnd(StatusStop, 0, nil)
}
