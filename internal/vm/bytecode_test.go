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

import "testing"

func TestValidateSimple(t *testing.T) {
	// PUSH1 0x01 PUSH1 0x02 ADD STOP
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD), byte(STOP)}
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !bc.IsOpStart(0) || bc.IsOpStart(1) {
		t.Errorf("PUSH1 immediate byte misclassified as op start")
	}
	if !bc.IsOpStart(2) || bc.IsOpStart(3) {
		t.Errorf("second PUSH1 immediate byte misclassified as op start")
	}
	if !bc.IsOpStart(4) || !bc.IsOpStart(5) {
		t.Errorf("ADD/STOP should be op starts")
	}
}

func TestValidateTruncatedPush(t *testing.T) {
	code := []byte{byte(PUSH2), 0x01}
	if _, err := Validate(code, false); err == nil {
		t.Fatal("expected TruncatedPush error")
	} else if f, ok := err.(*Failure); !ok || f.Kind != TruncatedPush {
		t.Errorf("expected TruncatedPush, got %v", err)
	}
}

func TestValidateJumpdestAfterPushDataIsNotAJumpdest(t *testing.T) {
	// PUSH1 0x5b (byte value of JUMPDEST, but it's push data) JUMPDEST
	code := []byte{byte(PUSH1), byte(JUMPDEST), byte(JUMPDEST)}
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if bc.IsValidJumpDest(1) {
		t.Errorf("pc=1 is PUSH1's immediate data, must not be a valid jump destination")
	}
	if !bc.IsValidJumpDest(2) {
		t.Errorf("pc=2 is a real JUMPDEST opcode")
	}
}

func TestValidateCodeSizeLimit(t *testing.T) {
	code := make([]byte, MaxCodeSize+1)
	if _, err := Validate(code, false); err == nil {
		t.Fatal("expected BytecodeTooLarge error")
	} else if f, ok := err.(*Failure); !ok || f.Kind != BytecodeTooLarge {
		t.Errorf("expected BytecodeTooLarge, got %v", err)
	}
}

func TestValidateInitcodeSizeLimit(t *testing.T) {
	code := make([]byte, MaxInitcodeSize+1)
	if _, err := Validate(code, true); err == nil {
		t.Fatal("expected InitcodeTooLarge error")
	} else if f, ok := err.(*Failure); !ok || f.Kind != InitcodeTooLarge {
		t.Errorf("expected InitcodeTooLarge, got %v", err)
	}

	ok := make([]byte, MaxCodeSize+1) // larger than MaxCodeSize but within initcode limit
	if _, err := Validate(ok, true); err != nil {
		t.Errorf("expected initcode within limit to validate, got %v", err)
	}
}

func TestValidateRejectsUndefinedOpcode(t *testing.T) {
	// 0x0c names no opcode (between SIGNEXTEND=0x0b and LT=0x10).
	code := []byte{byte(STOP), 0x0c}
	if _, err := Validate(code, false); err == nil {
		t.Fatal("expected InvalidOpcode error")
	} else if f, ok := err.(*Failure); !ok || f.Kind != InvalidOpcode {
		t.Errorf("expected InvalidOpcode, got %v", err)
	}
}

func TestValidateRejectsUndefinedOpcodeAfterDeadStop(t *testing.T) {
	// An undefined byte unreachable from pc=0 (it trails a STOP) must still
	// fail validation; it is never given the chance to run.
	code := []byte{byte(STOP), byte(STOP), 0xfc}
	if _, err := Validate(code, false); err == nil {
		t.Fatal("expected InvalidOpcode error for dead undefined byte")
	} else if f, ok := err.(*Failure); !ok || f.Kind != InvalidOpcode {
		t.Errorf("expected InvalidOpcode, got %v", err)
	}
}

func TestValidateRejectsStaticInvalidJumpDestination(t *testing.T) {
	// PUSH1 0x10 JUMP STOP: pc=16 (0x10) does not exist in this 4-byte
	// program at all, let alone name a JUMPDEST.
	code := []byte{byte(PUSH1), 0x10, byte(JUMP), byte(STOP)}
	if _, err := Validate(code, false); err == nil {
		t.Fatal("expected InvalidJumpDestination error")
	} else if f, ok := err.(*Failure); !ok || f.Kind != InvalidJumpDestination {
		t.Errorf("expected InvalidJumpDestination, got %v", err)
	}
}

func TestValidateAcceptsStaticValidJumpDestination(t *testing.T) {
	// PUSH1 0x04 JUMP STOP JUMPDEST
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(STOP), byte(JUMPDEST)}
	if _, err := Validate(code, false); err != nil {
		t.Errorf("expected valid static jump to validate, got %v", err)
	}
}

func TestValidateIgnoresDynamicJumpTargets(t *testing.T) {
	// DUP1 JUMP: the jump target isn't a PUSH immediate, so the static
	// pre-check has nothing to resolve and must not reject it; an invalid
	// target here is still caught at run time by resolveJumpTarget.
	code := []byte{byte(DUP1), byte(JUMP)}
	if _, err := Validate(code, false); err != nil {
		t.Errorf("expected dynamic jump target to validate, got %v", err)
	}
}

func TestBytecodeHashIsCached(t *testing.T) {
	bc, err := Validate([]byte{byte(STOP)}, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	h1 := bc.Hash()
	h2 := bc.Hash()
	if h1 != h2 {
		t.Errorf("Hash should be stable across calls")
	}
}

func TestBytecodeJumpDestinations(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(PUSH1), 0x00, byte(JUMPDEST)}
	bc, err := Validate(code, false)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	rb := bc.JumpDestinations()
	if !rb.Contains(0) || !rb.Contains(3) {
		t.Errorf("expected JUMPDESTs at 0 and 3, got %v", rb.ToArray())
	}
	if rb.Contains(2) {
		t.Errorf("push data must not appear in JumpDestinations")
	}
}
