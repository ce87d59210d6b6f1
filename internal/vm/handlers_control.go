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

func opStop(f *Frame, _ *Instruction) error {
	f.Status = StatusStop
	return nil
}

// resolveJumpTarget maps a dynamic (unfused) jump target word to a stream
// index, failing with InvalidJump unless it is a valid JUMPDEST.
func (f *Frame) resolveJumpTarget(target *uint256.Int) (uint32, error) {
	pc, ok := SafeUint256ToUint64(target)
	if !ok {
		return 0, f.fail(InvalidJump, "jump target exceeds addressable range")
	}
	if !f.Plan.Bytecode.IsValidJumpDest(pc) {
		return 0, f.fail(InvalidJump, "pc %d is not a JUMPDEST", pc)
	}
	idx, ok := f.Plan.IndexForPC(pc)
	if !ok {
		return 0, f.fail(InvalidJump, "pc %d has no instruction mapping", pc)
	}
	return idx, nil
}

func opJump(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	target := f.Stack.Pop()
	idx, err := f.resolveJumpTarget(target)
	if err != nil {
		return err
	}
	f.jumpTo(idx)
	return nil
}

func opJumpi(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	target, cond := f.Stack.Pop(), f.Stack.Pop()
	if cond.IsZero() {
		return nil
	}
	idx, err := f.resolveJumpTarget(target)
	if err != nil {
		return err
	}
	f.jumpTo(idx)
	return nil
}

func opJumpdest(f *Frame, _ *Instruction) error { return nil }

func opPc(f *Frame, ins *Instruction) error {
	return f.push(uint256.NewInt(ins.PC))
}

func opGas(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(uint64(f.Gas)))
}

func opReturn(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	offsetWord, sizeWord := f.Stack.Pop(), f.Stack.Pop()
	data, err := f.readMemoryRange(offsetWord, sizeWord)
	if err != nil {
		return err
	}
	f.ReturnData = data
	f.Status = StatusReturn
	return nil
}

func opRevert(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	offsetWord, sizeWord := f.Stack.Pop(), f.Stack.Pop()
	data, err := f.readMemoryRange(offsetWord, sizeWord)
	if err != nil {
		return err
	}
	f.ReturnData = data
	f.Status = StatusRevert
	return nil
}

func opInvalid(f *Frame, _ *Instruction) error {
	return f.fail(InvalidOpcode, "INVALID opcode")
}

// readMemoryRange charges memory expansion for [offset, offset+size) and
// returns an independent copy of it, shared by RETURN and REVERT.
func (f *Frame) readMemoryRange(offsetWord, sizeWord *uint256.Int) ([]byte, error) {
	offset, ok1 := SafeUint256ToUint64(offsetWord)
	size, ok2 := SafeUint256ToUint64(sizeWord)
	if !ok1 || !ok2 {
		return nil, f.fail(OutOfBounds, "memory range operand exceeds addressable range")
	}
	if size == 0 {
		return nil, nil
	}
	if err := f.ensureMemory(offset, size); err != nil {
		return nil, err
	}
	return f.Memory.GetCopy(offset, int64(size)), nil
}

// opSelfdestruct implements SELFDESTRUCT: it fails with WriteProtection in a
// read-only context; otherwise it pops the beneficiary operand and halts the
// frame with StatusStop. The beneficiary is discarded: the frame does not
// record it, transfers no balance, and marks no account for deletion.
func opSelfdestruct(f *Frame, _ *Instruction) error {
	if f.ReadOnly {
		return f.fail(WriteProtection, "SELFDESTRUCT in a read-only context")
	}
	if err := f.requireStack(1); err != nil {
		return err
	}
	f.Stack.Pop()
	f.Status = StatusStop
	return nil
}
