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

// This engine executes a single frame to a terminal status; it does not
// orchestrate calls between contracts (see SPEC_FULL.md's boundary
// section). CALL/CALLCODE/DELEGATECALL/STATICCALL and CREATE/CREATE2 are
// still valid, defined opcodes, so they must not fail as InvalidOpcode: each
// consumes its stack operands per the Yellow Paper's arity and reports
// failure (0 on the stack, for CALL-family; the zero address, for CREATE)
// without attempting a subcall. An embedder that wants real call semantics
// composes frames itself, driving each one via this package and feeding the
// result back through a HostContext/StorageHost it controls.

func opCreate(f *Frame, _ *Instruction) error {
	if f.ReadOnly {
		return f.fail(WriteProtection, "CREATE in a read-only context")
	}
	if err := f.requireStack(3); err != nil {
		return err
	}
	f.Stack.Pop() // value
	offset, size := f.Stack.Pop(), f.Stack.Pop()
	if err := f.chargeInitcodeWordGas(size); err != nil {
		return err
	}
	_, _ = offset, size
	v := GetUint256()
	defer PutUint256(v)
	return f.push(v)
}

func opCreate2(f *Frame, _ *Instruction) error {
	if f.ReadOnly {
		return f.fail(WriteProtection, "CREATE2 in a read-only context")
	}
	if err := f.requireStack(4); err != nil {
		return err
	}
	f.Stack.Pop() // value
	offset, size := f.Stack.Pop(), f.Stack.Pop()
	f.Stack.Pop() // salt
	if err := f.chargeInitcodeWordGas(size); err != nil {
		return err
	}
	_ = offset
	v := GetUint256()
	defer PutUint256(v)
	return f.push(v)
}

// chargeInitcodeWordGas charges EIP-3860's 2-gas-per-word cost for a
// CREATE/CREATE2 operand of the given size, the one piece of
// contract-creation gas accounting that belongs to this frame rather than
// to an embedder's call orchestration. It also enforces f.Config's initcode
// size limit directly against the operand, since a CREATE/CREATE2 at
// runtime never passes back through Validate's top-level EIP-3860 check.
func (f *Frame) chargeInitcodeWordGas(sizeWord *uint256.Int) error {
	size, ok := SafeUint256ToUint64(sizeWord)
	if !ok {
		return f.fail(OutOfBounds, "initcode size exceeds addressable range")
	}
	if size > f.Config.initcodeSizeLimit() {
		return f.fail(InitcodeTooLarge, "initcode size %d exceeds limit %d", size, f.Config.initcodeSizeLimit())
	}
	cost, err := safeMul(toWordSize(size), GasInitcodeWord)
	if err != nil {
		return f.fail(OutOfGas, "initcode word cost overflowed")
	}
	if !f.UseGas(cost) {
		return f.fail(OutOfGas, "initcode word cost %d exceeds remaining gas", cost)
	}
	return nil
}

func opCallFamily(arity int) handlerFn {
	return func(f *Frame, _ *Instruction) error {
		if err := f.requireStack(arity); err != nil {
			return err
		}
		for i := 0; i < arity; i++ {
			f.Stack.Pop()
		}
		v := GetUint256()
		defer PutUint256(v)
		return f.push(v)
	}
}

var (
	opCall         = opCallFamily(7)
	opCallcode     = opCallFamily(7)
	opDelegatecall = opCallFamily(6)
	opStaticcall   = opCallFamily(6)
)
