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

// memOffset reads an addressable offset off a word, failing OutOfBounds if
// it doesn't fit in a uint64 (no real memory region is ever that large, but
// the word itself can claim to be).
func memOffset(f *Frame, w *uint256.Int, op string) (uint64, error) {
	v, ok := SafeUint256ToUint64(w)
	if !ok {
		return 0, f.fail(OutOfBounds, "%s offset exceeds addressable range", op)
	}
	return v, nil
}

func opMload(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	offsetWord := f.Stack.Peek()
	offset, err := memOffset(f, offsetWord, "MLOAD")
	if err != nil {
		return err
	}
	if err := f.ensureMemory(offset, 32); err != nil {
		return err
	}
	offsetWord.SetBytes(f.Memory.GetPtr(offset, 32))
	return nil
}

func opMstore(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	offsetWord, val := f.Stack.Pop(), f.Stack.Pop()
	offset, err := memOffset(f, offsetWord, "MSTORE")
	if err != nil {
		return err
	}
	if err := f.ensureMemory(offset, 32); err != nil {
		return err
	}
	f.Memory.Set32(offset, val)
	return nil
}

func opMstore8(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	offsetWord, val := f.Stack.Pop(), f.Stack.Pop()
	offset, err := memOffset(f, offsetWord, "MSTORE8")
	if err != nil {
		return err
	}
	if err := f.ensureMemory(offset, 1); err != nil {
		return err
	}
	f.Memory.Set(offset, 1, []byte{byte(val.Uint64())})
	return nil
}

func opMsize(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(uint64(f.Memory.Len())))
}

// opMcopy implements MCOPY (EIP-5656): copies length bytes within memory
// from src to dst, charging both the base fastest-step cost and 3 gas per
// word copied, in addition to any memory expansion.
func opMcopy(f *Frame, _ *Instruction) error {
	if err := f.requireStack(3); err != nil {
		return err
	}
	dstWord, srcWord, lenWord := f.Stack.Pop(), f.Stack.Pop(), f.Stack.Pop()
	dst, ok1 := SafeUint256ToUint64(dstWord)
	src, ok2 := SafeUint256ToUint64(srcWord)
	length, ok3 := SafeUint256ToUint64(lenWord)
	if !ok1 || !ok2 || !ok3 {
		return f.fail(OutOfBounds, "MCOPY operand exceeds addressable range")
	}
	if length == 0 {
		return nil
	}
	maxEnd := dst
	if src > maxEnd {
		maxEnd = src
	}
	if err := f.ensureMemory(maxEnd, length); err != nil {
		return err
	}
	wordCost, err := safeMul(toWordSize(length), GasCopy)
	if err != nil {
		return f.fail(OutOfGas, "MCOPY word cost overflowed")
	}
	if !f.UseGas(wordCost) {
		return f.fail(OutOfGas, "MCOPY word cost %d exceeds remaining gas", wordCost)
	}
	f.Memory.Copy(dst, src, length)
	return nil
}
