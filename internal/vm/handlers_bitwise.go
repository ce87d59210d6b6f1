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

func opAnd(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.And(x, y)
	return nil
}

func opOr(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.Or(x, y)
	return nil
}

func opXor(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.Xor(x, y)
	return nil
}

func opNot(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	x := f.Stack.Peek()
	x.Not(x)
	return nil
}

// opByte implements BYTE: extracts byte index n (0 = most significant) of
// x, or 0 if n >= 32 (spec §4.7 decision point).
func opByte(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	n, x := f.Stack.Pop(), f.Stack.Peek()
	x.Byte(n)
	return nil
}

// opShl implements SHL: logical shift left. A shift count >= 256 yields 0.
func opShl(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	shift, val := f.Stack.Pop(), f.Stack.Peek()
	if shift.LtUint64(256) {
		val.Lsh(val, uint(shift.Uint64()))
	} else {
		val.Clear()
	}
	return nil
}

// opShr implements SHR: logical shift right. A shift count >= 256 yields 0.
func opShr(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	shift, val := f.Stack.Pop(), f.Stack.Peek()
	if shift.LtUint64(256) {
		val.Rsh(val, uint(shift.Uint64()))
	} else {
		val.Clear()
	}
	return nil
}

// opSar implements SAR: arithmetic shift right, sign-extending from the
// operand's top bit. A shift count >= 256 yields all-zeros for a
// non-negative operand and all-ones for a negative one (spec §4.7 decision
// point).
func opSar(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	shift, val := f.Stack.Pop(), f.Stack.Peek()
	if shift.GtUint64(256) {
		if val.Sign() >= 0 {
			val.Clear()
		} else {
			val.SetAllOne()
		}
		return nil
	}
	n := uint(shift.Uint64())
	val.SRsh(val, n)
	return nil
}
