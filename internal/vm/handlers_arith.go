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

// opAdd implements ADD: a + b, where a is the top of stack and b the word
// beneath it.
func opAdd(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.Add(x, y)
	return nil
}

func opMul(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.Mul(x, y)
	return nil
}

func opSub(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.Sub(x, y)
	return nil
}

func opDiv(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.Div(x, y)
	return nil
}

// opSdiv implements SDIV: signed division, truncated toward zero. Division
// by zero yields 0 and the overflow case MinInt256/-1 yields MinInt256 (spec
// §4.7 decision points), both of which uint256.SDiv already guarantees.
func opSdiv(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.SDiv(x, y)
	return nil
}

func opMod(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.Mod(x, y)
	return nil
}

// opSmod implements SMOD: signed remainder, sign following the dividend.
// Modulus by zero yields 0.
func opSmod(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	y.SMod(x, y)
	return nil
}

// opAddmod implements ADDMOD: (a + b) mod N, computed with full-width
// intermediate precision so the sum never wraps before the modulus is
// applied. A zero modulus yields 0.
func opAddmod(f *Frame, _ *Instruction) error {
	if err := f.requireStack(3); err != nil {
		return err
	}
	x, y, z := f.Stack.Pop(), f.Stack.Pop(), f.Stack.Peek()
	if z.IsZero() {
		z.Clear()
	} else {
		z.AddMod(x, y, z)
	}
	return nil
}

// opMulmod implements MULMOD: (a * b) mod N, same zero-modulus rule as
// ADDMOD.
func opMulmod(f *Frame, _ *Instruction) error {
	if err := f.requireStack(3); err != nil {
		return err
	}
	x, y, z := f.Stack.Pop(), f.Stack.Pop(), f.Stack.Peek()
	if z.IsZero() {
		z.Clear()
	} else {
		z.MulMod(x, y, z)
	}
	return nil
}

// opExp implements EXP: base ** exponent mod 2^256. Its dynamic gas (50 per
// byte of the exponent's big-endian length) is charged here, before the
// computation, since the byte length is known from the unconsumed operand.
func opExp(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	base, exponent := f.Stack.Pop(), f.Stack.Peek()
	cost := expByteCost(exponent.BitLen())
	if !f.UseGas(cost) {
		return f.fail(OutOfGas, "EXP dynamic cost %d exceeds remaining gas", cost)
	}
	exponent.Exp(base, exponent)
	return nil
}

// opSignextend implements SIGNEXTEND: sign-extends the low (b+1) bytes of x
// to the full 256 bits, where b is the first operand. b >= 31 is a no-op.
func opSignextend(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	back, num := f.Stack.Pop(), f.Stack.Peek()
	num.ExtendSign(num, back)
	return nil
}
