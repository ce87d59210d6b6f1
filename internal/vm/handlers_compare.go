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

func opLt(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opGt(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSlt(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSgt(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opEq(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	x, y := f.Stack.Pop(), f.Stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opIszero(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	x := f.Stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}
