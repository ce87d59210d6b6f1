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

func wordToHash(w *uint256.Int) Hash256 {
	return Hash256(w.Bytes32())
}

func opSload(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	key := f.Stack.Peek()
	val := f.Storage.GetState(f.Address, wordToHash(key))
	key.Set(&val)
	return nil
}

// opSstore implements SSTORE. Writes inside a read-only (STATICCALL)
// context fail with WriteProtection, per spec §4.7. The dynamic cost
// distinguishes a zero-to-nonzero write (more expensive, a fresh slot)
// from any other write.
func opSstore(f *Frame, _ *Instruction) error {
	if f.ReadOnly {
		return f.fail(WriteProtection, "SSTORE in a read-only context")
	}
	if err := f.requireStack(2); err != nil {
		return err
	}
	keyWord, valWord := f.Stack.Pop(), f.Stack.Pop()
	key := wordToHash(keyWord)
	current := f.Storage.GetState(f.Address, key)

	cost := GasSstoreReset
	if current.IsZero() && !valWord.IsZero() {
		cost = GasSstoreSet
	}
	if !f.UseGas(cost) {
		return f.fail(OutOfGas, "SSTORE cost %d exceeds remaining gas", cost)
	}
	f.Storage.SetState(f.Address, key, *valWord)
	return nil
}

func opTload(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	key := f.Stack.Peek()
	val := f.Storage.GetTransientState(f.Address, wordToHash(key))
	key.Set(&val)
	return nil
}

func opTstore(f *Frame, _ *Instruction) error {
	if f.ReadOnly {
		return f.fail(WriteProtection, "TSTORE in a read-only context")
	}
	if err := f.requireStack(2); err != nil {
		return err
	}
	keyWord, valWord := f.Stack.Pop(), f.Stack.Pop()
	f.Storage.SetTransientState(f.Address, wordToHash(keyWord), *valWord)
	return nil
}
