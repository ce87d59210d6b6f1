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

import "github.com/evmts/guillotine/internal/vm/stack"

func opPop(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	f.Stack.Pop()
	return nil
}

// opPush implements the unfused PUSH path: the decoded constant is pushed
// verbatim. PUSH0 shares this handler; its Constant is always zero.
func opPush(f *Frame, ins *Instruction) error {
	c := ins.Constant
	return f.push(&c)
}

func opDup(f *Frame, ins *Instruction) error {
	n := ins.Op.DupN()
	if err := f.requireStack(n); err != nil {
		return err
	}
	if f.Stack.Len() >= stack.Limit {
		return f.fail(StackOverflow, "have %d, limit %d", f.Stack.Len(), stack.Limit)
	}
	f.Stack.Dup(n)
	return nil
}

func opSwap(f *Frame, ins *Instruction) error {
	n := ins.Op.SwapN()
	if err := f.requireStack(n + 1); err != nil {
		return err
	}
	// Stack.Swap counts depth from the top with the top itself at depth 1,
	// so SWAP1 (which exchanges the top two words) passes depth 2.
	f.Stack.Swap(n + 1)
	return nil
}
