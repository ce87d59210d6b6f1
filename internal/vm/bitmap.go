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

// bitvec is a packed bitmap over bytecode positions, one bit per byte
// offset. It backs the three parallel bitmaps the validator builds: op
// starts, push-data bytes, and valid jump destinations (spec §4.1).
type bitvec []byte

func newBitvec(codeLen int) bitvec {
	return make(bitvec, codeLen/8+1)
}

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

func (bits bitvec) isSet(pos uint64) bool {
	return (bits[pos/8]>>(pos%8))&1 == 1
}

// codeBitmaps performs a single linear pass over code and returns the three
// bitmaps in lockstep: opStart marks every byte that begins an instruction
// (as opposed to PUSH immediate data), pushData marks every immediate data
// byte of a PUSH, and jumpdest marks every opStart position whose opcode is
// JUMPDEST. A PUSH whose immediate data runs past the end of code is
// reported via truncated=true; the caller decides whether that is fatal
// (it is, for top-level bytecode; trailing metadata is not a concept this
// engine recognizes). A byte at an instruction-start position that names no
// opcode in the closed table is reported via hasInvalidOp=true, at the
// position badPC — this is checked here, in the first pass, rather than
// left to the interpreter, so an undefined byte that a particular run never
// reaches (dead code after a STOP, say) still fails validation up front.
func codeBitmaps(code []byte) (opStart, pushData, jumpdest bitvec, truncated bool, badPC uint64, badOp OpCode, hasInvalidOp bool) {
	n := len(code)
	opStart = newBitvec(n)
	pushData = newBitvec(n)
	jumpdest = newBitvec(n)

	for pc := 0; pc < n; {
		op := OpCode(code[pc])
		if !op.IsDefined() {
			return opStart, pushData, jumpdest, truncated, uint64(pc), op, true
		}
		opStart.set(uint64(pc))
		if op == JUMPDEST {
			jumpdest.set(uint64(pc))
		}
		if size := op.PushSize(); size > 0 {
			dataStart := pc + 1
			dataEnd := dataStart + size
			if dataEnd > n {
				truncated = true
				dataEnd = n
			}
			for i := dataStart; i < dataEnd; i++ {
				pushData.set(uint64(i))
			}
			pc = dataEnd
			continue
		}
		pc++
	}
	return opStart, pushData, jumpdest, truncated, 0, 0, false
}
