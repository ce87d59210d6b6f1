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

// Instruction is one entry of a Plan's stream. Most instructions carry a
// single opcode; PUSH instructions also carry their decoded constant, and a
// PUSH immediately followed by a fusible opcode (spec §4.5) carries that
// opcode too, so the interpreter executes both in one dispatch step without
// ever pushing the constant onto the operand stack.
type Instruction struct {
	Op OpCode
	PC uint64 // the bytecode offset this instruction was lowered from

	Constant   uint256.Int // decoded PUSH immediate; zero for non-PUSH ops
	HasFusedOp bool
	FusedOp    OpCode // valid only if HasFusedOp

	// JumpIdx is the stream index a fused JUMP/JUMPI's constant target
	// resolves to, or -1 if the target is not a valid jump destination
	// (the fused op then fails at runtime with InvalidJump, same as an
	// unfused dynamic jump to a bad target would).
	JumpIdx int32

	// IsBlockStart and BlockGas cache the per-basic-block gas pre-check
	// (spec §4.6): BlockGas is the sum of base gas costs of every
	// instruction from this one up to and including the block's
	// terminator (a JUMP, JUMPI, or terminal opcode). The interpreter
	// charges BlockGas once, atomically, when control reaches a block
	// start, rather than checking gas before every single instruction.
	IsBlockStart bool
	BlockGas     uint64
}

// effectiveOp returns the opcode actually dispatched: the fused opcode when
// one is present, otherwise Op itself. A fused PUSH+op instruction never
// dispatches as a plain PUSH.
func (ins *Instruction) effectiveOp() OpCode {
	if ins.HasFusedOp {
		return ins.FusedOp
	}
	return ins.Op
}

// baseGas returns the sum of constant gas costs of this instruction,
// including its fused op if any.
func (ins *Instruction) baseGas() uint64 {
	g := opTable[ins.Op].constGas
	if ins.HasFusedOp {
		g += opTable[ins.FusedOp].constGas
	}
	return g
}

// endsBlock reports whether this instruction terminates a basic block: a
// jump (static or dynamic), a fused jump, or a terminal opcode.
func (ins *Instruction) endsBlock() bool {
	op := ins.effectiveOp()
	if op == JUMP || op == JUMPI {
		return true
	}
	if info := opTable[op]; info != nil && info.terminal {
		return true
	}
	return false
}

// Plan is the planner's output: bytecode lowered into a dense instruction
// stream plus the PC<->index maps needed to honor JUMP/JUMPI and to report
// PC faithfully to PC/tracer/error paths (spec §3, §4.5, §4.6).
type Plan struct {
	Bytecode *Bytecode
	stream   []Instruction
	pcToIdx  map[uint64]int32
}

// Len returns the number of instructions in the stream.
func (p *Plan) Len() int { return len(p.stream) }

// At returns a pointer to the instruction at stream index idx.
func (p *Plan) At(idx uint32) *Instruction { return &p.stream[idx] }

// IndexForPC returns the stream index of the instruction lowered from pc,
// and whether such an instruction exists. It is used to resolve dynamic
// jump targets (a JUMP/JUMPI whose target was not statically fusible).
func (p *Plan) IndexForPC(pc uint64) (uint32, bool) {
	idx, ok := p.pcToIdx[pc]
	if !ok {
		return 0, false
	}
	return uint32(idx), true
}

// Build lowers a validated Bytecode into a Plan: a linear walk decoding PUSH
// immediates, a fusion pass per plan_fusion.go, and a resolution pass
// binding every fused jump's constant target to its stream index.
func Build(bc *Bytecode) *Plan {
	raw := decode(bc)
	fused := fuse(raw)

	pcToIdx := make(map[uint64]int32, len(fused))
	for i := range fused {
		pcToIdx[fused[i].PC] = int32(i)
	}

	for i := range fused {
		ins := &fused[i]
		if !ins.HasFusedOp || (ins.FusedOp != JUMP && ins.FusedOp != JUMPI) {
			ins.JumpIdx = -1
			continue
		}
		target := ins.Constant
		ins.JumpIdx = -1
		if target.IsUint64() {
			pc := target.Uint64()
			if bc.IsValidJumpDest(pc) {
				if idx, ok := pcToIdx[pc]; ok {
					ins.JumpIdx = idx
				}
			}
		}
	}

	computeBlocks(fused)

	return &Plan{Bytecode: bc, stream: fused, pcToIdx: pcToIdx}
}

// computeBlocks marks every basic-block start and computes its total base
// gas, in place. A block starts at index 0, at every JUMPDEST (the only
// valid jump target), and immediately after any block-ending instruction.
func computeBlocks(stream []Instruction) {
	n := len(stream)
	isStart := make([]bool, n)
	if n > 0 {
		isStart[0] = true
	}
	for i := 0; i < n; i++ {
		if stream[i].Op == JUMPDEST {
			isStart[i] = true
		}
		if stream[i].endsBlock() && i+1 < n {
			isStart[i+1] = true
		}
	}
	for i := 0; i < n; i++ {
		if !isStart[i] {
			continue
		}
		stream[i].IsBlockStart = true
		var sum uint64
		for j := i; j < n; j++ {
			sum += stream[j].baseGas()
			if stream[j].endsBlock() || (j+1 < n && isStart[j+1]) {
				break
			}
		}
		stream[i].BlockGas = sum
	}
}

// decode performs the unfused linear walk over bytecode, producing one raw
// Instruction per op-start position and decoding PUSH immediates.
func decode(bc *Bytecode) []Instruction {
	code := bc.Code()
	n := len(code)
	out := make([]Instruction, 0, n)

	for pc := 0; pc < n; {
		op := OpCode(code[pc])
		ins := Instruction{Op: op, PC: uint64(pc), JumpIdx: -1}
		if size := op.PushSize(); size > 0 {
			dataStart := pc + 1
			dataEnd := dataStart + size
			var buf [32]byte
			if dataEnd <= n {
				copy(buf[32-size:], code[dataStart:dataEnd])
			} else if dataStart < n {
				copy(buf[32-size:32-size+(n-dataStart)], code[dataStart:n])
			}
			ins.Constant.SetBytes(buf[:])
			out = append(out, ins)
			pc = dataEnd
			if pc > n {
				pc = n
			}
			continue
		}
		out = append(out, ins)
		pc++
	}
	return out
}
