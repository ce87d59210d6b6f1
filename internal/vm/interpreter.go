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

// handlerFn executes one (unfused) instruction against a frame. It returns
// a non-nil error exactly when it has already called f.fail (which sets
// f.Status = StatusFailed); Run treats any non-nil handler error as "stop",
// it never re-derives the failure from the error value.
type handlerFn func(f *Frame, ins *Instruction) error

var dispatchTable [256]handlerFn

func register(op OpCode, h handlerFn) { dispatchTable[op] = h }

func init() {
	register(STOP, opStop)
	register(ADD, opAdd)
	register(MUL, opMul)
	register(SUB, opSub)
	register(DIV, opDiv)
	register(SDIV, opSdiv)
	register(MOD, opMod)
	register(SMOD, opSmod)
	register(ADDMOD, opAddmod)
	register(MULMOD, opMulmod)
	register(EXP, opExp)
	register(SIGNEXTEND, opSignextend)

	register(LT, opLt)
	register(GT, opGt)
	register(SLT, opSlt)
	register(SGT, opSgt)
	register(EQ, opEq)
	register(ISZERO, opIszero)
	register(AND, opAnd)
	register(OR, opOr)
	register(XOR, opXor)
	register(NOT, opNot)
	register(BYTE, opByte)
	register(SHL, opShl)
	register(SHR, opShr)
	register(SAR, opSar)

	register(KECCAK256, opKeccak256)

	register(ADDRESS, opAddress)
	register(BALANCE, opBalance)
	register(ORIGIN, opOrigin)
	register(CALLER, opCaller)
	register(CALLVALUE, opCallvalue)
	register(CALLDATALOAD, opCalldataload)
	register(CALLDATASIZE, opCalldatasize)
	register(CALLDATACOPY, opCalldatacopy)
	register(CODESIZE, opCodesize)
	register(CODECOPY, opCodecopy)
	register(GASPRICE, opGasprice)
	register(EXTCODESIZE, opExtcodesize)
	register(EXTCODECOPY, opExtcodecopy)
	register(RETURNDATASIZE, opReturndatasize)
	register(RETURNDATACOPY, opReturndatacopy)
	register(EXTCODEHASH, opExtcodehash)
	register(BLOCKHASH, opBlockhash)
	register(COINBASE, opCoinbase)
	register(TIMESTAMP, opTimestamp)
	register(NUMBER, opNumber)
	register(PREVRANDAO, opPrevrandao)
	register(GASLIMIT, opGaslimit)
	register(CHAINID, opChainid)
	register(SELFBALANCE, opSelfbalance)
	register(BASEFEE, opBasefee)
	register(BLOBHASH, opBlobhash)
	register(BLOBBASEFEE, opBlobbasefee)

	register(POP, opPop)
	register(MLOAD, opMload)
	register(MSTORE, opMstore)
	register(MSTORE8, opMstore8)
	register(SLOAD, opSload)
	register(SSTORE, opSstore)
	register(JUMP, opJump)
	register(JUMPI, opJumpi)
	register(PC, opPc)
	register(MSIZE, opMsize)
	register(GAS, opGas)
	register(JUMPDEST, opJumpdest)
	register(TLOAD, opTload)
	register(TSTORE, opTstore)
	register(MCOPY, opMcopy)
	register(PUSH0, opPush)

	for i := 0; i < 32; i++ {
		register(PUSH1+OpCode(i), opPush)
	}
	for i := 0; i < 16; i++ {
		register(DUP1+OpCode(i), opDup)
		register(SWAP1+OpCode(i), opSwap)
	}
	for i := 0; i < 5; i++ {
		register(LOG0+OpCode(i), opLog)
	}

	register(CREATE, opCreate)
	register(CALL, opCall)
	register(CALLCODE, opCallcode)
	register(RETURN, opReturn)
	register(DELEGATECALL, opDelegatecall)
	register(CREATE2, opCreate2)
	register(STATICCALL, opStaticcall)
	register(REVERT, opRevert)
	register(INVALID, opInvalid)
	register(SELFDESTRUCT, opSelfdestruct)
}

// Run dispatches instructions from the frame's current index until it
// reaches a terminal status. Dispatch is tail-call threaded in spirit: each
// step looks up and invokes exactly one handler and loops, rather than
// recursing, so an arbitrarily long-running frame uses constant Go stack
// space. Gas is charged once per basic block, authoritatively (spec §4.6,
// §9): if the block's precomputed base cost doesn't fit in what remains, the
// frame fails before executing any instruction in that block, and dynamic
// costs within the block are charged by the handlers that incur them.
func (f *Frame) Run() Status {
	f.Metrics.FramesStarted.Inc()
	startGas := f.Gas

	for f.Status == StatusRunning {
		if int(f.Idx) >= f.Plan.Len() {
			f.Status = StatusStop
			break
		}
		ins := f.Plan.At(f.Idx)

		if ins.IsBlockStart {
			if !f.UseGas(ins.BlockGas) {
				f.fail(OutOfGas, "basic block at pc %d costs %d, %d remaining", ins.PC, ins.BlockGas, f.Gas)
				f.Tracer.OnFault(ins.PC, ins.Op, uint64(f.Gas), f.Failure, f.depth)
				break
			}
			f.Metrics.BlocksExecuted.Inc()
		}

		f.Tracer.OnStep(ins.PC, ins.effectiveOp(), uint64(f.Gas), f.stackView(), f.Memory, f.depth)

		var err error
		if ins.HasFusedOp {
			err = f.runFused(ins)
		} else {
			h := dispatchTable[ins.Op]
			if h == nil {
				err = f.fail(InvalidOpcode, "opcode 0x%02x is not defined", byte(ins.Op))
			} else {
				err = h(f, ins)
			}
		}

		if err != nil {
			f.Tracer.OnFault(ins.PC, ins.effectiveOp(), uint64(f.Gas), f.Failure, f.depth)
			break
		}
		if f.Status != StatusRunning {
			break
		}
		if f.jumped {
			f.jumped = false
			continue
		}
		f.Idx++
	}

	used := startGas - f.Gas
	if used > 0 {
		f.Metrics.GasUsed.Add(float64(used))
	}
	f.Tracer.OnEnd(f.Status, uint64(used), f.ReturnData)
	return f.Status
}

// runFused executes a PUSH fused with a following arithmetic or jump
// opcode (spec §4.5): the constant never touches the operand stack.
func (f *Frame) runFused(ins *Instruction) error {
	switch ins.FusedOp {
	case ADD, MUL, SUB, DIV:
		if err := f.requireStack(1); err != nil {
			return err
		}
		c := ins.Constant
		v := f.Stack.Peek()
		switch ins.FusedOp {
		case ADD:
			v.Add(&c, v)
		case MUL:
			v.Mul(&c, v)
		case SUB:
			v.Sub(&c, v)
		case DIV:
			v.Div(&c, v)
		}
		return nil
	case JUMP:
		if ins.JumpIdx < 0 {
			return f.fail(InvalidJump, "fused jump target at pc %d is not a JUMPDEST", ins.PC)
		}
		f.jumpTo(uint32(ins.JumpIdx))
		return nil
	case JUMPI:
		if err := f.requireStack(1); err != nil {
			return err
		}
		cond := f.Stack.Pop()
		if cond.IsZero() {
			return nil
		}
		if ins.JumpIdx < 0 {
			return f.fail(InvalidJump, "fused jump target at pc %d is not a JUMPDEST", ins.PC)
		}
		f.jumpTo(uint32(ins.JumpIdx))
		return nil
	default:
		return f.fail(InvalidOpcode, "unsupported fused opcode %s", ins.FusedOp)
	}
}

// stackView builds the read-only snapshot passed to Tracer.OnStep.
func (f *Frame) stackView() *stackSnapshot {
	return &stackSnapshot{
		len:  f.Stack.Len(),
		peek: func(n int) *uint256.Int { return f.Stack.Back(n) },
	}
}
