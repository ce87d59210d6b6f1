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

import (
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/holiman/uint256"
)

// Bytecode is the artifact the validator produces from raw bytes: the code
// itself plus the three bitmaps (op starts, push data, valid jump
// destinations) that let the planner and interpreter answer structural
// questions about it in O(1) (spec §3, §4.1).
type Bytecode struct {
	code     []byte
	opStart  bitvec
	pushData bitvec
	jumpdest bitvec

	hashOnce sync.Once
	hash     Hash256

	jdIndex jumpDestinations
}

// Validate runs the three-pass validation algorithm of spec §4.1 and
// returns the resulting Bytecode artifact. isInitcode selects the EIP-3860
// size limit (MaxInitcodeSize) in place of the deployed-code limit
// (MaxCodeSize); the selected limit is checked before the code is walked.
func Validate(code []byte, isInitcode bool) (*Bytecode, error) {
	limit := MaxCodeSize
	kind := BytecodeTooLarge
	if isInitcode {
		limit = MaxInitcodeSize
		kind = InitcodeTooLarge
	}
	if len(code) > limit {
		return nil, NewFailuref(kind, "code size %d exceeds limit %d", len(code), limit)
	}

	opStart, pushData, jumpdest, truncated, badPC, badOp, hasInvalidOp := codeBitmaps(code)
	if hasInvalidOp {
		return nil, NewFailuref(InvalidOpcode, "undefined opcode 0x%02x at pc %d", byte(badOp), badPC)
	}
	if truncated {
		return nil, NewFailure(TruncatedPush, "PUSH immediate data runs past end of code")
	}
	if err := checkStaticJumps(code, opStart, jumpdest); err != nil {
		return nil, err
	}

	return &Bytecode{
		code:     code,
		opStart:  opStart,
		pushData: pushData,
		jumpdest: jumpdest,
	}, nil
}

// checkStaticJumps is the third pass of spec §4.1: for every JUMP or JUMPI
// whose target is pushed by the immediately preceding PUSH (a static jump),
// the target is resolved at validation time and must name a JUMPDEST. This
// catches bytecode like PUSH1 0x10 JUMP where 0x10 is not a JUMPDEST before
// any frame ever runs it, rather than surfacing it as a run-time InvalidJump
// once execution reaches the jump.
func checkStaticJumps(code []byte, opStart, jumpdest bitvec) error {
	n := len(code)
	for pc := 0; pc < n; pc++ {
		if !opStart.isSet(uint64(pc)) {
			continue
		}
		op := OpCode(code[pc])
		size := op.PushSize()
		if size == 0 {
			continue
		}
		nextPC := pc + 1 + size
		if nextPC >= n {
			continue
		}
		next := OpCode(code[nextPC])
		if next != JUMP && next != JUMPI {
			continue
		}
		dataStart := pc + 1
		dataEnd := dataStart + size
		target := new(uint256.Int).SetBytes(code[dataStart:dataEnd])
		targetPC, ok := SafeUint256ToUint64(target)
		if !ok || targetPC >= uint64(n) || !jumpdest.isSet(targetPC) {
			return NewFailuref(InvalidJumpDestination, "static jump at pc %d targets invalid destination", pc)
		}
	}
	return nil
}

// Code returns the validated bytecode bytes. Callers must not mutate it.
func (b *Bytecode) Code() []byte { return b.code }

// Len returns the number of bytes in the bytecode.
func (b *Bytecode) Len() int { return len(b.code) }

// At returns the opcode byte at pc. The caller must ensure pc < Len().
func (b *Bytecode) At(pc uint64) OpCode { return OpCode(b.code[pc]) }

// IsOpStart reports whether pc is the first byte of an instruction, as
// opposed to falling inside a PUSH's immediate data.
func (b *Bytecode) IsOpStart(pc uint64) bool {
	if pc >= uint64(len(b.code)) {
		return false
	}
	return b.opStart.isSet(pc)
}

// IsPushData reports whether pc falls inside a PUSH's immediate data.
func (b *Bytecode) IsPushData(pc uint64) bool {
	if pc >= uint64(len(b.code)) {
		return false
	}
	return b.pushData.isSet(pc)
}

// IsValidJumpDest reports whether pc is a JUMPDEST opcode that begins an
// instruction (i.e. is not itself push data of a preceding PUSH). This is
// the sole membership test JUMP/JUMPI consult; it never allocates.
func (b *Bytecode) IsValidJumpDest(pc uint64) bool {
	if pc >= uint64(len(b.code)) {
		return false
	}
	return b.jumpdest.isSet(pc)
}

// Hash returns the Keccak-256 digest of the bytecode, computed once and
// cached for the lifetime of the artifact.
func (b *Bytecode) Hash() Hash256 {
	b.hashOnce.Do(func() {
		b.hash = keccak256(b.code)
	})
	return b.hash
}

// JumpDestinations returns a compressed bitmap of every valid JUMPDEST
// position, built lazily on first call. It is intended for introspection
// callers (pkg/cabi, cmd/evmrun), not the interpreter's hot path, which uses
// IsValidJumpDest directly.
func (b *Bytecode) JumpDestinations() *roaring.Bitmap {
	return b.jdIndex.build(b.jumpdest, len(b.code))
}
