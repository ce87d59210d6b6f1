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

import "math"

// Fixed per-opcode gas costs. Names and values follow the long-settled
// Ethereum Yellow Paper step classes; only the EIP-2929/3529/3860 costs
// needed since the Berlin/London/Shanghai forks are included, since the
// engine implements a single merged post-Cancun rule set (no fork
// switching, see SPEC_FULL.md).
const (
	GasQuickStep        uint64 = 2
	GasFastestStep      uint64 = 3
	GasFastStep         uint64 = 5
	GasMidStep          uint64 = 8
	GasSlowStep         uint64 = 10
	GasExtStep          uint64 = 20
	GasJumpdest         uint64 = 1
	GasKeccak256        uint64 = 30
	GasKeccak256Word    uint64 = 6
	GasLogGas           uint64 = 375
	GasLogTopic         uint64 = 375
	GasLogData          uint64 = 8
	GasCreate           uint64 = 32000
	GasCreateData       uint64 = 200
	GasCopy             uint64 = 3
	GasExpByte          uint64 = 50
	GasMemory           uint64 = 3
	GasSelfdestruct     uint64 = 5000
	GasSstoreSet        uint64 = 20000
	GasSstoreReset      uint64 = 2900
	GasSstoreClearsRefund uint64 = 4800
	GasColdSload        uint64 = 2100
	GasColdAccountAccess uint64 = 2600
	GasWarmStorageRead  uint64 = 100
	GasInitcodeWord     uint64 = 2 // EIP-3860
)

// MaxCodeSize is the maximum size of deployed contract bytecode (EIP-170).
const MaxCodeSize = 24576

// MaxInitcodeSize is the maximum size of initcode accepted by CREATE/CREATE2
// and by contract-creation transactions (EIP-3860).
const MaxInitcodeSize = 2 * MaxCodeSize

// errGasUintOverflow is returned by the checked-arithmetic helpers below when
// a gas computation would overflow uint64.
var errGasUintOverflow = NewFailure(OutOfGas, "gas computation overflowed uint64")

func safeAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errGasUintOverflow
	}
	return a + b, nil
}

func safeMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/a != b {
		return 0, errGasUintOverflow
	}
	return r, nil
}

// toWordSize rounds size up to the nearest multiple of 32, expressed in
// 32-byte words.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// memoryGasCost computes the total (not incremental) quadratic gas cost of a
// memory region of newSize bytes, per spec §4.4: 3*w + w^2/512 where w is the
// size in 32-byte words.
func memoryGasCost(newSize uint64) (uint64, error) {
	if newSize == 0 {
		return 0, nil
	}
	if newSize > math.MaxUint64-31 {
		return 0, errGasUintOverflow
	}
	words := toWordSize(newSize)
	square, err := safeMul(words, words)
	if err != nil {
		return 0, err
	}
	linear, err := safeMul(words, GasMemory)
	if err != nil {
		return 0, err
	}
	total, err := safeAdd(linear, square/512)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// calcMemSize64 returns off+size, checked for overflow, and false if size is
// zero (in which case no expansion is needed regardless of off).
func calcMemSize64(off, size uint64) (uint64, bool, error) {
	if size == 0 {
		return 0, false, nil
	}
	sum, err := safeAdd(off, size)
	if err != nil {
		return 0, false, err
	}
	return sum, true, nil
}

// expByteCost returns the dynamic portion of EXP's gas cost: GasExpByte per
// byte of the exponent's big-endian representation (zero bytes included up
// to the highest set bit).
func expByteCost(exponentBitLen int) uint64 {
	if exponentBitLen == 0 {
		return 0
	}
	byteLen := uint64((exponentBitLen + 7) / 8)
	return byteLen * GasExpByte
}

// ensureMemory grows f.Memory to cover [offset, offset+size), charging only
// the incremental quadratic cost over whatever has already been charged for
// this frame's memory (tracked in Memory.lastGasCost). It is a no-op when
// size is 0, per EVM convention that a zero-length memory access never
// grows memory. Growth past f.Config's memory limit fails with OutOfMemory
// even if gas would otherwise allow it (spec §5).
func (f *Frame) ensureMemory(offset, size uint64) error {
	end, used, err := calcMemSize64(offset, size)
	if err != nil {
		return f.fail(OutOfGas, "memory offset computation overflowed")
	}
	if !used {
		return nil
	}
	if end <= uint64(f.Memory.Len()) {
		return nil
	}
	if end > f.Config.memoryLimit() {
		return f.fail(OutOfMemory, "memory expansion to %d exceeds limit %d", end, f.Config.memoryLimit())
	}
	total, err := memoryGasCost(end)
	if err != nil {
		return f.fail(OutOfGas, "memory expansion to %d overflowed gas", end)
	}
	delta := total - f.Memory.lastGasCost
	if !f.UseGas(delta) {
		return f.fail(OutOfGas, "memory expansion costs %d, %d remaining", delta, f.Gas)
	}
	f.Memory.lastGasCost = total
	f.Memory.Resize(toWordSize(end) * 32)
	return nil
}
