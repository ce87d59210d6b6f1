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

func pushAddress(f *Frame, addr Address) error {
	var buf [32]byte
	copy(buf[32-20:], addr[:])
	w := new(uint256.Int).SetBytes(buf[:])
	return f.push(w)
}

func pushHash(f *Frame, h Hash256) error {
	w := new(uint256.Int).SetBytes(h[:])
	return f.push(w)
}

func opAddress(f *Frame, _ *Instruction) error { return pushAddress(f, f.Address) }
func opCaller(f *Frame, _ *Instruction) error  { return pushAddress(f, f.Caller) }
func opOrigin(f *Frame, _ *Instruction) error  { return pushAddress(f, f.Tx.Origin) }
func opCoinbase(f *Frame, _ *Instruction) error { return pushAddress(f, f.Block.Coinbase) }

func opCallvalue(f *Frame, _ *Instruction) error {
	v := f.CallValue
	return f.push(&v)
}

func opGasprice(f *Frame, _ *Instruction) error {
	v := f.Tx.GasPrice
	return f.push(&v)
}

func opBasefee(f *Frame, _ *Instruction) error {
	v := f.Block.BaseFee
	return f.push(&v)
}

func opBlobbasefee(f *Frame, _ *Instruction) error {
	v := f.Block.BlobBaseFee
	return f.push(&v)
}

func opChainid(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(f.Block.ChainID))
}

func opTimestamp(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(f.Block.Timestamp))
}

func opNumber(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(f.Block.Number))
}

func opGaslimit(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(f.Block.GasLimit))
}

func opPrevrandao(f *Frame, _ *Instruction) error { return pushHash(f, f.Block.PrevRandao) }

func opSelfbalance(f *Frame, _ *Instruction) error {
	v := f.Host.GetBalance(f.Address)
	return f.push(&v)
}

func opBalance(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	addrWord := f.Stack.Peek()
	bal := f.Host.GetBalance(wordToAddress(addrWord))
	addrWord.Set(&bal)
	return nil
}

func opExtcodehash(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	addrWord := f.Stack.Peek()
	h := f.Host.GetCodeHash(wordToAddress(addrWord))
	addrWord.SetBytes(h[:])
	return nil
}

func opExtcodesize(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	addrWord := f.Stack.Peek()
	code := f.Host.GetCode(wordToAddress(addrWord))
	addrWord.SetUint64(uint64(len(code)))
	return nil
}

func opExtcodecopy(f *Frame, _ *Instruction) error {
	if err := f.requireStack(4); err != nil {
		return err
	}
	addrWord, destWord, offsetWord, sizeWord := f.Stack.Pop(), f.Stack.Pop(), f.Stack.Pop(), f.Stack.Pop()
	code := f.Host.GetCode(wordToAddress(addrWord))
	return f.copyToMemory(destWord, offsetWord, sizeWord, code)
}

func opBlockhash(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	numWord := f.Stack.Peek()
	num, ok := SafeUint256ToUint64(numWord)
	if !ok {
		numWord.Clear()
		return nil
	}
	h := f.Host.GetBlockHash(num)
	numWord.SetBytes(h[:])
	return nil
}

func opBlobhash(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	idxWord := f.Stack.Peek()
	idx, ok := SafeUint256ToUint64(idxWord)
	if !ok || idx >= uint64(len(f.Tx.BlobHashes)) {
		idxWord.Clear()
		return nil
	}
	h := f.Tx.BlobHashes[idx]
	idxWord.SetBytes(h[:])
	return nil
}

func opCalldatasize(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(uint64(len(f.CallData))))
}

func opCodesize(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(uint64(f.Plan.Bytecode.Len())))
}

func opReturndatasize(f *Frame, _ *Instruction) error {
	return f.push(uint256.NewInt(uint64(len(f.ReturnData))))
}

func opCalldataload(f *Frame, _ *Instruction) error {
	if err := f.requireStack(1); err != nil {
		return err
	}
	offsetWord := f.Stack.Peek()
	var buf [32]byte
	if offset, ok := SafeUint256ToUint64(offsetWord); ok && offset < uint64(len(f.CallData)) {
		copy(buf[:], f.CallData[offset:])
	}
	offsetWord.SetBytes(buf[:])
	return nil
}

// copyToMemory writes src[offset:offset+size] (zero-padded past src's end)
// into memory at dest, charging memory expansion and the per-word copy
// cost. It backs CALLDATACOPY, CODECOPY, EXTCODECOPY, and RETURNDATACOPY.
func (f *Frame) copyToMemory(destWord, offsetWord, sizeWord *uint256.Int, src []byte) error {
	dest, ok := SafeUint256ToUint64(destWord)
	if !ok {
		return f.fail(OutOfBounds, "copy operand exceeds addressable range")
	}
	size, ok := SafeUint256ToUint64(sizeWord)
	if !ok {
		return f.fail(OutOfBounds, "copy operand exceeds addressable range")
	}
	if size == 0 {
		return nil
	}
	if err := f.ensureMemory(dest, size); err != nil {
		return err
	}
	wordCost, err := safeMul(toWordSize(size), GasCopy)
	if err != nil {
		return f.fail(OutOfGas, "copy word cost overflowed")
	}
	if !f.UseGas(wordCost) {
		return f.fail(OutOfGas, "copy word cost %d exceeds remaining gas", wordCost)
	}
	data := GetMemory(int(size))
	defer PutMemory(data)
	for i := range data {
		data[i] = 0
	}
	if offset, ok := SafeUint256ToUint64(offsetWord); ok && offset < uint64(len(src)) {
		copy(data, src[offset:])
	}
	f.Memory.Set(dest, size, data)
	return nil
}

func opCalldatacopy(f *Frame, _ *Instruction) error {
	if err := f.requireStack(3); err != nil {
		return err
	}
	dest, offset, size := f.Stack.Pop(), f.Stack.Pop(), f.Stack.Pop()
	return f.copyToMemory(dest, offset, size, f.CallData)
}

func opCodecopy(f *Frame, _ *Instruction) error {
	if err := f.requireStack(3); err != nil {
		return err
	}
	dest, offset, size := f.Stack.Pop(), f.Stack.Pop(), f.Stack.Pop()
	return f.copyToMemory(dest, offset, size, f.Plan.Bytecode.Code())
}

func opReturndatacopy(f *Frame, _ *Instruction) error {
	if err := f.requireStack(3); err != nil {
		return err
	}
	dest, offset, size := f.Stack.Pop(), f.Stack.Pop(), f.Stack.Pop()
	if off, ok1 := SafeUint256ToUint64(offset); ok1 {
		if sz, ok2 := SafeUint256ToUint64(size); ok2 && off+sz > uint64(len(f.ReturnData)) {
			return f.fail(OutOfBounds, "RETURNDATACOPY reads past end of return data")
		}
	}
	return f.copyToMemory(dest, offset, size, f.ReturnData)
}

// opKeccak256 implements KECCAK256: hashes memory[offset:offset+size),
// charging the base cost plus 6 gas per word hashed.
func opKeccak256(f *Frame, _ *Instruction) error {
	if err := f.requireStack(2); err != nil {
		return err
	}
	offsetWord, sizeWord := f.Stack.Pop(), f.Stack.Peek()
	offset, ok := SafeUint256ToUint64(offsetWord)
	if !ok {
		return f.fail(OutOfBounds, "KECCAK256 operand exceeds addressable range")
	}
	size, ok := SafeUint256ToUint64(sizeWord)
	if !ok {
		return f.fail(OutOfBounds, "KECCAK256 operand exceeds addressable range")
	}
	if size > 0 {
		if err := f.ensureMemory(offset, size); err != nil {
			return err
		}
	}
	wordCost, err := safeMul(toWordSize(size), GasKeccak256Word)
	if err != nil {
		return f.fail(OutOfGas, "KECCAK256 word cost overflowed")
	}
	if !f.UseGas(wordCost) {
		return f.fail(OutOfGas, "KECCAK256 word cost %d exceeds remaining gas", wordCost)
	}
	var data []byte
	if size > 0 {
		data = f.Memory.GetPtr(offset, int(size))
	}
	h := keccak256(data)
	sizeWord.SetBytes(h[:])
	return nil
}

func wordToAddress(w *uint256.Int) Address {
	b := w.Bytes32()
	var a Address
	copy(a[:], b[12:])
	return a
}

// opLog implements LOG0..LOG4: appends a log entry with ins.Op.LogN()
// topics and the memory range as data. Fails with WriteProtection in a
// read-only context.
func opLog(f *Frame, ins *Instruction) error {
	if f.ReadOnly {
		return f.fail(WriteProtection, "LOG in a read-only context")
	}
	n := ins.Op.LogN()
	if err := f.requireStack(n + 2); err != nil {
		return err
	}
	offsetWord, sizeWord := f.Stack.Pop(), f.Stack.Pop()
	topics := make([]Hash256, n)
	for i := 0; i < n; i++ {
		topics[i] = wordToHash(f.Stack.Pop())
	}
	data, err := f.readMemoryRange(offsetWord, sizeWord)
	if err != nil {
		return err
	}
	topicCost, err := safeMul(uint64(n), GasLogTopic)
	if err != nil {
		return f.fail(OutOfGas, "LOG topic cost overflowed")
	}
	dataCost, err := safeMul(uint64(len(data)), GasLogData)
	if err != nil {
		return f.fail(OutOfGas, "LOG data cost overflowed")
	}
	total, err := safeAdd(topicCost, dataCost)
	if err != nil {
		return f.fail(OutOfGas, "LOG cost overflowed")
	}
	if !f.UseGas(total) {
		return f.fail(OutOfGas, "LOG cost %d exceeds remaining gas", total)
	}
	f.Logs = append(f.Logs, LogEntry{Topics: topics, Data: data})
	return nil
}
