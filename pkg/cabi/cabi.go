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

// Package main is the C-ABI surface of the engine: every frame the embedder
// creates is kept behind an int32 handle in a process-wide table, and the
// exported functions below are the only way in or out. Built with
// `go build -buildmode=c-shared`, it produces a libguillotine.so/.h pair a
// C (or any FFI-capable) host can link against directly.
//
// This is the mirror image of the cgo-handle pattern in a typical Go-calls-C
// EVM binding: there, Go code holds a C handle to an EVM running on the
// other side of the boundary. Here, Go *is* the EVM, and C code holds a
// handle into this process instead.
package main

/*
#include <stdint.h>
#include <string.h>

#define EVM_SUCCESS                  0
#define EVM_ERROR_STACK_OVERFLOW    -1
#define EVM_ERROR_STACK_UNDERFLOW   -2
#define EVM_ERROR_OUT_OF_GAS        -3
#define EVM_ERROR_INVALID_JUMP      -4
#define EVM_ERROR_INVALID_OPCODE    -5
#define EVM_ERROR_OUT_OF_BOUNDS     -6
#define EVM_ERROR_ALLOCATION        -7
#define EVM_ERROR_BYTECODE_TOO_LARGE -8
#define EVM_ERROR_STOP              -9
#define EVM_ERROR_NULL_POINTER      -10
#define EVM_ERROR_WRITE_PROTECTION  -11
#define EVM_ERROR_TRUNCATED_PUSH    -12
#define EVM_ERROR_INVALID_HANDLE    -13
#define EVM_ERROR_OUT_OF_MEMORY     -14
#define EVM_REVERT                  -15
*/
import "C"

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/evmts/guillotine/internal/vm"
	"github.com/evmts/guillotine/params"
)

// session is everything kept alive behind one handle: the frame driving
// execution plus a per-handle id generated at EvmCreate. The id is stored
// only; no exported function returns it and no tracer is attached.
type session struct {
	id      uuid.UUID
	frame   *vm.Frame
	storage *vm.MapStorageHost
}

var (
	sessions   sync.Map // int32 -> *session
	nextHandle int32
	planCache  = vm.NewPlanCache(vm.DefaultPlanCacheSize)
)

func allocHandle(s *session) C.int32_t {
	h := atomic.AddInt32(&nextHandle, 1)
	sessions.Store(h, s)
	return C.int32_t(h)
}

func lookup(handle C.int32_t) *session {
	v, ok := sessions.Load(int32(handle))
	if !ok {
		return nil
	}
	return v.(*session)
}

// failureToErrno maps a frame's terminal Failure to the stable C error
// codes above. It is the only place that translates between the two.
func failureToErrno(f *vm.Failure) C.int32_t {
	if f == nil {
		return C.EVM_SUCCESS
	}
	switch f.Kind {
	case vm.StackOverflow:
		return C.EVM_ERROR_STACK_OVERFLOW
	case vm.StackUnderflow:
		return C.EVM_ERROR_STACK_UNDERFLOW
	case vm.OutOfGas:
		return C.EVM_ERROR_OUT_OF_GAS
	case vm.InvalidJump, vm.InvalidJumpDestination:
		return C.EVM_ERROR_INVALID_JUMP
	case vm.InvalidOpcode:
		return C.EVM_ERROR_INVALID_OPCODE
	case vm.OutOfBounds:
		return C.EVM_ERROR_OUT_OF_BOUNDS
	case vm.WriteProtection:
		return C.EVM_ERROR_WRITE_PROTECTION
	case vm.BytecodeTooLarge, vm.InitcodeTooLarge:
		return C.EVM_ERROR_BYTECODE_TOO_LARGE
	case vm.TruncatedPush:
		return C.EVM_ERROR_TRUNCATED_PUSH
	case vm.AllocationError, vm.OutOfMemory:
		return C.EVM_ERROR_OUT_OF_MEMORY
	default:
		return C.EVM_ERROR_ALLOCATION
	}
}

// EvmCreate validates code, builds (or reuses a cached) Plan, and returns a
// handle to a fresh Frame ready to run. A negative handle signals that
// validation failed; the caller has no Failure detail beyond that in this
// call, since nothing was allocated to report one from.
//
//export EvmCreate
func EvmCreate(code *C.uint8_t, codeLen C.size_t, gas C.uint64_t) C.int32_t {
	if code == nil && codeLen != 0 {
		return C.EVM_ERROR_NULL_POINTER
	}
	goCode := C.GoBytes(unsafe.Pointer(code), C.int(codeLen))

	bc, err := vm.Validate(goCode, false)
	if err != nil {
		return failureToErrno(vm.AsFailure(err))
	}
	plan := planCache.GetOrBuild(bc)
	storage := vm.NewMapStorageHost()

	frame := vm.NewFrame(plan, uint64(gas), storage, vm.Address{}, vm.Address{}, uint256.Int{}, nil, false, nil, nil)
	return allocHandle(&session{id: uuid.New(), frame: frame, storage: storage})
}

// EvmExecute runs the handle's frame to a terminal status and returns
// EVM_SUCCESS, EVM_ERROR_STOP, EVM_REVERT, or the errno for its Failure.
//
//export EvmExecute
func EvmExecute(handle C.int32_t) C.int32_t {
	s := lookup(handle)
	if s == nil {
		return C.EVM_ERROR_INVALID_HANDLE
	}
	switch s.frame.Run() {
	case vm.StatusStop:
		return C.EVM_ERROR_STOP
	case vm.StatusReturn:
		return C.EVM_SUCCESS
	case vm.StatusRevert:
		return C.EVM_REVERT
	default:
		return failureToErrno(s.frame.Failure)
	}
}

// EvmStackPush pushes a 32-byte big-endian word onto the handle's operand
// stack, ahead of execution (useful for driving a frame instruction by
// instruction from the host side).
//
//export EvmStackPush
func EvmStackPush(handle C.int32_t, word32 *C.uint8_t) C.int32_t {
	s := lookup(handle)
	if s == nil {
		return C.EVM_ERROR_INVALID_HANDLE
	}
	if word32 == nil {
		return C.EVM_ERROR_NULL_POINTER
	}
	buf := C.GoBytes(unsafe.Pointer(word32), 32)
	v := new(uint256.Int).SetBytes(buf)
	if err := s.frame.PushExternal(v); err != nil {
		return failureToErrno(vm.AsFailure(err))
	}
	return C.EVM_SUCCESS
}

// EvmStackPop pops the top word into a caller-supplied 32-byte buffer.
//
//export EvmStackPop
func EvmStackPop(handle C.int32_t, out *C.uint8_t) C.int32_t {
	s := lookup(handle)
	if s == nil {
		return C.EVM_ERROR_INVALID_HANDLE
	}
	if out == nil {
		return C.EVM_ERROR_NULL_POINTER
	}
	v, err := s.frame.PopExternal()
	if err != nil {
		return failureToErrno(vm.AsFailure(err))
	}
	b := v.Bytes32()
	C.memcpy(unsafe.Pointer(out), unsafe.Pointer(&b[0]), 32)
	return C.EVM_SUCCESS
}

// EvmGasRemaining returns the handle's remaining gas.
//
//export EvmGasRemaining
func EvmGasRemaining(handle C.int32_t) C.uint64_t {
	s := lookup(handle)
	if s == nil {
		return 0
	}
	return C.uint64_t(s.frame.Gas)
}

// EvmLastOp returns the opcode byte at the frame's current program counter,
// or 0 (STOP) once execution has run past the end of the code.
//
//export EvmLastOp
func EvmLastOp(handle C.int32_t) C.uint8_t {
	s := lookup(handle)
	if s == nil {
		return 0
	}
	pc := s.frame.PC()
	if pc >= uint64(s.frame.Plan.Bytecode.Len()) {
		return 0
	}
	return C.uint8_t(s.frame.Plan.Bytecode.At(pc))
}

// EvmDestroy releases the handle's frame and removes it from the table.
// Using the handle again after this returns EVM_ERROR_INVALID_HANDLE.
//
//export EvmDestroy
func EvmDestroy(handle C.int32_t) {
	s := lookup(handle)
	if s == nil {
		return
	}
	s.frame.Release()
	sessions.Delete(int32(handle))
}

// EvmVersion returns the engine's version string. The caller owns the
// returned C string and must free it.
//
//export EvmVersion
func EvmVersion() *C.char {
	return C.CString(params.VersionWithMeta)
}

func main() {}
