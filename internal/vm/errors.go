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

import "fmt"

// FailureKind is the closed set of reasons a frame can terminate abnormally.
// Terminal success statuses (Stop, Return, Revert) are not failures and are
// represented separately by Status (see frame.go).
type FailureKind int

const (
	StackOverflow FailureKind = iota
	StackUnderflow
	OutOfGas
	InvalidJump
	InvalidOpcode
	OutOfBounds
	WriteProtection
	BytecodeTooLarge
	TruncatedPush
	InvalidJumpDestination
	AllocationError
	InitcodeTooLarge
	OutOfMemory
)

func (k FailureKind) String() string {
	switch k {
	case StackOverflow:
		return "StackOverflow"
	case StackUnderflow:
		return "StackUnderflow"
	case OutOfGas:
		return "OutOfGas"
	case InvalidJump:
		return "InvalidJump"
	case InvalidOpcode:
		return "InvalidOpcode"
	case OutOfBounds:
		return "OutOfBounds"
	case WriteProtection:
		return "WriteProtection"
	case BytecodeTooLarge:
		return "BytecodeTooLarge"
	case TruncatedPush:
		return "TruncatedPush"
	case InvalidJumpDestination:
		return "InvalidJumpDestination"
	case AllocationError:
		return "AllocationError"
	case InitcodeTooLarge:
		return "InitcodeTooLarge"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure is the uniform error value a frame reports on abnormal
// termination. Every execution-ending error in this package is, or wraps, a
// *Failure, so callers can always type-assert down to Kind.
type Failure struct {
	Kind FailureKind
	Msg  string
}

func (f *Failure) Error() string {
	if f.Msg == "" {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

// NewFailure builds a *Failure with the given kind and message.
func NewFailure(kind FailureKind, msg string) *Failure {
	return &Failure{Kind: kind, Msg: msg}
}

// NewFailuref is NewFailure with fmt.Sprintf-style formatting.
func NewFailuref(kind FailureKind, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ErrStackUnderflow reports an opcode executed with fewer operands on the
// stack than it requires.
type ErrStackUnderflow struct {
	StackLen int
	Required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow: have %d, want %d", e.StackLen, e.Required)
}

// Kind implements the kinded-error contract used by the interpreter to map
// structured errors onto a Failure.
func (e *ErrStackUnderflow) Kind() FailureKind { return StackUnderflow }

// ErrStackOverflow reports a push that would grow the stack past its limit.
type ErrStackOverflow struct {
	StackLen int
	Limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack overflow: have %d, limit %d", e.StackLen, e.Limit)
}

func (e *ErrStackOverflow) Kind() FailureKind { return StackOverflow }

// ErrInvalidOpCode reports a byte that does not name a valid opcode.
type ErrInvalidOpCode struct {
	OpCode byte
}

func (e *ErrInvalidOpCode) Error() string {
	return fmt.Sprintf("invalid opcode 0x%02x", e.OpCode)
}

func (e *ErrInvalidOpCode) Kind() FailureKind { return InvalidOpcode }

// kindedError is implemented by every structured error in this package so
// the interpreter can fold them into a single Failure at the dispatch loop.
type kindedError interface {
	error
	Kind() FailureKind
}

// AsFailure normalizes any error produced by this package into a *Failure,
// preserving the original message. Exported for callers outside the
// package (pkg/cabi, cmd/evmrun) that need to inspect a Kind.
func AsFailure(err error) *Failure {
	return asFailure(err)
}

// asFailure normalizes any error produced by a handler into a *Failure,
// preserving the original message.
func asFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Failure); ok {
		return f
	}
	if k, ok := err.(kindedError); ok {
		return NewFailure(k.Kind(), k.Error())
	}
	return NewFailure(InvalidOpcode, err.Error())
}
