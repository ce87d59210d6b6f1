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
	"golang.org/x/crypto/sha3"
)

// Hash256 is a 32-byte Keccak-256 digest.
type Hash256 [32]byte

// keccak256 hashes data with the original (pre-NIST-padding) Keccak-256
// construction: this is the primitive the KECCAK256 opcode and
// Bytecode.Hash both require, and it differs from golang.org/x/crypto's
// SHA3-256 in its domain-separation suffix.
func keccak256(data ...[]byte) Hash256 {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out Hash256
	h.Sum(out[:0])
	return out
}
