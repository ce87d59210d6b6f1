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

// HostContext answers the handful of account and chain questions the
// environmental opcodes ask that fall outside StorageHost's narrower
// get/set contract: other accounts' balance and code, and historical block
// hashes. The engine never mutates anything through it.
type HostContext interface {
	GetBalance(addr Address) uint256.Int
	GetCode(addr Address) []byte
	GetCodeHash(addr Address) Hash256
	GetBlockHash(number uint64) Hash256
}

// BlockContext is the block-level environment exposed to COINBASE,
// TIMESTAMP, NUMBER, PREVRANDAO, GASLIMIT, CHAINID, BASEFEE, and
// BLOBBASEFEE. It is a plain value, not an interface: the embedder fills it
// in once per block and every frame in that block shares it.
type BlockContext struct {
	Coinbase    Address
	Timestamp   uint64
	Number      uint64
	PrevRandao  Hash256
	GasLimit    uint64
	ChainID     uint64
	BaseFee     uint256.Int
	BlobBaseFee uint256.Int
}

// TxContext is the transaction-level environment exposed to ORIGIN,
// GASPRICE, and BLOBHASH.
type TxContext struct {
	Origin     Address
	GasPrice   uint256.Int
	BlobHashes []Hash256
}

// NoopHostContext answers every HostContext query with the zero value. It
// is useful for running isolated bytecode (e.g. the CLI runner) that never
// references another account.
type NoopHostContext struct{}

func (NoopHostContext) GetBalance(Address) uint256.Int { return uint256.Int{} }
func (NoopHostContext) GetCode(Address) []byte         { return nil }
func (NoopHostContext) GetCodeHash(Address) Hash256    { return Hash256{} }
func (NoopHostContext) GetBlockHash(uint64) Hash256    { return Hash256{} }

var _ HostContext = NoopHostContext{}
