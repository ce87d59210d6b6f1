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
)

// jumpDestinations is a compressed, read-only index over a bytecode's valid
// JUMPDEST positions. The raw jumpdest bitvec already answers single-bit
// membership queries on the interpreter's hot path (IsValidJumpDest); this
// index backs Bytecode.JumpDestinations, for out-of-band callers that want
// the full set (e.g. to list or diff jump targets) without walking every
// byte of code themselves. Neither pkg/cabi nor cmd/evmrun calls it.
type jumpDestinations struct {
	once   sync.Once
	bitmap *roaring.Bitmap
}

func (j *jumpDestinations) build(jumpdest bitvec, codeLen int) *roaring.Bitmap {
	j.once.Do(func() {
		rb := roaring.New()
		for pc := 0; pc < codeLen; pc++ {
			if jumpdest.isSet(uint64(pc)) {
				rb.Add(uint32(pc))
			}
		}
		rb.RunOptimize()
		j.bitmap = rb
	})
	return j.bitmap
}
