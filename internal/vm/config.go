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

const (
	// DefaultMemoryLimit is the soft cap on a frame's memory growth (spec
	// §5): a sufficiently large gas limit must not let a contract drive host
	// memory allocation past this point, independent of whether gas would
	// eventually run out first.
	DefaultMemoryLimit uint64 = 16 * 1024 * 1024

	// DefaultInitcodeSizeLimit mirrors EIP-3860's MaxInitcodeSize, applied
	// here to the size operand of CREATE/CREATE2 rather than only to the
	// top-level Validate(code, isInitcode=true) entry point.
	DefaultInitcodeSizeLimit uint64 = uint64(MaxInitcodeSize)
)

// Config holds the caller-tunable limits a Frame enforces beyond the
// protocol-fixed gas schedule. It has no effect on consensus gas costs; it
// only bounds host resource usage a hostile or buggy contract could
// otherwise drive unbounded within its gas limit.
type Config struct {
	// MemoryLimit is the largest byte offset a frame's memory may grow to.
	// Zero means DefaultMemoryLimit, not unlimited; use a very large value
	// to effectively disable the cap.
	MemoryLimit uint64

	// InitcodeSizeLimit bounds the size operand CREATE/CREATE2 charges gas
	// against. Zero means DefaultInitcodeSizeLimit.
	InitcodeSizeLimit uint64
}

// DefaultConfig returns the Config a Frame uses when the caller never calls
// WithConfig.
func DefaultConfig() Config {
	return Config{
		MemoryLimit:       DefaultMemoryLimit,
		InitcodeSizeLimit: DefaultInitcodeSizeLimit,
	}
}

// memoryLimit returns c.MemoryLimit, falling back to DefaultMemoryLimit for
// a zero-value Config so a Frame never ends up with no cap at all.
func (c Config) memoryLimit() uint64 {
	if c.MemoryLimit == 0 {
		return DefaultMemoryLimit
	}
	return c.MemoryLimit
}

// initcodeSizeLimit returns c.InitcodeSizeLimit, falling back to
// DefaultInitcodeSizeLimit for a zero-value Config.
func (c Config) initcodeSizeLimit() uint64 {
	if c.InitcodeSizeLimit == 0 {
		return DefaultInitcodeSizeLimit
	}
	return c.InitcodeSizeLimit
}
