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

import lru "github.com/hashicorp/golang-lru/v2"

// DefaultPlanCacheSize is the number of distinct bytecodes a PlanCache
// retains by default. Plans are immutable once built (fusion and jump
// resolution never depend on frame state), so a cached Plan is safely
// shared across concurrent frames executing the same code.
const DefaultPlanCacheSize = 256

// PlanCache memoizes Plan by bytecode hash, avoiding repeated planning of
// the same contract across many calls.
type PlanCache struct {
	lru *lru.Cache[Hash256, *Plan]
}

// NewPlanCache returns a PlanCache holding at most size entries. A
// non-positive size falls back to DefaultPlanCacheSize.
func NewPlanCache(size int) *PlanCache {
	if size <= 0 {
		size = DefaultPlanCacheSize
	}
	c, err := lru.New[Hash256, *Plan](size)
	if err != nil {
		// Only returns an error for a non-positive size, which is excluded
		// above.
		panic(err)
	}
	return &PlanCache{lru: c}
}

// GetOrBuild returns the cached Plan for bc's hash, building and caching one
// if absent.
func (c *PlanCache) GetOrBuild(bc *Bytecode) *Plan {
	h := bc.Hash()
	if p, ok := c.lru.Get(h); ok {
		return p
	}
	p := Build(bc)
	c.lru.Add(h, p)
	return p
}

// Len returns the number of plans currently cached.
func (c *PlanCache) Len() int { return c.lru.Len() }

// Purge evicts every cached plan.
func (c *PlanCache) Purge() { c.lru.Purge() }
