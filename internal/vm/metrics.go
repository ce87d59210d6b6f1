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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus instrumentation. It is incremented
// once per basic block rather than per opcode, so a hot loop's dispatch
// remains allocation- and lock-contention-free; per-opcode detail belongs to
// a Tracer, not to metrics.
type Metrics struct {
	BlocksExecuted prometheus.Counter
	GasUsed        prometheus.Counter
	FramesStarted  prometheus.Counter
	Failures       *prometheus.CounterVec
}

// NewMetrics registers the engine's counters with reg and returns them. Pass
// prometheus.NewRegistry() in tests to avoid collisions with the global
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BlocksExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guillotine",
			Subsystem: "vm",
			Name:      "basic_blocks_executed_total",
			Help:      "Number of basic blocks that passed their gas pre-check.",
		}),
		GasUsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guillotine",
			Subsystem: "vm",
			Name:      "gas_used_total",
			Help:      "Total gas consumed across all frames.",
		}),
		FramesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guillotine",
			Subsystem: "vm",
			Name:      "frames_started_total",
			Help:      "Number of frames started.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guillotine",
			Subsystem: "vm",
			Name:      "frame_failures_total",
			Help:      "Frame terminations by failure kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.BlocksExecuted, m.GasUsed, m.FramesStarted, m.Failures)
	return m
}

// noopMetrics is used when a Frame is built without an explicit *Metrics.
var noopMetrics = &Metrics{
	BlocksExecuted: prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_blocks"}),
	GasUsed:        prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_gas"}),
	FramesStarted:  prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_frames"}),
	Failures:       prometheus.NewCounterVec(prometheus.CounterOpts{Name: "noop_failures"}, []string{"kind"}),
}
