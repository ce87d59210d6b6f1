// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// logger is the concrete Logger: an immutable context of key/value pairs
// plus a pool of maps reused across write calls to keep logging
// allocation-light on the hot path.
type logger struct {
	ctx     []interface{}
	mapPool sync.Pool
}

func newMapPool() sync.Pool {
	return sync.Pool{New: func() any { return map[string]interface{}{} }}
}

// New returns a child logger whose context is this logger's context plus
// ctx.
func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{mapPool: newMapPool()}
	child.ctx = make([]interface{}, 0, len(l.ctx)+len(ctx))
	child.ctx = append(child.ctx, l.ctx...)
	child.ctx = append(child.ctx, ctx...)
	return child
}

// fields merges l.ctx and the call-site ctx into a logrus.Fields map,
// borrowing scratch space from mapPool. Non-string keys are stringified; an
// odd trailing key with no value is kept with a nil value (see normalize).
func (l *logger) fields(ctx []interface{}) logrus.Fields {
	m := l.mapPool.Get().(map[string]interface{})
	for k := range m {
		delete(m, k)
	}
	fillFields(m, l.ctx)
	fillFields(m, ctx)
	out := make(logrus.Fields, len(m))
	for k, v := range m {
		out[k] = v
	}
	l.mapPool.Put(m)
	return out
}

// Ctx is a map-shaped alternative to the variadic key/value pairs accepted
// by Info, Debug, and friends.
type Ctx map[string]interface{}

// toArray flattens Ctx into the key, value, key, value, ... form the
// write path expects. Order is unspecified.
func (c Ctx) toArray() []interface{} {
	arr := make([]interface{}, 0, len(c)*2)
	for k, v := range c {
		arr = append(arr, k, v)
	}
	return arr
}

// normalize pads an odd-length context slice with a trailing nil value, so
// a caller that forgets a value doesn't panic on the next index.
func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		return append(ctx, nil)
	}
	return ctx
}

func fillFields(m map[string]interface{}, ctx []interface{}) {
	ctx = normalize(ctx)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", ctx[i])
		}
		m[key] = ctx[i+1]
	}
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}, skip int) {
	entry := terminal.WithFields(l.fields(ctx))
	switch lvl {
	case LvlTrace:
		entry.Trace(msg)
	case LvlDebug:
		entry.Debug(msg)
	case LvlInfo:
		entry.Info(msg)
	case LvlWarn:
		entry.Warn(msg)
	case LvlError, LvlFatal, LvlCrit:
		entry.Error(msg)
	}
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx, skipLevel) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx, skipLevel) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx, skipLevel) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx, skipLevel) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx, skipLevel) }

func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(msg, LvlCrit, ctx, skipLevel)
	os.Exit(1)
}

var _ Logger = (*logger)(nil)
