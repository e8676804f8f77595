// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import (
	"code.hybscloud.com/lfq"
)

// portCapacity is the bounded capacity for wire transport rings.
// 4 balances amortizing producer-side cached-index refresh cost while
// keeping ring buffers within a single cache line. Demand signals are
// coalesced on the inlet side, so the signal ring never limits the
// amount of outstanding demand.
const portCapacity = 4

// Element record kinds on a wire's downstream ring.
const (
	msgElem uint8 = iota
	msgComplete
	msgFailed
)

// msg is one record on a wire's downstream ring: an element, a graceful
// completion, or a failure carrying the terminal error.
type msg[T any] struct {
	kind uint8
	v    T
	err  error
}

// Upstream signals are coalesced demand counts; cancelSignal tears the
// wire down from the downstream side.
const cancelSignal int32 = -1

// wire holds both ends of a directed connection and its two transport
// rings in a single allocation. Each ring is a single-producer
// single-consumer bounded queue: elements travel downstream, demand and
// cancellation travel upstream.
type wire[T any] struct {
	out     Outlet[T]
	in      Inlet[T]
	elems   lfq.SPSC[msg[T]]
	signals lfq.SPSC[int32]
}

// Wire creates a directed port connection and returns its two ends.
// The [Outlet] belongs to the upstream producer, the [Inlet] to the
// downstream consumer; each end must be owned by at most one goroutine.
//
// Port operations are non-blocking: they return iox.ErrWouldBlock when
// the bounded ring cannot make progress.
func Wire[T any]() (*Outlet[T], *Inlet[T]) {
	w := &wire[T]{}
	w.elems.Init(portCapacity)
	w.signals.Init(portCapacity)
	w.out = Outlet[T]{elems: &w.elems, signals: &w.signals}
	w.in = Inlet[T]{elems: &w.elems, signals: &w.signals}
	return &w.out, &w.in
}
