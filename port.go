// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import (
	"io"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// Outlet is the upstream end of a wire. The owner pushes elements against
// outstanding downstream demand and closes the wire with Complete or Fail.
// Not safe for concurrent use; one goroutine owns each end.
type Outlet[T any] struct {
	elems   *lfq.SPSC[msg[T]]
	signals *lfq.SPSC[int32]

	demand   int
	canceled bool
	term     msg[T]
	hasTerm  bool
	closed   bool

	slot msg[T]
}

// Poll drains pending demand and cancellation signals and flushes a
// recorded terminal once the ring has space. Non-blocking.
func (o *Outlet[T]) Poll() {
	for {
		n, err := o.signals.Dequeue()
		if err != nil {
			break
		}
		if n == cancelSignal {
			o.canceled = true
			continue
		}
		o.demand += int(n)
	}
	if o.canceled {
		// a canceled consumer reads nothing further
		o.demand = 0
		o.hasTerm = false
		o.closed = true
		return
	}
	if o.hasTerm {
		o.slot = o.term
		if o.elems.Enqueue(&o.slot) == nil {
			o.hasTerm = false
			o.closed = true
		}
	}
}

// Demand returns the outstanding downstream demand. Zero after cancel.
func (o *Outlet[T]) Demand() int {
	o.Poll()
	return o.demand
}

// Canceled reports whether the downstream side has canceled.
func (o *Outlet[T]) Canceled() bool {
	o.Poll()
	return o.canceled
}

// Push sends one element downstream, consuming one unit of demand.
// Returns iox.ErrWouldBlock when no demand is outstanding or the ring is
// full, ErrCanceled after downstream cancellation, and ErrClosed after
// Complete or Fail.
func (o *Outlet[T]) Push(v T) error {
	o.Poll()
	if o.canceled {
		return ErrCanceled
	}
	if o.closed || o.hasTerm {
		return ErrClosed
	}
	if o.demand == 0 {
		return iox.ErrWouldBlock
	}
	o.slot = msg[T]{kind: msgElem, v: v}
	if err := o.elems.Enqueue(&o.slot); err != nil {
		return err
	}
	o.demand--
	return nil
}

// Complete records graceful end of the element sequence. The terminal is
// flushed lazily by later Poll calls if the ring is momentarily full.
// No-op after cancel or an earlier terminal.
func (o *Outlet[T]) Complete() {
	o.Poll()
	if o.closed || o.hasTerm || o.canceled {
		return
	}
	o.term = msg[T]{kind: msgComplete}
	o.hasTerm = true
	o.Poll()
}

// Fail records failure of the element sequence with err, delivered
// downstream after any already-pushed elements.
// No-op after cancel or an earlier terminal.
func (o *Outlet[T]) Fail(err error) {
	o.Poll()
	if o.closed || o.hasTerm || o.canceled {
		return
	}
	o.term = msg[T]{kind: msgFailed, err: err}
	o.hasTerm = true
	o.Poll()
}

// Inlet is the downstream end of a wire. The owner requests elements with
// Pull, receives them with TryRecv, and tears the wire down with Cancel.
// Not safe for concurrent use; one goroutine owns each end.
type Inlet[T any] struct {
	elems   *lfq.SPSC[msg[T]]
	signals *lfq.SPSC[int32]

	deferred  int32
	canceling bool
	canceled  bool
	term      error

	slot int32
}

// Poll flushes deferred demand or a pending cancel upstream. Non-blocking;
// whatever cannot be flushed is retried by later calls.
func (i *Inlet[T]) Poll() {
	if i.canceling {
		i.slot = cancelSignal
		if i.signals.Enqueue(&i.slot) == nil {
			i.canceling = false
			i.canceled = true
		}
		return
	}
	if i.deferred > 0 && !i.canceled {
		i.slot = i.deferred
		if i.signals.Enqueue(&i.slot) == nil {
			i.deferred = 0
		}
	}
}

// Pull requests one more element from upstream. Demand is coalesced
// locally, so Pull never fails; it is flushed by Poll and TryRecv.
// No-op after Cancel or a terminal.
func (i *Inlet[T]) Pull() {
	if i.canceling || i.canceled || i.term != nil {
		return
	}
	i.deferred++
	i.Poll()
}

// Cancel tears the wire down from the downstream side, discarding any
// unflushed demand. No-op after a terminal.
func (i *Inlet[T]) Cancel() {
	if i.canceling || i.canceled || i.term != nil {
		return
	}
	i.deferred = 0
	i.canceling = true
	i.Poll()
}

// TryRecv receives one element. Returns iox.ErrWouldBlock when nothing has
// arrived, io.EOF after upstream completion, the upstream failure error
// after a failure, and ErrCanceled after Cancel. Terminal results repeat on
// every later call.
func (i *Inlet[T]) TryRecv() (T, error) {
	var zero T
	if i.term != nil {
		return zero, i.term
	}
	if i.canceling || i.canceled {
		return zero, ErrCanceled
	}
	i.Poll()
	m, err := i.elems.Dequeue()
	if err != nil {
		return zero, err
	}
	switch m.kind {
	case msgElem:
		return m.v, nil
	case msgComplete:
		i.term = io.EOF
		return zero, io.EOF
	default:
		i.term = m.err
		return zero, m.err
	}
}

// Done reports whether a terminal (completion or failure) has been
// observed on this inlet.
func (i *Inlet[T]) Done() bool {
	return i.term != nil
}
