// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import (
	"errors"
	"io"
	"time"

	"code.hybscloud.com/iox"
)

type loopState uint8

const (
	loopRunning loopState = iota
	loopCompleted
	loopFailed
)

// coordinator drives the feedback cycle. It owns the single circulating
// state token: the token sits either in the pending slot or inside the
// stage (in-flight), never both, and it enters the stage only when the
// primary outlet has outstanding downstream demand. All mutation happens
// inside poll, one run-to-completion pass at a time.
type coordinator[S, E any] struct {
	j      *junction[S, E]
	serial Serial

	pending    S
	hasPending bool
	inFlight   bool
	requested  bool

	// emitted value stashed when the primary ring was momentarily full
	emit    E
	hasEmit bool

	guard guard
	state loopState
}

func (c *coordinator[S, E]) poll(now time.Time) {
	primary := c.j.primary
	// keep flushing recorded terminals even after the loop has ended
	primary.Poll()
	c.j.feedback.Poll()
	if c.state != loopRunning {
		return
	}

	if primary.Canceled() {
		// downstream cancel: tear both inner ends down together, no error
		c.j.feedback.Complete()
		c.j.inbound.Cancel()
		c.state = loopCompleted
		return
	}

	if c.j.feedback.Canceled() && !c.j.inbound.Done() {
		c.guard.Arm(now)
	}

	if c.hasEmit {
		if primary.Push(c.emit) == nil {
			c.hasEmit = false
		}
	}

	// request the next pair in lockstep with downstream demand
	if !c.requested && !c.hasEmit && primary.Demand() > 0 && !c.j.inbound.Done() {
		c.j.inbound.Pull()
		c.requested = true
	}

	// send the pending token only when no token circulates, the stage has
	// asked for input, and the consumer has asked for output
	if !c.inFlight && c.hasPending && !c.hasEmit &&
		primary.Demand() > 0 && c.j.feedback.Demand() > 0 {
		if c.j.feedback.Push(c.pending) == nil {
			c.hasPending = false
			c.inFlight = true
		}
	}

	for c.state == loopRunning && !c.hasEmit {
		p, err := c.j.inbound.TryRecv()
		if err != nil {
			if errors.Is(err, iox.ErrWouldBlock) {
				break
			}
			if err == io.EOF {
				primary.Complete()
				c.state = loopCompleted
			} else {
				primary.Fail(err)
				c.state = loopFailed
			}
			c.j.feedback.Complete()
			c.guard.Disarm()
			return
		}
		if primary.Push(p.Elem) != nil {
			c.emit = p.Elem
			c.hasEmit = true
		}
		c.pending = p.State
		c.hasPending = true
		c.inFlight = false
		c.requested = false
	}

	if c.guard.Expired(now) && !c.j.inbound.Done() {
		primary.Fail(&StuckStageError{Serial: c.serial, Grace: c.guard.grace})
		c.j.inbound.Cancel()
		c.state = loopFailed
	}
}
