// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import "time"

// guard is the bounded-wait watchdog for an asymmetric stage close. A
// well-behaved stage closes its state input and its pair output almost
// simultaneously, so a feedback-side cancel alone is not failed eagerly;
// the guard arms a one-shot deadline instead and the coordinator fails the
// source only if the inbound inlet is still open when it expires.
//
// The deadline is polled from the coordinator's pass rather than delivered
// by a timer goroutine, so expiry never mutates loop state concurrently
// with a port event.
type guard struct {
	grace    time.Duration
	deadline time.Time
	armed    bool
}

// Arm starts the grace period at now. One-shot: later calls while armed
// are no-ops.
func (g *guard) Arm(now time.Time) {
	if g.armed {
		return
	}
	g.armed = true
	g.deadline = now.Add(g.grace)
}

// Disarm clears the deadline; the earlier cancel was benign.
func (g *guard) Disarm() {
	g.armed = false
}

// Expired reports whether the armed grace period has elapsed at now.
func (g *guard) Expired(now time.Time) bool {
	return g.armed && !now.Before(g.deadline)
}
