// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import "time"

// Source is a single-output stream of values unfolded from a seed state by
// an external stage. The loop wiring and the inbound inlet are internal;
// downstream it behaves like any ordinary demand-driven source.
//
// A Source is driven cooperatively: the goroutine that owns it calls Poll
// to make progress and receives values over the inlet returned by Open.
// Drain, Take, Fold and Each wrap that loop.
type Source[S, E any] struct {
	coord  coordinator[S, E]
	stage  Stage[S, E]
	serial Serial
	opened bool
}

// Assemble builds a Source from a seed state, a port-level stage, and the
// grace period for the stuck-close watchdog. The stage's input is wired to
// the loop's feedback outlet and its output to the inbound inlet.
//
// grace bounds how long a stage may keep its pair output open after
// canceling its state input before the source fails with [StuckStageError];
// it must be positive. There is no default.
func Assemble[S, E any](seed S, stage Stage[S, E], grace time.Duration) *Source[S, E] {
	if stage == nil {
		panic("unfold: nil stage")
	}
	if grace <= 0 {
		panic("unfold: grace period must be positive")
	}
	src := &Source[S, E]{stage: stage, serial: nextSerial()}
	src.coord = coordinator[S, E]{
		j:          newJunction[S, E](),
		serial:     src.serial,
		pending:    seed,
		hasPending: true,
		guard:      guard{grace: grace},
	}
	return src
}

// New builds a Source from a seed state and a step function, adapted with
// [StepStage]. See [Assemble] for the grace period.
func New[S, E any](seed S, step func(S) Result[S, E], grace time.Duration) *Source[S, E] {
	if step == nil {
		panic("unfold: nil step")
	}
	return Assemble(seed, StepStage(step), grace)
}

// Open connects the downstream consumer and returns its inlet. A source
// has exactly one consumer; calling Open twice panics.
func (s *Source[S, E]) Open() *Inlet[E] {
	if s.opened {
		panic("unfold: source already opened")
	}
	s.opened = true
	out, in := Wire[E]()
	s.coord.j.primary = out
	return in
}

// Poll runs one cooperative pass: the coordinator handles its ready port
// events run-to-completion, then the stage is polled once. Non-blocking;
// callers retry when the consumer inlet reports iox.ErrWouldBlock.
func (s *Source[S, E]) Poll() {
	if !s.opened {
		panic("unfold: source not opened")
	}
	s.coord.poll(time.Now())
	s.stage.Poll(s.coord.j.stageIn, s.coord.j.stageOut)
}

// Serial returns the serial number assigned to this source.
func (s *Source[S, E]) Serial() Serial {
	return s.serial
}
