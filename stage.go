// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import (
	"errors"

	"code.hybscloud.com/iox"
)

// Stage is an external processing stage wired between the loop's feedback
// outlet and inbound inlet: it consumes state tokens from in and produces
// round-trip pairs on out, or completes out to end the sequence, or fails
// out to abort it.
//
// Poll is invoked from [Source.Poll] and must not block; port operations
// return iox.ErrWouldBlock at the I/O boundary and are retried on later
// passes. A stage may run parallel work internally but must touch its two
// ports only from Poll.
type Stage[S, E any] interface {
	Poll(in *Inlet[S], out *Outlet[Pair[S, E]])
}

// StepStage adapts a step function into a well-behaved [Stage]: it accepts
// one state token at a time, answers each token with exactly one pair or a
// terminal, and closes both of its ends together on End and Fail.
func StepStage[S, E any](step func(S) Result[S, E]) Stage[S, E] {
	return &stepStage[S, E]{step: step}
}

type stepStage[S, E any] struct {
	step   func(S) Result[S, E]
	slot   Pair[S, E]
	hasOut bool
	pulled bool
	done   bool
}

func (f *stepStage[S, E]) Poll(in *Inlet[S], out *Outlet[Pair[S, E]]) {
	// keep flushing a recorded terminal even after done
	out.Poll()
	in.Poll()
	if f.done {
		return
	}
	if out.Canceled() {
		in.Cancel()
		f.done = true
		return
	}
	if f.hasOut {
		if out.Push(f.slot) != nil {
			return
		}
		f.hasOut = false
	}
	if !f.pulled {
		in.Pull()
		f.pulled = true
	}
	s, err := in.TryRecv()
	if err != nil {
		if errors.Is(err, iox.ErrWouldBlock) {
			return
		}
		// input end closed: the loop tore down, close the output with it
		out.Complete()
		f.done = true
		return
	}
	f.pulled = false
	r := f.step(s)
	if next, elem, ok := r.Continued(); ok {
		f.slot = Pair[S, E]{State: next, Elem: elem}
		if out.Push(f.slot) != nil {
			f.hasOut = true
		}
		return
	}
	if ferr, ok := r.Failed(); ok {
		out.Fail(ferr)
		in.Cancel()
		f.done = true
		return
	}
	out.Complete()
	in.Cancel()
	f.done = true
}
