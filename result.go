// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

// Pair is one round-trip product: the next state to loop back into the
// stage and the value emitted downstream.
type Pair[S, E any] struct {
	State S
	Elem  E
}

type resultKind uint8

const (
	resultContinue resultKind = iota
	resultEnd
	resultFail
)

// Result is the tagged verdict of one round trip: Continue with a next
// state and emitted value, End to finish the sequence, or Fail to abort it.
// A round trip yields exactly one of the three.
type Result[S, E any] struct {
	kind resultKind
	next S
	elem E
	err  error
}

// Continue produces the next state and an emitted value.
func Continue[S, E any](next S, elem E) Result[S, E] {
	return Result[S, E]{kind: resultContinue, next: next, elem: elem}
}

// End finishes the sequence gracefully.
func End[S, E any]() Result[S, E] {
	return Result[S, E]{kind: resultEnd}
}

// Fail aborts the sequence with err.
func Fail[S, E any](err error) Result[S, E] {
	return Result[S, E]{kind: resultFail, err: err}
}

// Continued returns the next state and emitted value, and whether the
// result is a Continue.
func (r Result[S, E]) Continued() (S, E, bool) {
	return r.next, r.elem, r.kind == resultContinue
}

// Ended reports whether the result is an End.
func (r Result[S, E]) Ended() bool {
	return r.kind == resultEnd
}

// Failed returns the failure error and whether the result is a Fail.
func (r Result[S, E]) Failed() (error, bool) {
	return r.err, r.kind == resultFail
}
