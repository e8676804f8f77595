// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

// junction bundles the three operator-side ports of the unfold loop and
// the stage-side ends of its two inner wires. The feedback outlet carries
// state tokens into the stage, the inbound inlet carries round-trip pairs
// back, and the primary outlet carries emitted values to the downstream
// consumer. The cycle is an ordinary external connection between the
// stage's two ends; no port references another port.
type junction[S, E any] struct {
	feedback *Outlet[S]          // coordinator → stage input
	stageIn  *Inlet[S]           // stage end of the feedback wire
	stageOut *Outlet[Pair[S, E]] // stage end of the inbound wire
	inbound  *Inlet[Pair[S, E]]  // stage output → coordinator
	primary  *Outlet[E]          // coordinator → consumer, set by Open
}

func newJunction[S, E any]() *junction[S, E] {
	j := &junction[S, E]{}
	j.feedback, j.stageIn = Wire[S]()
	j.stageOut, j.inbound = Wire[Pair[S, E]]()
	return j
}
