// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package unfold provides a demand-driven stream source generated by feeding
// a state token through an external processing stage and looping the produced
// next state back into the stage.
//
// A [Source] is built from a seed state and a stage that maps one state to a
// (next state, emitted value) pair. Exactly one state token circulates at any
// time, and a token enters the stage only when the downstream consumer has
// outstanding demand, so the loop never runs ahead of actual consumption.
//
// # Architecture
//
//   - Transport: Lock-free bounded SPSC rings via [code.hybscloud.com/lfq].
//     [Wire] creates an [Outlet]/[Inlet] pair; elements flow downstream,
//     coalesced demand and cancellation flow upstream.
//   - Non-blocking: Port operations return [code.hybscloud.com/iox.ErrWouldBlock]
//     at the I/O boundary.
//   - Execution: Cooperative polling. [Source.Poll] runs one run-to-completion
//     pass over the loop coordinator and the stage, making a source easy to
//     integrate with a proactor loop. [Drain], [Take], [Fold] and [Each] drive
//     a source to completion on the calling goroutine using adaptive backoff.
//   - Shutdown: A stage that cancels its state input while leaving its pair
//     output open is failed with [StuckStageError] after a caller-supplied
//     grace period, converting an unbounded hang into a bounded, diagnosable
//     failure.
//
// # Stages
//
// The common case is a step function adapted by [StepStage]: it returns a
// tagged [Result] per token, either [Continue] with the next state and an
// emitted value, [End] to finish the sequence, or [Fail] to abort it.
// Arbitrary stages implement [Stage] directly against the two ports.
//
// # Example
//
//	src := unfold.New(0, func(n int) unfold.Result[int, string] {
//		if n < 3 {
//			return unfold.Continue(n+1, strconv.Itoa(n))
//		}
//		return unfold.End[int, string]()
//	}, time.Second)
//	values, err := unfold.Drain(src) // ["0" "1" "2"], nil
package unfold
