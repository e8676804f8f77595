// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/unfold"
)

// recordingStage consumes tokens without ever answering and records what
// it observes on its input end.
type recordingStage struct {
	pulled    bool
	tokens    int
	inputDone bool
}

func (s *recordingStage) Poll(in *unfold.Inlet[int], out *unfold.Outlet[unfold.Pair[int, int]]) {
	out.Poll()
	if s.inputDone {
		return
	}
	if !s.pulled {
		in.Pull()
		s.pulled = true
	}
	_, err := in.TryRecv()
	if err == nil {
		s.tokens++
		s.pulled = false
		return
	}
	if errors.Is(err, iox.ErrWouldBlock) {
		return
	}
	// input end closed: loop tore down, close the output with it
	s.inputDone = true
	out.Complete()
}

func TestDownstreamCancelBeforeAnyRoundTrip(t *testing.T) {
	skipRace(t)
	s := &recordingStage{}
	src := unfold.Assemble(0, s, time.Second)
	in := src.Open()
	in.Cancel()
	pollN(src, 64)

	if !s.inputDone {
		t.Fatal("stage input not closed after downstream cancel")
	}
	if s.tokens != 0 {
		t.Fatalf("stage received %d tokens, want 0", s.tokens)
	}
}

func TestDownstreamCancelMidFlight(t *testing.T) {
	skipRace(t)
	s := &recordingStage{}
	src := unfold.Assemble(0, s, time.Second)
	in := src.Open()
	in.Pull()
	// wait for the single token to enter the stage
	var bo iox.Backoff
	for s.tokens == 0 {
		src.Poll()
		bo.Wait()
	}

	in.Cancel()
	pollN(src, 64)
	if !s.inputDone {
		t.Fatal("stage input not closed after downstream cancel")
	}
	// the one abandoned in-flight token, nothing more
	if s.tokens != 1 {
		t.Fatalf("stage received %d tokens, want 1", s.tokens)
	}
}
