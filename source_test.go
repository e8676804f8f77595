// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold_test

import (
	"errors"
	"io"
	"reflect"
	"strconv"
	"testing"
	"time"

	"code.hybscloud.com/unfold"
)

func TestUnfoldStringify(t *testing.T) {
	skipRace(t)
	// seed 0, n → (n+1, itoa(n)) for n<3, end at n==3
	calls := 0
	src := unfold.New(0, func(n int) unfold.Result[int, string] {
		calls++
		if n < 3 {
			return unfold.Continue(n+1, strconv.Itoa(n))
		}
		return unfold.End[int, string]()
	}, time.Second)

	got, err := unfold.Drain(src)
	if err != nil {
		t.Fatalf("Drain error: %v", err)
	}
	want := []string{"0", "1", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Drain got %v, want %v", got, want)
	}
	// three pairs plus the token answered with End
	if calls != 4 {
		t.Fatalf("step calls got %d, want 4", calls)
	}
}

func TestTerminationOnEndIgnoresExtraDemand(t *testing.T) {
	skipRace(t)
	calls := 0
	src := unfold.New(0, func(n int) unfold.Result[int, string] {
		calls++
		if n < 3 {
			return unfold.Continue(n+1, strconv.Itoa(n))
		}
		return unfold.End[int, string]()
	}, time.Second)

	in := src.Open()
	for range 10 {
		in.Pull()
	}
	var got []string
	for {
		v, err := recvOne(src, in)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("recv error: %v", err)
		}
		got = append(got, v)
	}
	if !reflect.DeepEqual(got, []string{"0", "1", "2"}) {
		t.Fatalf("got %v, want [0 1 2]", got)
	}
	if calls != 4 {
		t.Fatalf("step calls got %d, want 4", calls)
	}
}

func TestTerminationOnFailure(t *testing.T) {
	skipRace(t)
	errBoom := errors.New("boom")
	src := unfold.New(0, func(n int) unfold.Result[int, int] {
		if n < 2 {
			return unfold.Continue(n+1, n)
		}
		return unfold.Fail[int, int](errBoom)
	}, time.Second)

	got, err := unfold.Drain(src)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Drain error got %v, want %v", err, errBoom)
	}
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("Drain got %v, want [0 1]", got)
	}
}

func TestOrderPreservation(t *testing.T) {
	skipRace(t)
	payload := []int{7, 3, 3, 9, 0, -4, 12}
	src := unfold.New(0, func(i int) unfold.Result[int, int] {
		if i < len(payload) {
			return unfold.Continue(i+1, payload[i])
		}
		return unfold.End[int, int]()
	}, time.Second)

	got, err := unfold.Drain(src)
	if err != nil {
		t.Fatalf("Drain error: %v", err)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("Drain got %v, want %v", got, payload)
	}
}

func TestTakeStopsInfiniteLoop(t *testing.T) {
	skipRace(t)
	src := unfold.New(0, func(n int) unfold.Result[int, int] {
		return unfold.Continue(n+1, n)
	}, time.Second)

	got, err := unfold.Take(src, 5)
	if err != nil {
		t.Fatalf("Take error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("Take got %v, want [0 1 2 3 4]", got)
	}
}

func TestOpenTwicePanics(t *testing.T) {
	src := unfold.New(0, func(n int) unfold.Result[int, int] {
		return unfold.End[int, int]()
	}, time.Second)
	src.Open()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second Open")
		}
	}()
	src.Open()
}

func TestNonPositiveGracePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero grace period")
		}
	}()
	unfold.New(0, func(n int) unfold.Result[int, int] {
		return unfold.End[int, int]()
	}, 0)
}
