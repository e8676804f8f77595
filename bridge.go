// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import (
	"errors"
	"io"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Fold opens the source and drives it to completion, folding every emitted
// value into an accumulator. Returns Right(acc) when the stage ends the
// sequence and Left(err) when it fails, following kont's error-world
// convention. Waits past iox.ErrWouldBlock with adaptive backoff, without
// spawning goroutines or creating channels.
func Fold[S, E, A any](src *Source[S, E], init A, f func(A, E) A) kont.Either[error, A] {
	acc := init
	in := src.Open()
	var bo iox.Backoff
	in.Pull()
	for {
		src.Poll()
		v, err := in.TryRecv()
		if err == nil {
			acc = f(acc, v)
			bo.Reset()
			in.Pull()
			continue
		}
		if errors.Is(err, iox.ErrWouldBlock) {
			bo.Wait()
			continue
		}
		if err == io.EOF {
			return kont.Right[error, A](acc)
		}
		return kont.Left[error, A](err)
	}
}

// Each opens the source and drives it to completion, applying f to every
// emitted value in round-trip order. Returns Right on graceful end and
// Left(err) on stage failure.
func Each[S, E any](src *Source[S, E], f func(E)) kont.Either[error, struct{}] {
	return Fold(src, struct{}{}, func(u struct{}, v E) struct{} {
		f(v)
		return u
	})
}
