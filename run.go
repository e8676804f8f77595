// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import (
	"errors"
	"io"

	"code.hybscloud.com/iox"
)

// Drain opens the source and drives it to completion on the calling
// goroutine, collecting every emitted value. Returns the values and nil
// when the stage ends the sequence, or the values emitted so far and the
// terminal error when it fails. Waits past iox.ErrWouldBlock with adaptive
// backoff (iox.Backoff), without spawning goroutines or creating channels.
func Drain[S, E any](src *Source[S, E]) ([]E, error) {
	return drive(src, src.Open(), -1)
}

// Take opens the source, drives it until n values have been emitted, then
// cancels downstream and returns them. Returns fewer than n values when
// the stage ends or fails first, with the error in the failure case.
func Take[S, E any](src *Source[S, E], n int) ([]E, error) {
	in := src.Open()
	if n <= 0 {
		in.Cancel()
		src.Poll()
		return nil, nil
	}
	return drive(src, in, n)
}

func drive[S, E any](src *Source[S, E], in *Inlet[E], n int) ([]E, error) {
	var out []E
	var bo iox.Backoff
	in.Pull()
	for {
		src.Poll()
		v, err := in.TryRecv()
		if err == nil {
			out = append(out, v)
			bo.Reset()
			if n >= 0 && len(out) == n {
				in.Cancel()
				src.Poll()
				return out, nil
			}
			in.Pull()
			continue
		}
		if errors.Is(err, iox.ErrWouldBlock) {
			bo.Wait()
			continue
		}
		if err == io.EOF {
			return out, nil
		}
		return out, err
	}
}
