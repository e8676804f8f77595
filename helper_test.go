// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold_test

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/unfold"
)

// recvOne polls src until in yields a value or a terminal, waiting past
// iox.ErrWouldBlock with adaptive backoff. The caller must have pulled.
func recvOne[S, E any](src *unfold.Source[S, E], in *unfold.Inlet[E]) (E, error) {
	var bo iox.Backoff
	for {
		src.Poll()
		v, err := in.TryRecv()
		if err == nil || !errors.Is(err, iox.ErrWouldBlock) {
			return v, err
		}
		bo.Wait()
	}
}

// pollN runs n cooperative passes over src.
func pollN[S, E any](src *unfold.Source[S, E], n int) {
	for range n {
		src.Poll()
	}
}
