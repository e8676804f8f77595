// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCanceled reports an operation on a port whose downstream side
	// has canceled.
	ErrCanceled = errors.New("unfold: port canceled")

	// ErrClosed reports a send on an outlet that has already completed
	// or failed.
	ErrClosed = errors.New("unfold: port closed")
)

// StuckStageError is the failure raised when a stage cancels its state input
// while leaving its pair output open past the grace period. It is the only
// failure synthesized by this package; every other failure is forwarded from
// the stage unchanged.
type StuckStageError struct {
	Serial Serial
	Grace  time.Duration
}

func (e *StuckStageError) Error() string {
	return fmt.Sprintf(
		"unfold: source %d: stage canceled its state input but kept its pair output open past the %v grace period",
		e.Serial, e.Grace,
	)
}
