// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unfold

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing source identifier.
// Each call to Assemble or New assigns the next serial value.
// Serials appear in diagnostics such as [StuckStageError].
type Serial = uint32

// counter is the global monotonic counter for source serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
