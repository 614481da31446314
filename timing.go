// FILE: lixenwraith/typedconfig/timing.go
package typedconfig

import "time"

// File watching timings.
const (
	MinDebounce     = 10 * time.Millisecond  // Hard floor for change coalescence
	DefaultDebounce = 500 * time.Millisecond // File change coalescence period
)
