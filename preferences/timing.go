// FILE: lixenwraith/confchain/preferences/timing.go
package preferences

import "time"

// File watching intervals (ordered by frequency)
const (
	MinPollInterval     = 100 * time.Millisecond // Hard floor for file stat polling
	DefaultDebounce     = 500 * time.Millisecond // File change coalescence period
	DefaultPollInterval = time.Second            // Standard file monitoring frequency
)
