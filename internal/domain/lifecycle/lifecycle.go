// Package lifecycle holds shared constants for application start and
// shutdown handling.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown.
const DefaultTimeout = 10 * time.Second
