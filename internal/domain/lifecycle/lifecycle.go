// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks such as the database ping
// on start and the HTTP server drain on stop.
const DefaultTimeout = 10 * time.Second
