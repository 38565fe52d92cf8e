// Package delivery defines the contract every transport implementation
// (HTTP, workers, ...) satisfies so the composition root can start them
// uniformly.
package delivery

import "context"

// Delivery is a long-running serving unit started by the process entry point.
type Delivery interface {
	Serve(ctx context.Context) error
}
