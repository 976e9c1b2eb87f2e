// Package delivery defines a common contract for the transport servers the
// application can expose.
package delivery

import "context"

// Delivery is a long-running transport server, started by main and stopped
// through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
