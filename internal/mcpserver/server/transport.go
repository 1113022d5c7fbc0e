package server

import "context"

// Transport carries protocol messages between assistants and the shared
// dispatch core. Exactly one transport runs per server instance; Run blocks
// until the transport finishes or ctx is cancelled. Cancellation is a clean
// shutdown, not an error.
type Transport interface {
	Run(ctx context.Context) error
}
