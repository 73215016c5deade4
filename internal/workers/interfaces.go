// Package workers runs the long-lived background loops of the client.
// It defines the Worker interface and a Workers aggregate that starts
// several of them and waits for all to finish.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done or the worker
// has nothing left to do.
//
// Example implementation:
//
//	type ticker struct{}
//
//	func (t *ticker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
