package queue

import "context"

// Job processes one message type from the queue.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Type is the message type this job consumes.
	Type() string

	// Handle processes a payload. A returned error triggers the retry
	// schedule; context.Canceled aborts without retrying.
	Handle(ctx context.Context, payload interface{}) error
}
