// Package workers provides the background workers of the blog server and a
// Workers aggregate that runs them together.
package workers

import "context"

// Worker is a background task. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
