package domain

import "context"

// Launcher starts a run target as a detached child process, without waiting
// for it to exit and without any debugger attachment.
type Launcher interface {
	// Launch starts the configured executable and returns its pid.
	// It fails without starting anything if the executable does not exist.
	Launch(ctx context.Context, cfg RunConfig) (int, error)
}
