package domain

// Subscriber receives the new display name after a genuine branch change.
// Callbacks for a single watcher are never invoked concurrently.
type Subscriber func(name string)

// Watcher tracks the checked-out branch of one repository for its lifetime.
// A watcher is created per workspace and never rebound: a different
// workspace means a new watcher instance.
type Watcher interface {
	// Valid reports whether a repository was found at construction.
	// An invalid watcher holds no resources and never notifies.
	Valid() bool

	// DisplayName returns the current resolved branch display name.
	DisplayName() string

	// Subscribe registers a callback invoked whenever the resolved name
	// changes. Subscribing after Close is a no-op.
	Subscribe(fn Subscriber)

	// Close releases the filesystem watch and clears all subscribers.
	// Close is idempotent.
	Close() error
}
