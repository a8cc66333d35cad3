package domain

// Resolver abstracts a version control system (Git today, others later).
// Each implementation knows how to recognize its own metadata layout and
// how to build a live watcher for a workspace directory.
type Resolver interface {
	// Name returns the resolver identifier (e.g. "git").
	Name() string

	// Probe returns true if the given directory (or one of its parents)
	// belongs to a repository this resolver understands.
	Probe(dir string) bool

	// NewWatcher creates a watcher bound to the repository that contains
	// the given directory. The watcher performs an initial resolution
	// before returning.
	NewWatcher(dir string) (Watcher, error)
}
