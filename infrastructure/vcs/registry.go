package vcs

import (
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/branchwatch/domain"
)

// Registry holds the known VCS resolvers in a fixed probe order. Resolvers
// are registered statically at startup; there is no runtime discovery.
type Registry struct {
	resolvers []domain.Resolver
}

// NewRegistry creates an empty resolver registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a resolver. Probe order is registration order.
func (r *Registry) Register(res domain.Resolver) {
	r.resolvers = append(r.resolvers, res)
}

// Names returns the registered resolver names in probe order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resolvers))
	for _, res := range r.resolvers {
		names = append(names, res.Name())
	}
	return names
}

// WatcherFor probes each resolver in registration order and builds a
// watcher with the first one that recognizes the directory.
func (r *Registry) WatcherFor(dir string) (domain.Watcher, error) {
	for _, res := range r.resolvers {
		if !res.Probe(dir) {
			continue
		}
		logger.Debugf("Resolver %q matched %s", res.Name(), dir)
		return res.NewWatcher(dir)
	}
	return nil, fmt.Errorf("no version control system recognized %q", dir)
}
