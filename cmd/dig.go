package cmd

import (
	"os"

	"go.uber.org/dig"

	"github.com/rios0rios0/branchwatch/application"
	"github.com/rios0rios0/branchwatch/config"
	"github.com/rios0rios0/branchwatch/domain"
	"github.com/rios0rios0/branchwatch/infrastructure/launcher"
	"github.com/rios0rios0/branchwatch/infrastructure/title"
	"github.com/rios0rios0/branchwatch/infrastructure/vcs"
	"github.com/rios0rios0/branchwatch/infrastructure/vcs/git"
)

// buildContainer wires the application object graph for one command run.
func buildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []interface{}{
		loadConfig,
		newRegistry,
		newSink,
		newLauncher,
		application.NewWatchService,
		application.NewLaunchService,
	}
	for _, provide := range providers {
		if err := container.Provide(provide); err != nil {
			return nil, err
		}
	}

	return container, nil
}

// newRegistry registers the known VCS resolvers. Probe order is
// registration order; further resolvers go here.
func newRegistry() *vcs.Registry {
	registry := vcs.NewRegistry()
	registry.Register(git.NewResolver())
	return registry
}

// newSink builds the configured title sink writing to stdout.
func newSink(cfg *config.Config) (domain.TitleSink, error) {
	return title.NewSink(cfg.Title, os.Stdout)
}

func newLauncher() domain.Launcher {
	return launcher.NewExecLauncher()
}
