package application

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/branchwatch/config"
	"github.com/rios0rios0/branchwatch/domain"
	"github.com/rios0rios0/branchwatch/infrastructure/title"
	"github.com/rios0rios0/branchwatch/infrastructure/vcs"
)

// WatchService runs one watch session: it binds a watcher to the workspace
// through the resolver registry and mirrors every branch change into the
// configured title sink. A session is scoped to a single workspace; a
// different workspace means a fresh session with a fresh watcher.
type WatchService struct {
	registry *vcs.Registry
	sink     domain.TitleSink
	cfg      *config.Config
}

// NewWatchService creates a watch service with the given collaborators.
func NewWatchService(
	registry *vcs.Registry,
	sink domain.TitleSink,
	cfg *config.Config,
) *WatchService {
	return &WatchService{
		registry: registry,
		sink:     sink,
		cfg:      cfg,
	}
}

// Run watches workDir until ctx is cancelled, then disposes the watcher
// and restores the base title.
func (s *WatchService) Run(ctx context.Context, workDir string) error {
	watcher, err := s.registry.WatcherFor(workDir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Warnf("Failed to close watcher: %v", closeErr)
		}
	}()

	base := s.baseTitle(workDir)
	formatter := title.NewFormatter(s.cfg.Title.Placement, s.cfg.Title.Separator)

	publish := func(name string) {
		text := formatter.Splice(base, name)
		if sinkErr := s.sink.Set(text); sinkErr != nil {
			logger.Errorf("Failed to update title: %v", sinkErr)
		}
	}

	publish(watcher.DisplayName())
	watcher.Subscribe(publish)

	logger.Infof("Watching %s (current branch: %s)", workDir, watcher.DisplayName())
	<-ctx.Done()

	if restoreErr := s.sink.Set(base); restoreErr != nil {
		logger.Debugf("Failed to restore title: %v", restoreErr)
	}
	return nil
}

// baseTitle returns the configured base title, defaulting to the
// workspace directory name.
func (s *WatchService) baseTitle(workDir string) string {
	if s.cfg.Title.Base != "" {
		return s.cfg.Title.Base
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		return workDir
	}
	return filepath.Base(abs)
}
