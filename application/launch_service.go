package application

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/branchwatch/config"
	"github.com/rios0rios0/branchwatch/domain"
)

// ErrNoProjectSelected is returned when no run target name was given and
// the configuration has no default project.
var ErrNoProjectSelected = errors.New("no project selected: pass a name or set default_project")

// LaunchService selects a configured run target and starts it as a
// detached process. Launch failures are surfaced, never retried.
type LaunchService struct {
	launcher domain.Launcher
	cfg      *config.Config
}

// NewLaunchService creates a launch service with the given launcher.
func NewLaunchService(launcher domain.Launcher, cfg *config.Config) *LaunchService {
	return &LaunchService{
		launcher: launcher,
		cfg:      cfg,
	}
}

// Launch starts the run target with the given name (empty selects the
// configured default) and returns its pid.
func (s *LaunchService) Launch(ctx context.Context, name string) (int, error) {
	project, ok := s.cfg.FindProject(name)
	if !ok {
		if name == "" {
			return 0, ErrNoProjectSelected
		}
		return 0, fmt.Errorf("unknown project %q", name)
	}

	run := domain.RunConfig{
		Name:    project.Name,
		Path:    project.Path,
		Args:    project.Args,
		WorkDir: project.WorkDir,
	}

	pid, err := s.launcher.Launch(ctx, run)
	if err != nil {
		return 0, fmt.Errorf("failed to launch %q: %w", project.Name, err)
	}

	logger.Infof("Started %q (pid %d)", project.Name, pid)
	return pid, nil
}
