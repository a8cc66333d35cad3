package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/branchwatch/domain"
)

// ErrExecutableNotFound is returned when a run target's executable does
// not exist on disk.
var ErrExecutableNotFound = errors.New("executable does not exist")

// ExecLauncher starts run targets as detached child processes via os/exec.
// The child is not tied to the launcher's context: ctx only gates the
// start itself.
type ExecLauncher struct{}

var _ domain.Launcher = (*ExecLauncher)(nil)

// NewExecLauncher creates the process launcher.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

// Launch verifies the executable exists, starts it without waiting and
// releases the process handle. Returns the child pid.
func (l *ExecLauncher) Launch(ctx context.Context, cfg domain.RunConfig) (int, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return 0, fmt.Errorf("invalid executable path %q: %w", cfg.Path, err)
	}

	info, statErr := os.Stat(path)
	if statErr != nil || info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrExecutableNotFound, path)
	}

	cmd := exec.Command(path, cfg.Args...)
	cmd.Dir = cfg.WorkDir

	if startErr := cmd.Start(); startErr != nil {
		return 0, fmt.Errorf("failed to start %s: %w", path, startErr)
	}

	pid := cmd.Process.Pid
	if releaseErr := cmd.Process.Release(); releaseErr != nil {
		logger.Warnf("Failed to release process handle for pid %d: %v", pid, releaseErr)
	}

	logger.Debugf("Started %s (pid %d)", path, pid)
	return pid, nil
}
