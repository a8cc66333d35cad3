package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/branchwatch/application"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a workspace and mirror its branch into the title sink",
	Long: `Watch the repository containing the given directory (default: the
current directory) and keep the display sink in sync with the checked-out
branch. Runs until interrupted; checkouts, new branches and detached HEADs
are picked up live.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, args []string) error {
	dir := workDirArg(args)

	container, err := buildContainer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return container.Invoke(func(svc *application.WatchService) error {
		return svc.Run(ctx, dir)
	})
}
