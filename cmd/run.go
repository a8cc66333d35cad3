package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/branchwatch/application"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var runCmd = &cobra.Command{
	Use:   "run [project]",
	Short: "Launch a configured run target as a detached process",
	Long: `Start the executable of a configured run target without waiting
for it and without attaching anything. With no argument the configured
default_project is launched; without a default the command aborts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLaunch,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(runCmd)
}

func runLaunch(_ *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	container, err := buildContainer()
	if err != nil {
		return err
	}

	return container.Invoke(func(svc *application.LaunchService) error {
		_, launchErr := svc.Launch(context.Background(), name)
		return launchErr
	})
}
