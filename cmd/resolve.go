package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/branchwatch/infrastructure/vcs"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var resolveCmd = &cobra.Command{
	Use:   "resolve [directory]",
	Short: "Print the resolved branch display name once",
	Long: `Resolve the checked-out branch of the repository containing the
given directory (default: the current directory) and print it. Detached
HEADs are resolved through packed-refs and loose refs; an unresolvable
commit prints as a truncated hash.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(_ *cobra.Command, args []string) error {
	dir := workDirArg(args)

	container, err := buildContainer()
	if err != nil {
		return err
	}

	return container.Invoke(func(registry *vcs.Registry) error {
		watcher, watchErr := registry.WatcherFor(dir)
		if watchErr != nil {
			return watchErr
		}
		defer func() { _ = watcher.Close() }()

		fmt.Println(watcher.DisplayName())
		return nil
	})
}
