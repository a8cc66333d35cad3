package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/branchwatch/config"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	configPath string
	verbose    bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "branchwatch",
	Short: "Mirror the checked-out Git branch into your terminal title",
	Long: `A small tool that resolves the checked-out branch of a workspace
and keeps it visible while you work.

It reads the repository's HEAD directly (symbolic refs, packed-refs and
loose refs), tracks checkouts live through a filesystem watch, and splices
the branch name into a configurable display sink: the terminal title, a
status file for tmux/prompt integrations, or plain output.

It can also launch a workspace's configured run target as a detached
process, without attaching anything to it.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

// loadConfig loads the file given by --config, falling back to
// auto-detection and finally to built-in defaults when no file exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			logger.Debug("No config file found, using defaults")
			return config.Default(), nil
		}
		path = found
	}

	logger.Infof("Using config file: %s", path)
	return config.Load(path)
}

// workDirArg extracts the optional workspace directory argument.
func workDirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
