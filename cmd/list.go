package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/branchwatch/config"
	"github.com/rios0rios0/branchwatch/infrastructure/vcs"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered VCS resolvers and configured run targets",
	RunE:  runList,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	container, err := buildContainer()
	if err != nil {
		return err
	}

	return container.Invoke(func(registry *vcs.Registry, cfg *config.Config) error {
		fmt.Println("Resolvers (probe order):")
		for _, name := range registry.Names() {
			fmt.Printf("  %s\n", name)
		}

		if len(cfg.Projects) == 0 {
			fmt.Println("No run targets configured")
			return nil
		}

		fmt.Println("Run targets:")
		for _, p := range cfg.Projects {
			marker := " "
			if p.Name == cfg.DefaultProject {
				marker = "*"
			}
			fmt.Printf("  %s %s -> %s\n", marker, p.Name, p.Path)
		}
		return nil
	})
}
