package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/branchwatch/infrastructure/vcs/git"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var doctorCmd = &cobra.Command{
	Use:   "doctor [directory]",
	Short: "Cross-check branch resolution against go-git",
	Long: `Resolve the checked-out branch twice: with the file-based
resolver and through go-git, and report both. Useful when a repository
renders an unexpected name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, args []string) error {
	dir := workDirArg(args)

	resolved, reference, err := git.CrossCheck(dir)
	if err != nil {
		return err
	}

	fmt.Printf("resolved name: %s\n", resolved)
	fmt.Printf("go-git HEAD:   %s\n", reference)
	if resolved == reference {
		fmt.Println("resolutions agree")
	} else {
		fmt.Println("resolutions differ (expected for detached HEADs and packed-only refs)")
	}
	return nil
}
