package cli

import (
	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Long: `Print the version and exit. Same as --version.

Examples:
  apache2-vhost version
  apache2-vhost version --json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// VersionInfo is the JSON form of the version command.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func runVersion(cmd *cobra.Command, args []string) error {
	if jsonOutput {
		return output.JSON(VersionInfo{Name: rootCmd.Name(), Version: rootCmd.Version})
	}
	output.Print("%s: Apache2 vhost configuration manager v%s", rootCmd.Name(), rootCmd.Version)
	return nil
}
