package cli

import (
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:     "link <host>",
	Aliases: []string{"enable"},
	Short:   "Enable an existing vhost config",
	Long: `Symlink HTTPD_ROOT/sites-available/<host>.vhost.conf into
HTTPD_ROOT/sites-enabled/ and map <host> in the hosts file.

An existing entry in sites-enabled is never replaced.

Examples:
  apache2-vhost link example.com
  apache2-vhost -s example.com`,
	Args: hostArgs,
	RunE: runLink,
}

func init() {
	linkCmd.Flags().BoolVar(&noHosts, "no-hosts", false, "Don't edit the hosts file")

	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	host := args[0]

	if err := validateHost(host); err != nil {
		return err
	}

	s, err := newSession(commandContext(cmd))
	if err != nil {
		return err
	}

	paths, err := s.store.Link(host)
	if err != nil {
		return err
	}

	hostsState, err := s.mapHost(host)
	if err != nil {
		return err
	}

	return outputResult(
		newSuccessResult(host, "link", paths, hostsState),
		"vhost %s enabled", host,
	)
}
