package cli

import (
	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <host>",
	Short: "Delete a vhost config and its symlink",
	Long: `Delete HTTPD_ROOT/sites-available/<host>.vhost.conf, then its symlink in
sites-enabled, then unmap <host> from the hosts file.

A missing config is an error. A missing symlink is also an error, reported
after the config has been deleted.

Examples:
  apache2-vhost purge example.com
  apache2-vhost -p example.com`,
	Args: hostArgs,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVar(&noHosts, "no-hosts", false, "Don't edit the hosts file")

	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	host := args[0]

	if err := validateHost(host); err != nil {
		return err
	}

	s, err := newSession(commandContext(cmd))
	if err != nil {
		return err
	}

	return purgeHost(s, host)
}

// purgeHost removes both artifacts and the hosts mapping
func purgeHost(s *session, host string) error {
	paths, err := s.store.Purge(host)
	if err != nil {
		return err
	}

	hostsState, err := s.unmapHost(host)
	if err != nil {
		return err
	}

	res := newSuccessResult(host, "purge", paths, hostsState)
	return outputResult(res, "vhost %s purged", host)
}
