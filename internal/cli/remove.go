package cli

import (
	"github.com/spf13/cobra"
)

var removePurge bool

var removeCmd = &cobra.Command{
	Use:     "remove <host>",
	Aliases: []string{"rm", "disable"},
	Short:   "Disable a vhost",
	Long: `Delete the symlink HTTPD_ROOT/sites-enabled/<host>.vhost.conf and unmap
<host> from the hosts file. The config in sites-available is kept unless
--purge is given.

Examples:
  apache2-vhost remove example.com
  apache2-vhost remove example.com --purge`,
	Args: hostArgs,
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removePurge, "purge", "p", false, "Also delete the config file")
	removeCmd.Flags().BoolVar(&noHosts, "no-hosts", false, "Don't edit the hosts file")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	host := args[0]

	if err := validateHost(host); err != nil {
		return err
	}

	s, err := newSession(commandContext(cmd))
	if err != nil {
		return err
	}

	if removePurge {
		return purgeHost(s, host)
	}

	paths, err := s.store.Remove(host)
	if err != nil {
		return err
	}

	hostsState, err := s.unmapHost(host)
	if err != nil {
		return err
	}

	return outputResult(
		newSuccessResult(host, "remove", paths, hostsState),
		"vhost %s disabled", host,
	)
}
