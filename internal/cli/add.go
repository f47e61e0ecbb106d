package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/logger"
	"github.com/akoimeexx/apache2-vhost/internal/output"
	"github.com/akoimeexx/apache2-vhost/internal/template"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

var (
	addDirectory string
	addOutput    string
)

var addCmd = &cobra.Command{
	Use:   "add <host>",
	Short: "Create a vhost config and enable it",
	Long: `Create HTTPD_ROOT/sites-available/<host>.vhost.conf from the vhost template,
symlink it into HTTPD_ROOT/sites-enabled/ and map <host> in the hosts file.

An existing config is never overwritten. If the symlink cannot be created the
new config is removed again.

Examples:
  apache2-vhost add example.com
  apache2-vhost add example.com -d /var/www/example
  apache2-vhost add example.com -o /tmp/example.conf
  apache2-vhost add example.com -o -     # print the config, change nothing`,
	Args: hostArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDirectory, "directory", "d", "", "Document root (default: current directory)")
	addCmd.Flags().StringVarP(&addOutput, "output", "o", "", "Write the config to this path instead, or - for stdout")
	addCmd.Flags().BoolVar(&noHosts, "no-hosts", false, "Don't edit the hosts file")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	host := args[0]

	if err := validateHost(host); err != nil {
		return err
	}

	docRoot, err := documentRoot(addDirectory)
	if err != nil {
		return err
	}

	// Preview mode: render only
	if addOutput == "-" {
		return template.RenderTo(output.Stdout(), docRoot, host)
	}

	var out string
	if addOutput != "" {
		if out, err = filepath.Abs(addOutput); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "unable to resolve output path "+addOutput, err)
		}
	}

	s, err := newSession(commandContext(cmd))
	if err != nil {
		return err
	}

	logger.Debug("document root %s", docRoot)
	paths, err := s.store.Add(vhost.AddRequest{
		Host:         host,
		DocumentRoot: docRoot,
		Output:       out,
	})
	if err != nil {
		return err
	}

	hostsState, err := s.mapHost(host)
	if err != nil {
		return err
	}

	return outputResult(
		newSuccessResult(host, "add", paths, hostsState),
		"vhost %s created and enabled", host,
	)
}
