package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/logger"
	"github.com/akoimeexx/apache2-vhost/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	httpdRoot  string
	configFile string
	version    = "dev"
)

const usageLine = "Usage: apache2-vhost <command> [<host>] [-dopV], apache2-vhost [--help] [--version]"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "apache2-vhost",
	Short: "Apache2 virtual host configuration manager",
	Long: `apache2-vhost creates, enables, disables and deletes Apache2 virtual hosts.

A vhost for <host> is a config file HTTPD_ROOT/sites-available/<host>.vhost.conf
and a symbolic link to it in HTTPD_ROOT/sites-enabled/. HTTPD_ROOT is taken from
--httpd-root, the config file, or "apache2 -V", in that order.

The single-letter actions of earlier releases are still accepted as the first
argument: -a/--add, -s/--link, -l/--list, -r/--remove, -p/--purge.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.Usage("no action specified")
	},
}

// Execute runs the root command with the process arguments and returns the
// exit status.
func Execute() int {
	return run(os.Args[1:])
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetArgs(normalizeArgs(args))
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitOK
	}

	if verbose {
		logger.LogError(err, "command failed")
	}
	output.Error("%s: %v", rootCmd.Name(), err)
	if errors.IsUsage(err) {
		output.PrintErr(usageLine)
	}
	return errors.ExitCode(err)
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	rootCmd.SetVersionTemplate("{{.Name}}: Apache2 vhost configuration manager v{{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Usage(err.Error())
	})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Print messages as each step is performed")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&httpdRoot, "httpd-root", "", "Apache configuration root (default: from apache2 -V)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: /etc/apache2-vhost/config.yaml or ~/.config/apache2-vhost/config.yaml)")
}

// globalFlags exposes the persistent flags config.Load binds to.
func globalFlags() *pflag.FlagSet {
	return rootCmd.PersistentFlags()
}

// commandContext returns the command's context, or a background context
// when the run function is called directly.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
