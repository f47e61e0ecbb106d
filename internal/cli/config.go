package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/config"
	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/output"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.Usage("config requires a subcommand (show, init)")
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, config file, environment and flags
have been applied.

Examples:
  apache2-vhost config show
  APACHE2_VHOST_HTTPD_ROOT=/etc/httpd apache2-vhost config show --json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the user config file",
	Long: `Write the default configuration to ~/.config/apache2-vhost/config.yaml,
or to the file given with --config.

Examples:
  apache2-vhost config init
  apache2-vhost config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(cfg)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "", err)
	}
	if cfg.File != "" {
		output.Print("# %s", cfg.File)
	}
	_, err = output.Stdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return errors.Wrap(errors.ErrCodeConfig, "", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.Usagef("%s already exists (use --force to overwrite)", path)
	}

	if err := deps.ConfigLoader.Save(config.New(), path); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"path":    path,
		},
		"Wrote %s", path,
	)
}
