package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/hosts"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

// Config is the effective configuration of one invocation
type Config struct {
	HTTPDRoot    string `mapstructure:"httpd_root" yaml:"httpd_root" json:"httpd_root"`
	Suffix       string `mapstructure:"suffix" yaml:"suffix" json:"suffix" validate:"required,excludesall=/\\"`
	ApacheBinary string `mapstructure:"apache_binary" yaml:"apache_binary" json:"apache_binary"`
	Locate       bool   `mapstructure:"locate" yaml:"locate" json:"locate"`
	HostsFile    string `mapstructure:"hosts_file" yaml:"hosts_file" json:"hosts_file" validate:"required_if=ManageHosts true"`
	HostsAddress string `mapstructure:"hosts_address" yaml:"hosts_address" json:"hosts_address" validate:"required_if=ManageHosts true,omitempty,ip"`
	ManageHosts  bool   `mapstructure:"manage_hosts" yaml:"manage_hosts" json:"manage_hosts"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-" json:"file,omitempty"`
}

// EnvPrefix prefixes every environment override (APACHE2_VHOST_HTTPD_ROOT, ...)
const EnvPrefix = "APACHE2_VHOST"

// configDir is the per-user config directory, relative to $HOME
const configDir = ".config/apache2-vhost"
const configName = "config"
const configFile = configName + ".yaml"

// systemDir is searched before the per-user directory
var systemDir = "/etc/apache2-vhost"

// flagKeys maps command-line flags onto config keys
var flagKeys = map[string]string{
	"httpd-root": "httpd_root",
}

var validate = validator.New()

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Suffix:       vhost.DefaultSuffix,
		Locate:       true,
		HostsFile:    hosts.DefaultPath,
		HostsAddress: hosts.DefaultAddress,
		ManageHosts:  true,
	}
}

// ConfigDir returns the per-user config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the per-user config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Options selects the sources Load layers over the defaults.
type Options struct {
	// File is an explicit config file; it must exist.
	File string
	// Flags, when set, override every other source for the flags they define.
	Flags *pflag.FlagSet
}

// Load builds the configuration: defaults, then the config file, then
// APACHE2_VHOST_* environment variables, then changed flags.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v, New())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(systemDir)
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(errors.ErrCodeConfig, "failed to read config", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInternal, "failed to bind flag "+name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to parse config", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("httpd_root", cfg.HTTPDRoot)
	v.SetDefault("suffix", cfg.Suffix)
	v.SetDefault("apache_binary", cfg.ApacheBinary)
	v.SetDefault("locate", cfg.Locate)
	v.SetDefault("hosts_file", cfg.HostsFile)
	v.SetDefault("hosts_address", cfg.HostsAddress)
	v.SetDefault("manage_hosts", cfg.ManageHosts)
}

// Validate checks the field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "invalid configuration", err)
	}
	return nil
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "failed to create config directory", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "failed to write config", err)
	}
	return nil
}
