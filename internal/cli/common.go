package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/akoimeexx/apache2-vhost/internal/config"
	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/logger"
	"github.com/akoimeexx/apache2-vhost/internal/output"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

var validate = validator.New()

// noHosts is shared by every command that edits the hosts file.
var noHosts bool

// Hosts file outcomes reported in results.
const (
	hostsAdded     = "added"
	hostsRemoved   = "removed"
	hostsUnchanged = "unchanged"
	hostsSkipped   = "skipped"
)

// session is the state one command works with, built once per invocation.
type session struct {
	cfg   *config.Config
	root  string
	store vhost.Store
	// hosts is nil when the hosts file is not managed.
	hosts HostsEditor
}

// newSession loads the configuration, resolves the root and opens the store.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	root, err := resolveRoot(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:   cfg,
		root:  root,
		store: deps.StoreFactory.Create(root, cfg.Suffix),
	}
	if cfg.ManageHosts && !noHosts {
		s.hosts = deps.HostsFactory.Open(cfg.HostsFile)
	}
	return s, nil
}

func loadConfig() (*config.Config, error) {
	return deps.ConfigLoader.Load(config.Options{File: configFile, Flags: globalFlags()})
}

// resolveRoot picks the configuration root: explicit setting, then the
// web server binary, then the platform default. The root is always absolute
// so symlink targets built from it resolve from sites-enabled.
func resolveRoot(ctx context.Context, cfg *config.Config) (string, error) {
	var root, source string
	switch {
	case cfg.HTTPDRoot != "":
		root, source = cfg.HTTPDRoot, "config"
	case !cfg.Locate:
		root, source = deps.RootLocator.Default(), "default"
	default:
		result, err := deps.RootLocator.Locate(ctx, cfg.ApacheBinary)
		if err != nil {
			return "", err
		}
		root, source = result.Root, string(result.Source)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "unable to resolve root "+root, err)
	}
	logger.InfoFields("resolved root", map[string]interface{}{
		"root":   abs,
		"source": source,
	})
	return abs, nil
}

// mapHost adds the host to the hosts file
func (s *session) mapHost(host string) (string, error) {
	if s.hosts == nil {
		return hostsSkipped, nil
	}
	addr := s.cfg.HostsAddress
	added, err := s.hosts.Add(host, addr)
	if err != nil {
		return "", errors.Hosts(s.hosts.Path(), err)
	}
	if !added {
		output.Warn("%s is already assigned to %s in %s", host, addr, s.hosts.Path())
		return hostsUnchanged, nil
	}
	logger.Debug("mapped %s to %s in %s", host, addr, s.hosts.Path())
	return hostsAdded, nil
}

// unmapHost removes the host from the hosts file
func (s *session) unmapHost(host string) (string, error) {
	if s.hosts == nil {
		return hostsSkipped, nil
	}
	n, err := s.hosts.Remove(host)
	if err != nil {
		return "", errors.Hosts(s.hosts.Path(), err)
	}
	if n == 0 {
		logger.Debug("%s not found in %s", host, s.hosts.Path())
		return hostsUnchanged, nil
	}
	logger.Debug("removed %s from %d line(s) of %s", host, n, s.hosts.Path())
	return hostsRemoved, nil
}

// hostArgs requires exactly one host name argument
func hostArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.Usagef("%s requires exactly one host name", cmd.Name())
	}
	return nil
}

// validateHost checks that host is a valid RFC 1123 host name
func validateHost(host string) error {
	if host == "" {
		return errors.Usage("host name cannot be empty")
	}
	if err := validate.Var(host, "hostname_rfc1123"); err != nil {
		return errors.Usagef("invalid host name %q", host)
	}
	return nil
}

// documentRoot returns dir as an absolute path, or the working directory
func documentRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, "unable to get current working directory", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "unable to resolve directory "+dir, err)
	}
	return abs, nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success   bool   `json:"success"`
	Host      string `json:"host"`
	Action    string `json:"action"`
	Available string `json:"available,omitempty"`
	Enabled   string `json:"enabled,omitempty"`
	Hosts     string `json:"hosts,omitempty"`
}

// newSuccessResult creates a success result
func newSuccessResult(host, action string, paths vhost.Paths, hostsState string) CommandResult {
	return CommandResult{
		Success:   true,
		Host:      host,
		Action:    action,
		Available: paths.Available,
		Enabled:   paths.Enabled,
		Hosts:     hostsState,
	}
}
