package cli

import (
	"context"

	"github.com/akoimeexx/apache2-vhost/internal/config"
	"github.com/akoimeexx/apache2-vhost/internal/executor"
	"github.com/akoimeexx/apache2-vhost/internal/hosts"
	"github.com/akoimeexx/apache2-vhost/internal/locator"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader ConfigLoader
	RootLocator  RootLocator
	StoreFactory StoreFactory
	HostsFactory HostsFactory
	Executor     executor.CommandExecutor
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	Load(opts config.Options) (*config.Config, error)
	Save(cfg *config.Config, path string) error
}

// RootLocator discovers the configuration root
type RootLocator interface {
	Locate(ctx context.Context, binary string) (locator.Result, error)
	Default() string
}

// StoreFactory creates vhost stores
type StoreFactory interface {
	Create(root, suffix string) vhost.Store
}

// HostsEditor edits the host-mapping file
type HostsEditor interface {
	Path() string
	Add(host, addr string) (bool, error)
	Remove(host string) (int, error)
	Lookup(host string) ([]string, error)
}

// HostsFactory opens host-mapping files
type HostsFactory interface {
	Open(path string) HostsEditor
}

var sysExec = executor.NewSystemExecutor()

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader: &realConfigLoader{},
	RootLocator:  &realRootLocator{exec: sysExec},
	StoreFactory: &realStoreFactory{},
	HostsFactory: &realHostsFactory{},
	Executor:     sysExec,
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to the packages

type realConfigLoader struct{}

func (r *realConfigLoader) Load(opts config.Options) (*config.Config, error) {
	return config.Load(opts)
}

func (r *realConfigLoader) Save(cfg *config.Config, path string) error {
	return cfg.Save(path)
}

type realRootLocator struct {
	exec executor.CommandExecutor
}

func (r *realRootLocator) Locate(ctx context.Context, binary string) (locator.Result, error) {
	return locator.New(r.exec, binary).Locate(ctx)
}

func (r *realRootLocator) Default() string {
	return locator.DefaultRoot()
}

type realStoreFactory struct{}

func (r *realStoreFactory) Create(root, suffix string) vhost.Store {
	return vhost.NewFileStore(root, suffix)
}

type realHostsFactory struct{}

func (r *realHostsFactory) Open(path string) HostsEditor {
	return hosts.New(path)
}
