package cli

import (
	"context"

	"github.com/akoimeexx/apache2-vhost/internal/config"
	"github.com/akoimeexx/apache2-vhost/internal/executor"
	"github.com/akoimeexx/apache2-vhost/internal/locator"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	LoadCalls []config.Options
	SavePaths []string
}

func (m *MockConfigLoader) Load(opts config.Options) (*config.Config, error) {
	m.LoadCalls = append(m.LoadCalls, opts)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config, path string) error {
	m.SavePaths = append(m.SavePaths, path)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockRootLocator is a test double for RootLocator
type MockRootLocator struct {
	Root        string
	DefaultRoot string
	Err         error
	Binaries    []string
}

func (m *MockRootLocator) Locate(ctx context.Context, binary string) (locator.Result, error) {
	m.Binaries = append(m.Binaries, binary)
	if m.Err != nil {
		return locator.Result{}, m.Err
	}
	return locator.Result{Root: m.Root, Source: locator.SourceBinary}, nil
}

func (m *MockRootLocator) Default() string {
	return m.DefaultRoot
}

// MockStoreFactory is a test double for StoreFactory
type MockStoreFactory struct {
	Store vhost.Store
	Roots []string
}

func (m *MockStoreFactory) Create(root, suffix string) vhost.Store {
	m.Roots = append(m.Roots, root)
	if m.Store != nil {
		return m.Store
	}
	return vhost.NewMockStore(root)
}

// MockHostsEditor is a test double for HostsEditor
type MockHostsEditor struct {
	File      string
	Mapped    map[string]string
	Err       error
	AddCalls  []string
	RemoveErr error
}

func (m *MockHostsEditor) Path() string {
	return m.File
}

func (m *MockHostsEditor) Add(host, addr string) (bool, error) {
	m.AddCalls = append(m.AddCalls, host)
	if m.Err != nil {
		return false, m.Err
	}
	if m.Mapped[host] == addr {
		return false, nil
	}
	m.Mapped[host] = addr
	return true, nil
}

func (m *MockHostsEditor) Remove(host string) (int, error) {
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	if _, ok := m.Mapped[host]; !ok {
		return 0, nil
	}
	delete(m.Mapped, host)
	return 1, nil
}

func (m *MockHostsEditor) Lookup(host string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if addr, ok := m.Mapped[host]; ok {
		return []string{addr}, nil
	}
	return []string{}, nil
}

// MockHostsFactory is a test double for HostsFactory
type MockHostsFactory struct {
	Editor *MockHostsEditor
	Paths  []string
}

func (m *MockHostsFactory) Open(path string) HostsEditor {
	m.Paths = append(m.Paths, path)
	return m.Editor
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	cfg := config.New()
	cfg.HTTPDRoot = "/etc/apache2"
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader: &MockConfigLoader{Cfg: cfg},
			RootLocator:  &MockRootLocator{Root: "/etc/apache2", DefaultRoot: "/etc/apache2"},
			StoreFactory: &MockStoreFactory{},
			HostsFactory: &MockHostsFactory{Editor: newMockHostsEditor()},
			Executor:     &executor.MockExecutor{},
		},
	}
}

func newMockHostsEditor() *MockHostsEditor {
	return &MockHostsEditor{File: "/etc/hosts", Mapped: make(map[string]string)}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithStore sets the store every factory call returns
func (b *MockDependenciesBuilder) WithStore(store vhost.Store) *MockDependenciesBuilder {
	b.deps.StoreFactory = &MockStoreFactory{Store: store}
	return b
}

// WithLocator sets a custom root locator
func (b *MockDependenciesBuilder) WithLocator(loc RootLocator) *MockDependenciesBuilder {
	b.deps.RootLocator = loc
	return b
}

// WithHosts sets the hosts editor
func (b *MockDependenciesBuilder) WithHosts(editor *MockHostsEditor) *MockDependenciesBuilder {
	b.deps.HostsFactory = &MockHostsFactory{Editor: editor}
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
	}
	OldDeps    *Dependencies
	Store      *vhost.MockStore
	MockConfig *MockConfigLoader
	Hosts      *MockHostsEditor
}

// NewTestHelper installs mock dependencies rooted at root and restores the
// previous ones when the test ends.
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}, root string) *TestHelper {
	t.Helper()

	cfg := config.New()
	cfg.HTTPDRoot = root

	helper := &TestHelper{
		T:          t,
		OldDeps:    deps,
		Store:      vhost.NewMockStore(root),
		MockConfig: &MockConfigLoader{Cfg: cfg},
		Hosts:      newMockHostsEditor(),
	}

	deps = NewMockDeps().
		WithConfigLoader(helper.MockConfig).
		WithStore(helper.Store).
		WithHosts(helper.Hosts).
		Build()

	t.Cleanup(func() {
		deps = helper.OldDeps
	})

	return helper
}

// GetConfig returns the current mock config
func (h *TestHelper) GetConfig() *config.Config {
	return h.MockConfig.Cfg
}
