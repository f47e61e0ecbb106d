package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/akoimeexx/apache2-vhost/internal/config"
	"github.com/akoimeexx/apache2-vhost/internal/logger"
	"github.com/akoimeexx/apache2-vhost/internal/output"
)

func init() {
	// Disable color for tests
	color.NoColor = true
}

var errMock = errors.New("mock failure")

// resetFlags restores every flag of every command to its default.
func resetFlags() {
	var walk func(c *cobra.Command)
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// captureOutput redirects user output and logging for the rest of the test.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	output.SetWriters(&out, &errOut)
	logger.SetOutput(&errOut)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		output.SetWriters(nil, nil)
		logger.SetOutput(nil)
		logger.Init(false)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return &out, &errOut
}

// runCLI runs the full command line and returns the exit status and output.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	out, errOut := captureOutput(t)
	code := run(args)
	return code, out.String(), errOut.String()
}

// withFileStore installs dependencies backed by a real store under a temp
// root with both site directories, and a mock hosts file.
func withFileStore(t *testing.T) (string, *MockHostsEditor) {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"sites-available", "sites-enabled"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	cfg := config.New()
	cfg.HTTPDRoot = root
	editor := newMockHostsEditor()

	oldDeps := deps
	deps = NewMockDeps().WithConfig(cfg).WithHosts(editor).Build()
	deps.StoreFactory = &realStoreFactory{}
	t.Cleanup(func() { deps = oldDeps })

	return root, editor
}

func availablePath(root, host string) string {
	return filepath.Join(root, "sites-available", host+".vhost.conf")
}

func enabledPath(root, host string) string {
	return filepath.Join(root, "sites-enabled", host+".vhost.conf")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
