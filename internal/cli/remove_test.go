package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/vhost"
)

func TestRunRemove(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		setupFlags  func()
		setupStore  func(*vhost.MockStore)
		wantCode    int
		wantRemoves int
		wantPurges  int
	}{
		{
			name:        "remove symlink",
			args:        []string{"example.com"},
			wantRemoves: 1,
		},
		{
			name: "purge flag deletes config too",
			args: []string{"example.com"},
			setupFlags: func() {
				removePurge = true
			},
			wantPurges: 1,
		},
		{
			name: "remove failure",
			args: []string{"example.com"},
			setupStore: func(s *vhost.MockStore) {
				s.RemoveFunc = func(host string) (vhost.Paths, error) {
					return vhost.Paths{}, errors.DeleteFailed("symbolic link", "/etc/apache2/sites-enabled/example.com.vhost.conf", os.ErrNotExist)
				}
			},
			wantCode:    errors.ExitSoftware,
			wantRemoves: 1,
		},
		{
			name:     "invalid host",
			args:     []string{"a/b"},
			wantCode: errors.ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			defer resetFlags()
			captureOutput(t)

			h := NewTestHelper(t, "/etc/apache2")
			h.Hosts.Mapped["example.com"] = "127.0.0.1"
			if tt.setupFlags != nil {
				tt.setupFlags()
			}
			if tt.setupStore != nil {
				tt.setupStore(h.Store)
			}

			err := runRemove(nil, tt.args)
			if code := errors.ExitCode(err); code != tt.wantCode {
				t.Fatalf("expected exit code %d, got %d (%v)", tt.wantCode, code, err)
			}
			if len(h.Store.RemoveCalls) != tt.wantRemoves {
				t.Errorf("expected %d Remove calls, got %d", tt.wantRemoves, len(h.Store.RemoveCalls))
			}
			if len(h.Store.PurgeCalls) != tt.wantPurges {
				t.Errorf("expected %d Purge calls, got %d", tt.wantPurges, len(h.Store.PurgeCalls))
			}
			_, mapped := h.Hosts.Mapped["example.com"]
			if tt.wantCode == errors.ExitOK && mapped {
				t.Error("host should be unmapped")
			}
			if tt.wantCode != errors.ExitOK && !mapped {
				t.Error("host should stay mapped after a failure")
			}
		})
	}
}

func TestRemoveEndToEnd(t *testing.T) {
	root, editor := withFileStore(t)

	t.Run("no symlink", func(t *testing.T) {
		code, _, stderr := runCLI(t, "remove", "example.com")
		if code != errors.ExitSoftware {
			t.Fatalf("expected exit 70, got %d", code)
		}
		if !strings.Contains(stderr, enabledPath(root, "example.com")) {
			t.Errorf("diagnostic should name the path, got %q", stderr)
		}
		if strings.Contains(stderr, "Usage:") {
			t.Error("usage line should only follow usage errors")
		}
	})

	t.Run("regular file is refused", func(t *testing.T) {
		path := enabledPath(root, "plain.com")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		code, _, _ := runCLI(t, "remove", "plain.com")
		if code != errors.ExitSoftware {
			t.Fatalf("expected exit 70, got %d", code)
		}
		if _, err := os.Stat(path); err != nil {
			t.Error("regular file should not be removed")
		}
	})

	t.Run("symlink removed and config kept", func(t *testing.T) {
		if code, _, stderr := runCLI(t, "add", "example.com", "-d", "/var/www/example"); code != 0 {
			t.Fatalf("add failed: %s", stderr)
		}
		code, stdout, _ := runCLI(t, "-r", "example.com")
		if code != errors.ExitOK {
			t.Fatalf("expected exit 0, got %d", code)
		}
		if !strings.Contains(stdout, "vhost example.com disabled") {
			t.Errorf("missing success message: %q", stdout)
		}
		if _, err := os.Lstat(enabledPath(root, "example.com")); !os.IsNotExist(err) {
			t.Error("symlink should be removed")
		}
		if _, err := os.Stat(availablePath(root, "example.com")); err != nil {
			t.Error("config should be kept")
		}
		if _, ok := editor.Mapped["example.com"]; ok {
			t.Error("host should be unmapped")
		}
	})

	t.Run("purge flag", func(t *testing.T) {
		if code, _, stderr := runCLI(t, "link", "example.com"); code != 0 {
			t.Fatalf("link failed: %s", stderr)
		}
		code, _, _ := runCLI(t, "rm", "example.com", "-p")
		if code != errors.ExitOK {
			t.Fatalf("expected exit 0, got %d", code)
		}
		if _, err := os.Lstat(availablePath(root, "example.com")); !os.IsNotExist(err) {
			t.Error("config should be removed")
		}
	})
}
