package locator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vherrors "github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/executor"
)

const debianOutput = `Server version: Apache/2.4.57 (Debian)
Server built:   2023-04-13T03:26:51
Server's Module Magic Number: 20120211:127
Architecture:   64-bit
Server MPM:     event
Server compiled with....
 -D APR_HAS_SENDFILE
 -D HTTPD_ROOT="/etc/apache2"
 -D SUEXEC_BIN="/usr/lib/apache2/suexec"
 -D SERVER_CONFIG_FILE="apache2.conf"
`

func fixedRoot(root string) func() string {
	return func() string { return root }
}

func TestParseHTTPDRoot(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		wantOK bool
	}{
		{name: "debian", output: debianOutput, want: "/etc/apache2", wantOK: true},
		{name: "rhel", output: " -D HTTPD_ROOT=\"/etc/httpd\"\n", want: "/etc/httpd", wantOK: true},
		{name: "no trailing newline", output: ` -D HTTPD_ROOT="/opt/homebrew/etc/httpd"`, want: "/opt/homebrew/etc/httpd", wantOK: true},
		{name: "missing", output: " -D SERVER_CONFIG_FILE=\"apache2.conf\"\n"},
		{name: "empty value", output: " -D HTTPD_ROOT=\"\"\n"},
		{name: "unterminated", output: " -D HTTPD_ROOT=\"/etc/apache2\n"},
		{name: "not at line start", output: "x -D HTTPD_ROOT=\"/etc/apache2\"\n"},
		{name: "empty", output: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHTTPDRoot([]byte(tt.output))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocate(t *testing.T) {
	t.Run("binary reports root", func(t *testing.T) {
		mock := &executor.MockExecutor{
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				return []byte(debianOutput), nil
			},
		}

		result, err := New(mock, "").Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/etc/apache2", result.Root)
		assert.Equal(t, SourceBinary, result.Source)
		assert.Equal(t, "/usr/sbin/apache2", result.Binary)

		require.Len(t, mock.Calls, 1)
		assert.Equal(t, "/usr/sbin/apache2", mock.Calls[0].Name)
		assert.Equal(t, []string{"-V"}, mock.Calls[0].Args)
	})

	t.Run("root found despite failing exit", func(t *testing.T) {
		mock := &executor.MockExecutor{
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				return []byte(debianOutput), &executor.ExitError{Name: name, Code: 1}
			},
		}

		result, err := New(mock, "").Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/etc/apache2", result.Root)
	})

	t.Run("falls back to httpd", func(t *testing.T) {
		mock := &executor.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				if file == "httpd" {
					return "/usr/sbin/httpd", nil
				}
				return "", fmt.Errorf("%s: not found", file)
			},
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				return []byte(" -D HTTPD_ROOT=\"/etc/httpd\"\n"), nil
			},
		}

		result, err := New(mock, "").Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/etc/httpd", result.Root)
		assert.Equal(t, "/usr/sbin/httpd", result.Binary)
	})

	t.Run("no binary uses platform default", func(t *testing.T) {
		mock := &executor.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				return "", fmt.Errorf("%s: not found", file)
			},
		}

		result, err := New(mock, "").withFallback(fixedRoot("/etc/apache2")).Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/etc/apache2", result.Root)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Empty(t, mock.Calls)
	})

	t.Run("configured binary only", func(t *testing.T) {
		var looked []string
		mock := &executor.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				looked = append(looked, file)
				return "", fmt.Errorf("%s: not found", file)
			},
		}

		_, err := New(mock, "/opt/apache/bin/httpd").withFallback(fixedRoot("/x")).Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"/opt/apache/bin/httpd"}, looked)
	})

	t.Run("failing binary without root", func(t *testing.T) {
		mock := &executor.MockExecutor{
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				return nil, &executor.ExitError{Name: name, Code: 1, Stderr: "AH00558: syntax error"}
			},
		}

		_, err := New(mock, "").Locate(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, vherrors.ErrLocatorUnavailable)
		assert.Equal(t, vherrors.ExitOSFile, vherrors.ExitCode(err))
		assert.Contains(t, err.Error(), "unable to locate apache2")
		assert.Contains(t, err.Error(), "AH00558")
	})

	t.Run("successful binary without root", func(t *testing.T) {
		mock := &executor.MockExecutor{
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("Server version: Apache/2.4.57\n"), nil
			},
		}

		_, err := New(mock, "").Locate(context.Background())
		assert.ErrorIs(t, err, vherrors.ErrLocatorUnavailable)
		assert.Contains(t, err.Error(), "did not report HTTPD_ROOT")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(&executor.MockExecutor{}, "").WithTimeout(time.Second).Locate(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, vherrors.ExitOSFile, vherrors.ExitCode(err))
	})
}

func TestDefaultRoot(t *testing.T) {
	none := func(string) bool { return false }
	only := func(want string) func(string) bool {
		return func(path string) bool { return path == want }
	}

	tests := []struct {
		name   string
		goos   string
		exists func(string) bool
		want   string
	}{
		{"debian", "linux", only("/etc/apache2"), "/etc/apache2"},
		{"rhel", "linux", only("/etc/httpd"), "/etc/httpd"},
		{"linux nothing installed", "linux", none, "/etc/apache2"},
		{"apple silicon", "darwin", only("/opt/homebrew/etc/httpd"), "/opt/homebrew/etc/httpd"},
		{"intel homebrew", "darwin", only("/usr/local/etc/httpd"), "/usr/local/etc/httpd"},
		{"darwin nothing installed", "darwin", none, "/opt/homebrew/etc/httpd"},
		{"other unix", "freebsd", none, "/etc/apache2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultRoot(tt.goos, tt.exists))
		})
	}
}

func TestDefaultRootNotEmpty(t *testing.T) {
	assert.NotEmpty(t, DefaultRoot())
}

func TestPathExists(t *testing.T) {
	assert.True(t, pathExists("/"))
	assert.False(t, pathExists("/this/path/should/definitely/not/exist/anywhere"))
}

func TestPlatform(t *testing.T) {
	assert.Contains(t, Platform(), "/")
}

func TestBinaries(t *testing.T) {
	assert.Equal(t, []string{"apache2", "httpd"}, Binaries(""))
	assert.Equal(t, []string{"/usr/sbin/httpd"}, Binaries("/usr/sbin/httpd"))
}
