package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSystemExecutor_Output(t *testing.T) {
	exec := NewSystemExecutor()
	ctx := context.Background()

	t.Run("stdout only", func(t *testing.T) {
		output, err := exec.Output(ctx, "sh", "-c", "echo out; echo err >&2")
		if err != nil {
			t.Fatalf("Output failed: %v", err)
		}
		if string(output) != "out\n" {
			t.Errorf("expected 'out\\n', got '%s'", string(output))
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		output, err := exec.Output(ctx, "sh", "-c", "echo partial; echo broken >&2; exit 3")
		if err == nil {
			t.Fatal("expected error for failing command")
		}
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected *ExitError, got %T", err)
		}
		if exitErr.Code != 3 {
			t.Errorf("expected exit code 3, got %d", exitErr.Code)
		}
		if exitErr.Stderr != "broken" {
			t.Errorf("expected stderr 'broken', got '%s'", exitErr.Stderr)
		}
		if !strings.Contains(err.Error(), "status 3: broken") {
			t.Errorf("unexpected message: %v", err)
		}
		if string(output) != "partial\n" {
			t.Errorf("stdout should be kept on failure, got '%s'", string(output))
		}
	})

	t.Run("nonexistent command", func(t *testing.T) {
		_, err := exec.Output(ctx, "nonexistent-command-xyz-12345")
		if err == nil {
			t.Error("expected error for nonexistent command")
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			t.Error("a command that never started is not an ExitError")
		}
	})

	t.Run("context deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := exec.Output(ctx, "sleep", "5")
		if err == nil {
			t.Fatal("expected error when the context expires")
		}
		if time.Since(start) > 3*time.Second {
			t.Error("command was not killed on deadline")
		}
	})
}

func TestExitError(t *testing.T) {
	err := &ExitError{Name: "apache2", Code: 1}
	if err.Error() != "apache2 exited with status 1" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestSystemExecutor_LookPath(t *testing.T) {
	exec := NewSystemExecutor()

	t.Run("find sh", func(t *testing.T) {
		path, err := exec.LookPath("sh")
		if err != nil {
			t.Fatalf("LookPath failed: %v", err)
		}
		if path == "" {
			t.Error("expected non-empty path")
		}
	})

	t.Run("nonexistent command", func(t *testing.T) {
		_, err := exec.LookPath("nonexistent-command-xyz-12345")
		if err == nil {
			t.Error("expected error for nonexistent command")
		}
	})
}

func TestMockExecutor_Output(t *testing.T) {
	t.Run("default behavior", func(t *testing.T) {
		mock := &MockExecutor{}
		output, err := mock.Output(context.Background(), "apache2", "-V")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if string(output) != "" {
			t.Errorf("expected empty output, got '%s'", string(output))
		}
		if len(mock.Calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(mock.Calls))
		}
		if mock.Calls[0].Name != "apache2" || len(mock.Calls[0].Args) != 1 || mock.Calls[0].Args[0] != "-V" {
			t.Errorf("unexpected call recorded: %+v", mock.Calls[0])
		}
	})

	t.Run("custom function", func(t *testing.T) {
		mock := &MockExecutor{
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				return []byte(" -D HTTPD_ROOT=\"/etc/apache2\"\n"), nil
			},
		}
		output, err := mock.Output(context.Background(), "apache2", "-V")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !strings.Contains(string(output), "HTTPD_ROOT") {
			t.Errorf("expected mocked output, got '%s'", string(output))
		}
	})

	t.Run("error case", func(t *testing.T) {
		mock := &MockExecutor{
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("partial"), errors.New("mock error")
			},
		}
		output, err := mock.Output(context.Background(), "apache2")
		if err == nil {
			t.Error("expected error")
		}
		if string(output) != "partial" {
			t.Errorf("expected 'partial', got '%s'", string(output))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mock := &MockExecutor{
			OutputFunc: func(name string, args ...string) ([]byte, error) {
				t.Error("OutputFunc should not run after cancel")
				return nil, nil
			},
		}
		if _, err := mock.Output(ctx, "apache2"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestMockExecutor_LookPath(t *testing.T) {
	t.Run("default behavior", func(t *testing.T) {
		mock := &MockExecutor{}
		path, err := mock.LookPath("apache2")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if path != "/usr/sbin/apache2" {
			t.Errorf("expected '/usr/sbin/apache2', got '%s'", path)
		}
	})

	t.Run("custom function", func(t *testing.T) {
		mock := &MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				if file == "httpd" {
					return "/usr/local/bin/httpd", nil
				}
				return "", errors.New("not found")
			},
		}

		path, err := mock.LookPath("httpd")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if path != "/usr/local/bin/httpd" {
			t.Errorf("expected '/usr/local/bin/httpd', got '%s'", path)
		}

		_, err = mock.LookPath("apache2")
		if err == nil {
			t.Error("expected error for unknown command")
		}
	})
}

func TestSystemExecutor_Run(t *testing.T) {
	exec := NewSystemExecutor()

	if err := exec.Run(context.Background(), "true"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := exec.Run(context.Background(), "sh", "-c", "exit 4")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T", err)
	}
	if exitErr.Code != 4 {
		t.Errorf("expected exit code 4, got %d", exitErr.Code)
	}
}

func TestMockExecutor_Run(t *testing.T) {
	var got []string
	mock := &MockExecutor{
		RunFunc: func(name string, args ...string) error {
			got = append([]string{name}, args...)
			return nil
		},
	}

	if err := mock.Run(context.Background(), "vi", "/tmp/x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(got, " ") != "vi /tmp/x" {
		t.Errorf("unexpected invocation %v", got)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("expected 1 call, got %d", len(mock.Calls))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := mock.Run(ctx, "vi"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
