// Package locator finds the Apache configuration root.
//
// The web server binary is asked with "-V", which prints its compile
// settings including a line such as:
//
//	 -D HTTPD_ROOT="/etc/apache2"
//
// When no binary is installed the platform default is used instead.
package locator

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	vherrors "github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/executor"
	"github.com/akoimeexx/apache2-vhost/internal/logger"
)

// DefaultBinary is the web server binary queried when none is configured.
const DefaultBinary = "apache2"

// DefaultTimeout bounds a single "-V" query.
const DefaultTimeout = 10 * time.Second

const rootPrefix = ` -D HTTPD_ROOT="`

// Source tells where a resolved root came from.
type Source string

// Root sources.
const (
	SourceBinary  Source = "binary"
	SourceDefault Source = "default"
)

// Result is a resolved configuration root.
type Result struct {
	Root   string
	Source Source
	// Binary is the executable that reported Root, if any.
	Binary string
}

// Locator queries the web server binary for its root.
type Locator struct {
	exec     executor.CommandExecutor
	binaries []string
	timeout  time.Duration
	fallback func() string
}

// Binaries lists the executables tried for a configured binary name.
// An empty name means apache2 then httpd.
func Binaries(binary string) []string {
	if binary != "" {
		return []string{binary}
	}
	return []string{DefaultBinary, "httpd"}
}

// New creates a Locator for the executables Binaries(binary) names.
func New(exec executor.CommandExecutor, binary string) *Locator {
	return &Locator{
		exec:     exec,
		binaries: Binaries(binary),
		timeout:  DefaultTimeout,
		fallback: DefaultRoot,
	}
}

// withFallback replaces the platform default used when no binary is found.
func (l *Locator) withFallback(fallback func() string) *Locator {
	l.fallback = fallback
	return l
}

// WithTimeout sets the limit for one query.
func (l *Locator) WithTimeout(d time.Duration) *Locator {
	l.timeout = d
	return l
}

// Locate returns the configuration root.
//
// A binary missing from PATH is not an error: the platform default is
// returned. A binary that runs without reporting HTTPD_ROOT is
// LOCATOR_UNAVAILABLE.
func (l *Locator) Locate(ctx context.Context) (Result, error) {
	for _, name := range l.binaries {
		path, err := l.exec.LookPath(name)
		if err != nil {
			logger.Debug("%s not found in PATH", name)
			continue
		}

		root, err := l.query(ctx, path)
		if err != nil {
			return Result{}, vherrors.LocatorUnavailable(err)
		}
		logger.Debug("%s reports HTTPD_ROOT %s", path, root)
		return Result{Root: root, Source: SourceBinary, Binary: path}, nil
	}

	root := l.fallback()
	logger.Info("no web server binary found, using %s", root)
	return Result{Root: root, Source: SourceDefault}, nil
}

func (l *Locator) query(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	out, runErr := l.exec.Output(ctx, path, "-V")
	// Debian's apache2 exits non-zero without its envvars but still prints
	// the compile settings.
	if root, ok := ParseHTTPDRoot(out); ok {
		return root, nil
	}
	if runErr != nil {
		return "", errors.Wrapf(runErr, "%s -V", path)
	}
	return "", errors.Errorf("%s -V did not report HTTPD_ROOT", path)
}

// ParseHTTPDRoot extracts the HTTPD_ROOT value from "-V" output.
func ParseHTTPDRoot(out []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, rootPrefix) {
			continue
		}
		value := strings.TrimPrefix(line, rootPrefix)
		end := strings.IndexByte(value, '"')
		if end <= 0 {
			return "", false
		}
		return value[:end], true
	}
	return "", false
}
