package locator

import (
	"fmt"
	"os"
	"runtime"
)

// Candidate configuration roots, most specific first.
var (
	linuxRoots  = []string{"/etc/apache2", "/etc/httpd"}
	darwinRoots = []string{"/opt/homebrew/etc/httpd", "/usr/local/etc/httpd"}
)

// DefaultRoot returns the platform's conventional configuration root.
// It prefers a candidate that exists and otherwise returns the first one.
func DefaultRoot() string {
	return defaultRoot(runtime.GOOS, pathExists)
}

func defaultRoot(goos string, exists func(string) bool) string {
	candidates := linuxRoots
	if goos == "darwin" {
		candidates = darwinRoots
	}
	for _, root := range candidates {
		if exists(root) {
			return root
		}
	}
	return candidates[0]
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
