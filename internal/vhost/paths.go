package vhost

import (
	"path/filepath"
	"strings"

	"github.com/akoimeexx/apache2-vhost/internal/errors"
)

// DefaultSuffix is appended to every host name to form artifact file names.
const DefaultSuffix = ".vhost.conf"

// Subdirectories of the configuration root.
const (
	AvailableDir = "sites-available"
	EnabledDir   = "sites-enabled"
)

// BuildPath composes <root>/<subdir>/<host><suffix>.
//
// The file name must fit in NAME_MAX bytes and the full path, plus its
// terminating NUL, in PATH_MAX. Nothing touches the filesystem.
func BuildPath(root, subdir, host, suffix string) (string, error) {
	if root == "" {
		return "", errors.Usage("configuration root cannot be empty")
	}
	if subdir != AvailableDir && subdir != EnabledDir {
		return "", errors.Wrap(errors.ErrCodeInternal, "unknown subdirectory "+subdir, nil)
	}
	if err := checkHost(host); err != nil {
		return "", err
	}

	name := host + suffix
	if len(name) > nameMax {
		return "", errors.NameTooLong(name, nameMax)
	}

	path := filepath.Join(root, subdir, name)
	if len(path) >= pathMax {
		return "", errors.PathTooLong(path, pathMax)
	}
	return path, nil
}

// checkPath applies the path limits to a caller-supplied output path.
func checkPath(path string) error {
	if name := filepath.Base(path); len(name) > nameMax {
		return errors.NameTooLong(name, nameMax)
	}
	if len(path) >= pathMax {
		return errors.PathTooLong(path, pathMax)
	}
	return nil
}

func checkHost(host string) error {
	switch {
	case host == "":
		return errors.Usage("host name cannot be empty")
	case host == "." || host == "..":
		return errors.Usagef("invalid host name %q", host)
	case strings.ContainsRune(host, '/') || strings.ContainsRune(host, filepath.Separator):
		return errors.Usagef("host name %q cannot contain a path separator", host)
	}
	return nil
}
