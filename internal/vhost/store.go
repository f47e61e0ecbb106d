package vhost

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/akoimeexx/apache2-vhost/internal/errors"
	"github.com/akoimeexx/apache2-vhost/internal/logger"
	"github.com/akoimeexx/apache2-vhost/internal/template"
)

// Store is the interface the command layer uses to manage vhost artifacts.
type Store interface {
	// Root returns the configuration root the store operates on
	Root() string

	// Paths returns the available and enabled paths for host
	Paths(host string) (Paths, error)

	// Add writes the rendered config and links it into sites-enabled
	Add(req AddRequest) (Paths, error)

	// Link creates the sites-enabled symlink for an existing config
	Link(host string) (Paths, error)

	// List enumerates config files, and symlinks when requested
	List(opts ListOptions) ([]Entry, error)

	// Purge deletes the config file and then its symlink
	Purge(host string) (Paths, error)

	// Remove deletes the sites-enabled symlink
	Remove(host string) (Paths, error)

	// Inspect reports the state of both artifacts without changing them
	Inspect(host string) (Status, error)
}

// Paths holds the two artifact locations for a host.
type Paths struct {
	Available string `json:"available"` // regular file with the rendered config
	Enabled   string `json:"enabled"`   // symlink pointing at Available
}

// AddRequest describes a config to create.
type AddRequest struct {
	Host         string
	DocumentRoot string
	// Output overrides the sites-available path when non-empty.
	Output string
}

// ListOptions controls List.
type ListOptions struct {
	IncludeLinks bool
}

// Kind labels a listed entry.
type Kind string

// Entry kinds.
const (
	KindConfig  Kind = "Config"
	KindSymlink Kind = "Symlink"
)

// Entry is one artifact found by List.
type Entry struct {
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
	Host   string `json:"host"`
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
}

// Status describes the artifacts of one host.
type Status struct {
	Host         string `json:"host"`
	Paths        Paths  `json:"paths"`
	ConfigExists bool   `json:"config_exists"`
	LinkExists   bool   `json:"link_exists"`
	LinkTarget   string `json:"link_target,omitempty"`
	// Enabled is true when the symlink resolves to the available config.
	Enabled bool `json:"enabled"`
}

// FileStore implements Store on the sites-available/sites-enabled layout.
type FileStore struct {
	root   string
	suffix string
}

// NewFileStore creates a store rooted at root. An empty suffix uses DefaultSuffix.
func NewFileStore(root, suffix string) *FileStore {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &FileStore{root: root, suffix: suffix}
}

// Root returns the configuration root
func (s *FileStore) Root() string {
	return s.root
}

// Suffix returns the artifact file name suffix
func (s *FileStore) Suffix() string {
	return s.suffix
}

// Paths builds and validates both artifact paths for host
func (s *FileStore) Paths(host string) (Paths, error) {
	available, err := BuildPath(s.root, AvailableDir, host, s.suffix)
	if err != nil {
		return Paths{}, err
	}
	enabled, err := BuildPath(s.root, EnabledDir, host, s.suffix)
	if err != nil {
		return Paths{}, err
	}
	return Paths{Available: available, Enabled: enabled}, nil
}

// Add renders the config for req.Host into sites-available (or req.Output)
// and links it. The file is created exclusively: an existing config is never
// overwritten. If linking fails the new file is removed again.
func (s *FileStore) Add(req AddRequest) (Paths, error) {
	paths, err := s.Paths(req.Host)
	if err != nil {
		return Paths{}, err
	}
	if req.Output != "" {
		if err := checkPath(req.Output); err != nil {
			return Paths{}, err
		}
		paths.Available = req.Output
	}
	if req.DocumentRoot == "" {
		return Paths{}, errors.Usage("document root cannot be empty")
	}

	logger.DebugFields("writing config", map[string]interface{}{
		"host":          req.Host,
		"document_root": req.DocumentRoot,
		"path":          paths.Available,
	})
	if err := writeConfig(paths.Available, req.DocumentRoot, req.Host); err != nil {
		return Paths{}, err
	}

	if err := s.link(paths.Available, paths.Enabled); err != nil {
		logger.Debug("rolling back %s", paths.Available)
		if rbErr := os.Remove(paths.Available); rbErr != nil {
			logger.WarnFields("rollback failed", map[string]interface{}{
				"path":  paths.Available,
				"error": rbErr.Error(),
			})
		}
		return Paths{}, err
	}

	return paths, nil
}

// writeConfig creates path exclusively and renders the template into it.
// The handle is closed on every path; a partial file is removed.
func writeConfig(path, documentRoot, host string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.CreateFailed(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.CreateFailed(path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := template.RenderTo(f, documentRoot, host); err != nil {
		return errors.CreateFailed(path, err)
	}
	return nil
}

// Link symlinks the available config of host into sites-enabled
func (s *FileStore) Link(host string) (Paths, error) {
	paths, err := s.Paths(host)
	if err != nil {
		return Paths{}, err
	}
	if err := s.link(paths.Available, paths.Enabled); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

// link creates linkPath -> target. An existing entry at linkPath is an
// error, never replaced.
func (s *FileStore) link(target, linkPath string) error {
	logger.Debug("linking %s -> %s", linkPath, target)

	if _, err := os.Stat(target); err != nil {
		return errors.LinkFailed(linkPath, fmt.Errorf("target `%s': %w", target, bare(err)))
	}
	if _, err := os.Lstat(linkPath); err == nil {
		return errors.LinkFailed(linkPath, fs.ErrExist)
	}
	if err := os.Symlink(target, linkPath); err != nil {
		return errors.LinkFailed(linkPath, err)
	}
	return nil
}

// List enumerates sites-available, and sites-enabled when opts.IncludeLinks
// is set. Only names ending in the suffix are returned, sorted by name.
func (s *FileStore) List(opts ListOptions) ([]Entry, error) {
	entries, err := s.listDir(filepath.Join(s.root, AvailableDir), KindConfig)
	if err != nil {
		return nil, err
	}

	if opts.IncludeLinks {
		links, err := s.listDir(filepath.Join(s.root, EnabledDir), KindSymlink)
		if err != nil {
			return nil, err
		}
		entries = append(entries, links...)
	}

	return entries, nil
}

func (s *FileStore) listDir(dir string, kind Kind) ([]Entry, error) {
	logger.Debug("listing %s", dir)

	if err := checkAccess(dir); err != nil {
		return nil, errors.AccessDenied(dir, err)
	}

	d, err := os.Open(dir)
	if err != nil {
		return nil, errors.AccessDenied(dir, err)
	}
	defer d.Close()

	dirEntries, err := d.ReadDir(-1)
	if err != nil {
		return nil, errors.AccessDenied(dir, err)
	}

	matched := lo.Filter(dirEntries, func(item fs.DirEntry, _ int) bool {
		return !item.IsDir() && strings.HasSuffix(item.Name(), s.suffix)
	})

	entries := lo.Map(matched, func(item fs.DirEntry, _ int) Entry {
		entry := Entry{
			Kind: kind,
			Name: item.Name(),
			Host: strings.TrimSuffix(item.Name(), s.suffix),
			Path: filepath.Join(dir, item.Name()),
		}
		if item.Type()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(entry.Path)
			if err != nil {
				logger.Warn("unable to read link %s: %v", entry.Path, err)
			}
			entry.Target = target
		}
		return entry
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Purge deletes the config of host, then chains into Remove. A failure
// removing the symlink is returned after the config is already gone.
func (s *FileStore) Purge(host string) (Paths, error) {
	paths, err := s.Paths(host)
	if err != nil {
		return Paths{}, err
	}

	logger.Debug("removing %s", paths.Available)
	info, err := os.Lstat(paths.Available)
	if err != nil {
		return Paths{}, errors.DeleteFailed("regular file", paths.Available, err)
	}
	if !info.Mode().IsRegular() {
		return Paths{}, errors.DeleteFailed("regular file", paths.Available, fmt.Errorf("not a regular file"))
	}
	if err := os.Remove(paths.Available); err != nil {
		return Paths{}, errors.DeleteFailed("regular file", paths.Available, err)
	}

	if _, err := s.Remove(host); err != nil {
		return paths, err
	}
	return paths, nil
}

// Remove deletes the sites-enabled symlink of host. The target is left alone
// and a non-symlink at that path is refused.
func (s *FileStore) Remove(host string) (Paths, error) {
	paths, err := s.Paths(host)
	if err != nil {
		return Paths{}, err
	}

	logger.Debug("unlinking %s", paths.Enabled)
	info, err := os.Lstat(paths.Enabled)
	if err != nil {
		return Paths{}, errors.DeleteFailed("symbolic link", paths.Enabled, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return Paths{}, errors.DeleteFailed("symbolic link", paths.Enabled, fmt.Errorf("not a symbolic link, refusing to remove"))
	}
	if err := os.Remove(paths.Enabled); err != nil {
		return Paths{}, errors.DeleteFailed("symbolic link", paths.Enabled, err)
	}
	return paths, nil
}

// Inspect reports the state of both artifacts of host
func (s *FileStore) Inspect(host string) (Status, error) {
	paths, err := s.Paths(host)
	if err != nil {
		return Status{}, err
	}

	status := Status{Host: host, Paths: paths}
	if info, err := os.Lstat(paths.Available); err == nil && info.Mode().IsRegular() {
		status.ConfigExists = true
	}
	if info, err := os.Lstat(paths.Enabled); err == nil {
		status.LinkExists = true
		if info.Mode()&os.ModeSymlink != 0 {
			status.LinkTarget, _ = os.Readlink(paths.Enabled)
		}
	}
	if status.LinkExists && status.ConfigExists {
		linked, lerr := filepath.EvalSymlinks(paths.Enabled)
		config, cerr := filepath.EvalSymlinks(paths.Available)
		status.Enabled = lerr == nil && cerr == nil && linked == config
	}
	return status, nil
}

// bare drops the *fs.PathError wrapper so a path is not repeated in messages.
func bare(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
