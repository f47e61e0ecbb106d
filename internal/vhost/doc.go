// Package vhost manages the two filesystem artifacts of an Apache virtual host.
//
// A host name H under configuration root R maps to:
//
//	R/sites-available/H.vhost.conf   regular file with the rendered config
//	R/sites-enabled/H.vhost.conf     symbolic link to the file above
//
// # Path Building
//
// BuildPath composes either path and checks it against the platform limits
// (NAME_MAX for the file name, PATH_MAX for the whole path) without touching
// the filesystem:
//
//	path, err := vhost.BuildPath("/etc/apache2", vhost.AvailableDir, "example.com", vhost.DefaultSuffix)
//
// # Store Operations
//
// FileStore implements Store:
//
//	store := vhost.NewFileStore("/etc/apache2", "")
//
//	// write the config and enable it
//	paths, err := store.Add(vhost.AddRequest{Host: "example.com", DocumentRoot: "/var/www/example"})
//
//	// disable it, keeping the config
//	_, err = store.Remove("example.com")
//
//	// delete both artifacts
//	_, err = store.Purge("example.com")
//
// Add never overwrites an existing config and Link never replaces an existing
// entry in sites-enabled. When Add cannot link, the file it just created is
// removed again.
//
// # Testing
//
// MockStore records calls and lets tests override each operation:
//
//	store := vhost.NewMockStore("/etc/apache2")
//	store.RemoveFunc = func(host string) (vhost.Paths, error) {
//	    return vhost.Paths{}, errors.DeleteFailed("symbolic link", "/x", fs.ErrNotExist)
//	}
package vhost
