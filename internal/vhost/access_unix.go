//go:build unix

package vhost

import "golang.org/x/sys/unix"

// checkAccess verifies the directory exists and can be searched and read.
func checkAccess(dir string) error {
	return unix.Access(dir, unix.R_OK|unix.X_OK)
}
