//go:build !unix

package vhost

import "os"

func checkAccess(dir string) error {
	_, err := os.Stat(dir)
	return err
}
