//go:build linux

package vhost

import "golang.org/x/sys/unix"

// Linux limits from <linux/limits.h>. PATH_MAX counts the terminating NUL.
const (
	nameMax = 255
	pathMax = unix.PathMax
)
