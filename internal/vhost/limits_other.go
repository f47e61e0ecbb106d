//go:build !linux

package vhost

// BSD and macOS limits from <sys/syslimits.h>.
const (
	nameMax = 255
	pathMax = 1024
)
