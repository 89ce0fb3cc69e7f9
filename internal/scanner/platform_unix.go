//go:build !windows

package scanner

import "golang.org/x/sys/unix"

// platformRootInfo holds platform-specific root information
type platformRootInfo struct {
	dev uint64
	ok  bool
}

// getPlatformRootInfo returns the device of the unit root
func getPlatformRootInfo(path string) platformRootInfo {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return platformRootInfo{}
	}
	return platformRootInfo{dev: uint64(stat.Dev), ok: true}
}

// crossesDevice reports whether the directory at path lives on another
// filesystem than the root (a mount point)
func crossesDevice(path string, rootInfo platformRootInfo) bool {
	if !rootInfo.ok {
		return false
	}
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return false
	}
	return uint64(stat.Dev) != rootInfo.dev
}
