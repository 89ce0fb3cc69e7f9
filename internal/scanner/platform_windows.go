//go:build windows

package scanner

// platformRootInfo holds platform-specific root information
type platformRootInfo struct {
	// Windows doesn't need mount point detection - drives are separate
}

// getPlatformRootInfo returns platform-specific info about the root path
func getPlatformRootInfo(path string) platformRootInfo {
	return platformRootInfo{}
}

// crossesDevice always returns false on Windows
func crossesDevice(path string, rootInfo platformRootInfo) bool {
	return false
}
