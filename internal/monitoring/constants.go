// Package monitoring provides resource monitoring constants and utilities
package monitoring

// ResourceType constants for monitoring
const (
	ResourceTypeCPU     = "cpu"
	ResourceTypeMemory  = "memory"
	ResourceTypeDisk    = "disk"
	ResourceTypeNetwork = "network"
)
