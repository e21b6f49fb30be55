//go:build linux

package cgroup

import "errors"

var (
	// ErrUnsupportedMode means Detect found neither a usable v1 nor v2
	// layout; the engine fails fast at startup in this case.
	ErrUnsupportedMode = errors.New("cgroup: unsupported mode")

	// ErrMissingSubsystem means a v1 layout was detected but a subsystem
	// this reader needs was not among the mounted roots.
	ErrMissingSubsystem = errors.New("cgroup: required v1 subsystem not mounted")
)
