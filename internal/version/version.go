// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version describes the running build. The values are injected
// into package main via ldflags and passed down from there.
package version

import "fmt"

// Info identifies a build.
type Info struct {
	Version   string // e.g. "v1.2.3", or "dev"
	GitCommit string // short hash
	BuildTime string // RFC3339
}

// String formats the build for the -version flag.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	commit := i.GitCommit
	if commit == "" {
		commit = "unknown"
	}
	built := i.BuildTime
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("studio %s (commit: %s, built: %s)", v, commit, built)
}
