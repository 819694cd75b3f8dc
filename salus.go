// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package salus

import (
	"runtime"
)

// Version is set via ldflags
var Version string

// Build version is set via ldflags
var Build string

// GetVersion returns the version of the build
func GetVersion() string {
	if Version == "" {
		return "unstable"
	}
	return Version
}

// GetBuild returns the git sha of the build
func GetBuild() string {
	if Build == "" {
		return "development"
	}
	return Build
}

// Info on this application with version and build
func Info() string {
	return "salus " + GetVersion() + " (" + GetBuild() + ", " + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
