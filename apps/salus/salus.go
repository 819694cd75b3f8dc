// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"github.com/WeConnect/salus/apps/salus/cmd"
)

func main() {
	cmd.Execute()
}
