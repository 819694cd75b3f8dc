// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"sort"
	"strings"
)

type Format byte

const (
	Full Format = iota + 1
	Compact
	Summary
	YAML
	JSON
	CSV
	JUnit
	SARIF
)

// Formats that are supported by the reporter
var Formats = map[string]Format{
	"full":    Full,
	"":        Full,
	"compact": Compact,
	"summary": Summary,
	"yaml":    YAML,
	"yml":     YAML,
	"json":    JSON,
	"csv":     CSV,
	"junit":   JUnit,
	"sarif":   SARIF,
}

func AllFormats() string {
	var res []string
	for k := range Formats {
		if k != "" && // default if nothing is provided, ignore
			k != "yml" { // don't show both yaml and yml
			res = append(res, k)
		}
	}
	sort.Strings(res)
	return strings.Join(res, ", ")
}
