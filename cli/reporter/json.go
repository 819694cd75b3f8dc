// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"encoding/json"

	"github.com/WeConnect/salus/audit"
)

// resultPrintable is a snapshot of the fields that get exported
// when doing things like JSON output
type resultPrintable struct {
	Passed                  bool             `json:"passed"`
	Advisories              []audit.Advisory `json:"advisories"`
	Failing                 []string         `json:"failing"`
	AppliedExceptions       []string         `json:"applied_exceptions"`
	ExtraneousExceptions    []string         `json:"extraneous_exceptions"`
	ExtraneousDevExceptions []string         `json:"extraneous_dev_exceptions"`
}

func ResultToJSON(res *audit.Result) ([]byte, error) {
	p := resultPrintable{
		Passed:                  res.Passed(),
		Advisories:              nonNil(res.Advisories),
		Failing:                 nonNil(res.FailingIDs),
		AppliedExceptions:       nonNil(res.AppliedExceptions),
		ExtraneousExceptions:    nonNil(res.ExtraneousExceptions),
		ExtraneousDevExceptions: nonNil(res.ExtraneousDevExceptions),
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
