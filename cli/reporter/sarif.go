// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"bytes"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/WeConnect/salus/audit"
)

const (
	sarifError   = "error"
	sarifWarning = "warning"
	sarifNote    = "note"

	lockfileName = "package-lock.json"
)

func toSarifLevel(a audit.Advisory) string {
	switch {
	case a.IsFailing():
		return sarifError
	case a.IsProduction:
		return sarifWarning
	default:
		return sarifNote
	}
}

// ResultToSarif reports every advisory as a rule with one result pointing
// at the lockfile.
func ResultToSarif(res *audit.Result) ([]byte, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, err
	}

	run := sarif.NewRunWithInformationURI("salus", "https://github.com/WeConnect/salus")
	run.AddArtifact().WithLocation(sarif.NewSimpleArtifactLocation(lockfileName))

	for i := range res.Advisories {
		a := res.Advisories[i]
		run.AddRule(a.ID).
			WithName(a.Module).
			WithDescription(a.Title)

		loc := sarif.NewPhysicalLocation().WithArtifactLocation(sarif.NewSimpleArtifactLocation(lockfileName))
		result := sarif.NewRuleResult(a.ID).
			WithRuleIndex(i).
			WithMessage(sarif.NewTextMessage(a.Module + ": " + a.Title + " (" + a.URL + ")")).
			WithLevel(toSarifLevel(a)).
			WithLocations([]*sarif.Location{sarif.NewLocation().WithPhysicalLocation(loc)})
		run.AddResult(result)
	}

	report.AddRun(run)

	var buf bytes.Buffer
	if err := report.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
