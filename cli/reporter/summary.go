// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"fmt"
	"strings"

	"github.com/WeConnect/salus/audit"
)

const (
	failingPrefix       = "Failing build due to advisories: "
	remediationHint     = `Run "npm audit fix" to upgrade affected packages, or add an exception for advisories that do not apply.`
	extraneousPrefix    = "Exceptions with no matching advisory: "
	extraneousDevPrefix = "Exceptions matching only dev dependency advisories: "
	removableHint       = "These exceptions can be safely removed from the configuration."
)

func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}

// RenderSummary renders the narrative that follows the table: first the
// failing advisories, then the exceptions that no longer apply.
func RenderSummary(res *audit.Result) string {
	var b strings.Builder
	if len(res.FailingIDs) > 0 {
		b.WriteString(failingPrefix + joinIDs(res.FailingIDs) + "\n")
		b.WriteString(remediationHint + "\n")
	}

	if res.HasExtraneousExceptions() {
		if len(res.ExtraneousExceptions) > 0 {
			b.WriteString(extraneousPrefix + joinIDs(res.ExtraneousExceptions) + "\n")
		}
		if len(res.ExtraneousDevExceptions) > 0 {
			b.WriteString(extraneousDevPrefix + joinIDs(res.ExtraneousDevExceptions) + "\n")
		}
		b.WriteString(removableHint + "\n")
	}
	return b.String()
}

// renderStats is the one line overview used by the summary format.
func renderStats(res *audit.Result) string {
	excepted, dev := 0, 0
	for i := range res.Advisories {
		if res.Advisories[i].IsExcepted {
			excepted++
		}
		if !res.Advisories[i].IsProduction {
			dev++
		}
	}
	return fmt.Sprintf("Advisories: %d total, %d failing, %d excepted, %d dev only\n",
		len(res.Advisories), len(res.FailingIDs), excepted, dev)
}
