// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WeConnect/salus/audit"
)

func TestRenderSummary(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		assert.Equal(t, "", RenderSummary(&audit.Result{}))
	})

	t.Run("failing", func(t *testing.T) {
		out := RenderSummary(&audit.Result{FailingIDs: []string{"7", "100"}})
		assert.Equal(t, "Failing build due to advisories: 7, 100\n"+remediationHint+"\n", out)
	})

	t.Run("extraneous only", func(t *testing.T) {
		out := RenderSummary(&audit.Result{ExtraneousExceptions: []string{"999"}})
		assert.Equal(t, "Exceptions with no matching advisory: 999\n"+removableHint+"\n", out)
	})

	t.Run("dev only", func(t *testing.T) {
		out := RenderSummary(&audit.Result{ExtraneousDevExceptions: []string{"5", "6"}})
		assert.Equal(t, "Exceptions matching only dev dependency advisories: 5, 6\n"+removableHint+"\n", out)
	})

	t.Run("everything in order", func(t *testing.T) {
		out := RenderSummary(&audit.Result{
			FailingIDs:              []string{"1"},
			ExtraneousExceptions:    []string{"2"},
			ExtraneousDevExceptions: []string{"3"},
		})
		assert.Equal(t, "Failing build due to advisories: 1\n"+
			remediationHint+"\n"+
			"Exceptions with no matching advisory: 2\n"+
			"Exceptions matching only dev dependency advisories: 3\n"+
			removableHint+"\n", out)
	})
}

func TestRenderStats(t *testing.T) {
	res := &audit.Result{
		Advisories: sampleAdvisories(),
		FailingIDs: []string{"100"},
	}
	assert.Equal(t, "Advisories: 3 total, 1 failing, 1 excepted, 1 dev only\n", renderStats(res))
}
