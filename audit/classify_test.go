// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package audit

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(id string, dev ...bool) RawAdvisory {
	findings := []Finding{}
	for i := range dev {
		findings = append(findings, Finding{Version: "1.0.0", IsDevDependency: dev[i]})
	}
	return RawAdvisory{
		ID:       id,
		Module:   "mod-" + id,
		Title:    "Title " + id,
		Severity: "high",
		URL:      "https://npmjs.com/advisories/" + id,
		Findings: findings,
	}
}

func ids(advisories []Advisory) []string {
	res := make([]string, len(advisories))
	for i := range advisories {
		res[i] = advisories[i].ID
	}
	return res
}

func TestClassify_Scenarios(t *testing.T) {
	t.Run("no advisories and no exceptions", func(t *testing.T) {
		res, err := Classify(nil, NewExceptionSet())
		require.NoError(t, err)
		assert.True(t, res.Passed())
		assert.Empty(t, res.Advisories)
		assert.Empty(t, res.FailingIDs)
		assert.False(t, res.HasExtraneousExceptions())
	})

	t.Run("production advisory fails", func(t *testing.T) {
		res, err := Classify([]RawAdvisory{raw("100", false)}, NewExceptionSet())
		require.NoError(t, err)
		assert.False(t, res.Passed())
		assert.Equal(t, []string{"100"}, res.FailingIDs)
		require.Len(t, res.Advisories, 1)
		assert.True(t, res.Advisories[0].IsProduction)
		assert.False(t, res.Advisories[0].IsExcepted)
	})

	t.Run("excepted production advisory passes", func(t *testing.T) {
		res, err := Classify([]RawAdvisory{raw("100", false)}, NewExceptionSet("100"))
		require.NoError(t, err)
		assert.True(t, res.Passed())
		assert.Empty(t, res.FailingIDs)
		assert.False(t, res.HasExtraneousExceptions())
		assert.Equal(t, []string{"100"}, res.AppliedExceptions)
		assert.True(t, res.Advisories[0].IsExcepted)
	})

	t.Run("exception without advisory is extraneous", func(t *testing.T) {
		res, err := Classify([]RawAdvisory{raw("100", true)}, NewExceptionSet("999"))
		require.NoError(t, err)
		assert.Equal(t, []string{"999"}, res.ExtraneousExceptions)
		assert.Empty(t, res.ExtraneousDevExceptions)
		assert.True(t, res.Passed())
	})

	t.Run("exception for dev advisory is extraneous", func(t *testing.T) {
		res, err := Classify([]RawAdvisory{raw("5", true, true), raw("6", false)}, NewExceptionSet("5"))
		require.NoError(t, err)
		assert.Equal(t, []string{"5"}, res.ExtraneousDevExceptions)
		assert.Empty(t, res.ExtraneousExceptions)
		assert.Equal(t, []string{"6"}, res.FailingIDs)
	})
}

func TestClassify_Production(t *testing.T) {
	res, err := Classify([]RawAdvisory{
		raw("1", true, false),
		raw("2", true, true),
		raw("3"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(res.Advisories))
	assert.True(t, res.Advisories[0].IsProduction)
	assert.False(t, res.Advisories[1].IsProduction)
	// an advisory without findings is not reachable from production
	assert.False(t, res.Advisories[2].IsProduction)
}

func TestClassify_Order(t *testing.T) {
	records := []RawAdvisory{
		raw("1000", true),
		raw("30", false),
		raw("7", false),
		raw("200", false),
		raw("2", true),
		raw("GHSA-1", false),
	}
	res, err := Classify(records, NewExceptionSet("200", "2", "77"))
	require.NoError(t, err)

	assert.Equal(t, []string{"7", "30", "GHSA-1", "2", "200", "1000"}, ids(res.Advisories))
	assert.Equal(t, []string{"7", "30", "GHSA-1"}, res.FailingIDs)
	assert.Equal(t, []string{"77"}, res.ExtraneousExceptions)
	assert.Equal(t, []string{"2"}, res.ExtraneousDevExceptions)
	assert.Equal(t, []string{"200"}, res.AppliedExceptions)
}

func TestClassify_Malformed(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(r *RawAdvisory)
	}{
		{"id", func(r *RawAdvisory) { r.ID = "" }},
		{"module_name", func(r *RawAdvisory) { r.Module = "" }},
		{"title", func(r *RawAdvisory) { r.Title = "" }},
		{"severity", func(r *RawAdvisory) { r.Severity = "" }},
		{"url", func(r *RawAdvisory) { r.URL = "" }},
		{"findings", func(r *RawAdvisory) { r.Findings = nil }},
	}
	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			bad := raw("2", false)
			tc.mutate(&bad)
			res, err := Classify([]RawAdvisory{raw("1", false), bad}, NewExceptionSet())
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrMalformedAdvisory))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestClassify_Duplicates(t *testing.T) {
	first := raw("1", false)
	last := raw("1", true)
	last.Title = "last"
	records := []RawAdvisory{first, raw("2", false), last}

	res, err := Classify(records, NewExceptionSet("1"))
	require.NoError(t, err)
	require.Len(t, res.Advisories, 2)
	assert.Equal(t, []string{"2", "1"}, ids(res.Advisories))
	assert.Equal(t, "last", res.Advisories[1].Title)
	assert.Equal(t, []string{"1"}, res.ExtraneousDevExceptions)

	_, err = Classify(records, NewExceptionSet("1"), WithStrictIDs())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateAdvisoryID))
}

func TestClassify_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		var records []RawAdvisory
		var exceptionIDs []string
		n := rnd.Intn(30)
		for i := 0; i < n; i++ {
			id := fmt.Sprint(rnd.Intn(1000))
			records = append(records, raw(id, rnd.Intn(2) == 0, rnd.Intn(3) == 0))
			if rnd.Intn(3) == 0 {
				exceptionIDs = append(exceptionIDs, id)
			}
		}
		extra := rnd.Intn(4)
		for i := 0; i < extra; i++ {
			exceptionIDs = append(exceptionIDs, fmt.Sprint(1000+rnd.Intn(100)))
		}
		set := NewExceptionSet(exceptionIDs...)

		res, err := Classify(records, set)
		require.NoError(t, err)

		again, err := Classify(records, set)
		require.NoError(t, err)
		require.Equal(t, res, again)

		// failing advisories come first, ids ascend within each group
		anyFailing := false
		for i := range res.Advisories {
			a := res.Advisories[i]
			if a.IsFailing() {
				anyFailing = true
			}
			if i == 0 {
				continue
			}
			prev := res.Advisories[i-1]
			require.False(t, !prev.IsFailing() && a.IsFailing(), "failing advisory %s after non-failing %s", a.ID, prev.ID)
			if prev.IsFailing() == a.IsFailing() {
				require.Equal(t, -1, CompareIDs(prev.ID, a.ID))
			}
		}
		require.Equal(t, !anyFailing, res.Passed())

		// exception categories partition the exception set
		seen := map[string]int{}
		for _, group := range [][]string{res.ExtraneousExceptions, res.ExtraneousDevExceptions, res.AppliedExceptions} {
			for _, id := range group {
				seen[id]++
			}
		}
		require.Len(t, seen, set.Len())
		for id, n := range seen {
			require.Equal(t, 1, n, id)
			require.True(t, set.Contains(id))
		}
	}
}
