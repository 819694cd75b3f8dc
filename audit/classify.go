// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package audit

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of classifying one audit report.
type Result struct {
	// Advisories are sorted with ByPriority.
	Advisories []Advisory `json:"advisories"`
	// FailingIDs are the ids of failing advisories in the order of Advisories.
	FailingIDs []string `json:"failing"`
	// ExtraneousExceptions match no advisory in the report.
	ExtraneousExceptions []string `json:"extraneous_exceptions"`
	// ExtraneousDevExceptions only match advisories that are not in production.
	ExtraneousDevExceptions []string `json:"extraneous_dev_exceptions"`
	// AppliedExceptions match a production advisory.
	AppliedExceptions []string `json:"applied_exceptions"`
}

// Passed is the verdict of the build gate.
func (r *Result) Passed() bool {
	return len(r.FailingIDs) == 0
}

func (r *Result) HasExtraneousExceptions() bool {
	return len(r.ExtraneousExceptions) > 0 || len(r.ExtraneousDevExceptions) > 0
}

type classifyOptions struct {
	strictIDs bool
}

type ClassifyOption func(*classifyOptions)

// WithStrictIDs turns duplicate advisory ids into ErrDuplicateAdvisoryID.
// Without it the last advisory with a given id wins.
func WithStrictIDs() ClassifyOption {
	return func(o *classifyOptions) {
		o.strictIDs = true
	}
}

// Classify derives the production and exception flags of every advisory
// and splits the exceptions into applied and extraneous ones. Any malformed
// record fails the whole call.
func Classify(records []RawAdvisory, exceptions *ExceptionSet, opts ...ClassifyOption) (*Result, error) {
	var o classifyOptions
	for i := range opts {
		opts[i](&o)
	}

	advisories := make([]Advisory, 0, len(records))
	index := make(map[string]int, len(records))
	for i := range records {
		rec := records[i]
		if field, ok := rec.validate(); !ok {
			return nil, errors.Wrapf(ErrMalformedAdvisory, "record %d (id %q) is missing %s", i, rec.ID, field)
		}

		advisory := Advisory{
			ID:           rec.ID,
			Module:       rec.Module,
			Title:        rec.Title,
			Severity:     rec.Severity,
			URL:          rec.URL,
			IsProduction: rec.isProduction(),
			IsExcepted:   exceptions.Contains(rec.ID),
		}

		if pos, ok := index[rec.ID]; ok {
			if o.strictIDs {
				return nil, errors.Wrapf(ErrDuplicateAdvisoryID, "advisory %s appears at records %d and %d", rec.ID, pos, i)
			}
			log.Debug().Str("advisory", rec.ID).Msg("duplicate advisory id, keeping the last one")
			advisories[pos] = advisory
			continue
		}
		index[rec.ID] = len(advisories)
		advisories = append(advisories, advisory)
	}

	SortAdvisories(advisories)

	res := &Result{
		Advisories:              advisories,
		FailingIDs:              []string{},
		ExtraneousExceptions:    []string{},
		ExtraneousDevExceptions: []string{},
		AppliedExceptions:       []string{},
	}
	production := make(map[string]bool, len(advisories))
	for i := range advisories {
		production[advisories[i].ID] = advisories[i].IsProduction
		if advisories[i].IsFailing() {
			res.FailingIDs = append(res.FailingIDs, advisories[i].ID)
		}
	}

	for _, id := range exceptions.IDs() {
		isProd, ok := production[id]
		switch {
		case !ok:
			res.ExtraneousExceptions = append(res.ExtraneousExceptions, id)
		case !isProd:
			res.ExtraneousDevExceptions = append(res.ExtraneousDevExceptions, id)
		default:
			res.AppliedExceptions = append(res.AppliedExceptions, id)
		}
	}

	log.Debug().
		Int("advisories", len(res.Advisories)).
		Int("failing", len(res.FailingIDs)).
		Int("exceptions", exceptions.Len()).
		Msg("classified audit report")
	return res, nil
}
