// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package npm decodes the output of `npm audit --json` into raw advisories.
package npm

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"sigs.k8s.io/yaml"

	"github.com/WeConnect/salus/audit"
)

// ErrInvalidReport is returned for input that is not an npm audit report.
// Such input must never pass as a clean report.
var ErrInvalidReport = errors.New("invalid npm audit report")

// advisoryID accepts both numeric and string ids, npm uses numbers while
// GitHub advisories are strings.
type advisoryID string

func (id *advisoryID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = advisoryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "advisory id is neither a string nor a number")
	}
	*id = advisoryID(n.String())
	return nil
}

type auditError struct {
	Code    string `json:"code"`
	Summary string `json:"summary"`
	Detail  string `json:"detail"`
}

// report covers both report versions: npm 6 fills Advisories,
// npm 7 and later fill Vulnerabilities.
type report struct {
	AuditReportVersion int                        `json:"auditReportVersion"`
	Advisories         map[string]v6Advisory      `json:"advisories"`
	Vulnerabilities    map[string]v7Vulnerability `json:"vulnerabilities"`
	Error              *auditError                `json:"error"`
}

type v6Finding struct {
	Version string   `json:"version"`
	Paths   []string `json:"paths"`
	Dev     bool     `json:"dev"`
}

type v6Advisory struct {
	ID         advisoryID  `json:"id"`
	ModuleName string      `json:"module_name"`
	Title      string      `json:"title"`
	Severity   string      `json:"severity"`
	URL        string      `json:"url"`
	Findings   []v6Finding `json:"findings"`
}

type v7Vulnerability struct {
	Name  string            `json:"name"`
	Via   []json.RawMessage `json:"via"`
	Nodes []string          `json:"nodes"`
}

type v7Via struct {
	Source   advisoryID `json:"source"`
	Name     string     `json:"name"`
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	Severity string     `json:"severity"`
	Range    string     `json:"range"`
}

// ParseReport decodes an audit report. YAML is accepted as well, which is
// handy for hand-written fixtures. Advisories are returned ordered by id.
func ParseReport(data []byte) ([]audit.RawAdvisory, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Wrap(ErrInvalidReport, "report is empty")
	}

	var r report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "failed to decode npm audit report")
	}

	if r.Error != nil {
		return nil, errors.Newf("npm audit failed with %s: %s", r.Error.Code, r.Error.Summary)
	}
	if r.Advisories == nil && r.Vulnerabilities == nil {
		return nil, errors.Wrap(ErrInvalidReport, "neither advisories nor vulnerabilities found")
	}

	if r.AuditReportVersion >= 2 || (r.Vulnerabilities != nil && r.Advisories == nil) {
		return parseV7(r.Vulnerabilities)
	}
	return parseV6(r.Advisories), nil
}

func parseV6(advisories map[string]v6Advisory) []audit.RawAdvisory {
	keys := sortedKeys(advisories)
	res := make([]audit.RawAdvisory, 0, len(keys))
	for _, key := range keys {
		adv := advisories[key]
		id := string(adv.ID)
		if id == "" {
			id = key
		}

		var findings []audit.Finding
		if adv.Findings != nil {
			findings = make([]audit.Finding, len(adv.Findings))
			for i := range adv.Findings {
				findings[i] = audit.Finding{
					Version:         adv.Findings[i].Version,
					Paths:           adv.Findings[i].Paths,
					IsDevDependency: adv.Findings[i].Dev,
				}
			}
		}

		res = append(res, audit.RawAdvisory{
			ID:       id,
			Module:   adv.ModuleName,
			Title:    adv.Title,
			Severity: adv.Severity,
			URL:      adv.URL,
			Findings: findings,
		})
	}
	return res
}

// parseV7 collects the advisories listed in the via entries of every
// vulnerable package. These reports carry no dev flag, so every finding is
// treated as production. Run npm audit with --omit=dev to leave out
// development dependencies.
func parseV7(vulns map[string]v7Vulnerability) ([]audit.RawAdvisory, error) {
	byID := map[string]*audit.RawAdvisory{}
	for _, name := range sortedKeys(vulns) {
		vuln := vulns[name]
		for i := range vuln.Via {
			// string entries only point at another vulnerable package
			if len(vuln.Via[i]) > 0 && vuln.Via[i][0] == '"' {
				continue
			}

			var via v7Via
			if err := json.Unmarshal(vuln.Via[i], &via); err != nil {
				return nil, errors.Wrapf(err, "failed to decode advisory of package %s", name)
			}

			id := string(via.Source)
			adv, ok := byID[id]
			if !ok {
				module := via.Name
				if module == "" {
					module = name
				}
				adv = &audit.RawAdvisory{
					ID:       id,
					Module:   module,
					Title:    via.Title,
					Severity: via.Severity,
					URL:      via.URL,
					Findings: []audit.Finding{},
				}
				byID[id] = adv
			}
			adv.Findings = append(adv.Findings, audit.Finding{Paths: vuln.Nodes})
		}
	}

	if len(byID) > 0 {
		log.Debug().Msg("npm audit report version 2 has no dev dependency information, treating all findings as production")
	}

	res := make([]audit.RawAdvisory, 0, len(byID))
	for _, id := range sortedKeys(byID) {
		res = append(res, *byID[id])
	}
	return res, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := audit.CompareIDs(keys[i], keys[j]); c != 0 {
			return c < 0
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ReportVersion returns the auditReportVersion of a report. Reports of
// npm 6 and input that cannot be decoded yield 0.
func ReportVersion(data []byte) int {
	var r struct {
		AuditReportVersion int `json:"auditReportVersion"`
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return 0
	}
	return r.AuditReportVersion
}

// MarkDevOnly flags every finding of the advisories that are missing from
// production as a dev dependency. production is the parsed result of a
// run with --omit=dev. The records are copied, the input stays untouched.
func MarkDevOnly(records []audit.RawAdvisory, production []audit.RawAdvisory) []audit.RawAdvisory {
	prod := make(map[string]struct{}, len(production))
	for i := range production {
		prod[production[i].ID] = struct{}{}
	}

	res := make([]audit.RawAdvisory, len(records))
	for i := range records {
		res[i] = records[i]
		if _, ok := prod[records[i].ID]; ok || records[i].Findings == nil {
			continue
		}
		findings := make([]audit.Finding, len(records[i].Findings))
		for j := range records[i].Findings {
			findings[j] = records[i].Findings[j]
			findings[j].IsDevDependency = true
		}
		res[i].Findings = findings
	}
	return res
}
