// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package audit

// Finding is one installed instance of a vulnerable module.
type Finding struct {
	Version         string   `json:"version,omitempty"`
	Paths           []string `json:"paths,omitempty"`
	IsDevDependency bool     `json:"dev"`
}

// RawAdvisory is an advisory as decoded from the audit tool, before it
// has been classified against the exceptions.
type RawAdvisory struct {
	ID       string    `json:"id"`
	Module   string    `json:"module_name"`
	Title    string    `json:"title"`
	Severity string    `json:"severity"`
	URL      string    `json:"url"`
	Findings []Finding `json:"findings"`
}

// Advisory is a classified advisory. Severity is kept as the label reported
// by the audit tool since new labels may show up at any time.
type Advisory struct {
	ID           string `json:"id"`
	Module       string `json:"module"`
	Title        string `json:"title"`
	Severity     string `json:"severity"`
	URL          string `json:"url"`
	IsProduction bool   `json:"production"`
	IsExcepted   bool   `json:"excepted"`
}

// IsFailing reports whether the advisory fails the build.
func (a Advisory) IsFailing() bool {
	return a.IsProduction && !a.IsExcepted
}

// isProduction is true if at least one finding is reached through a
// non-development dependency.
func (r RawAdvisory) isProduction() bool {
	for i := range r.Findings {
		if !r.Findings[i].IsDevDependency {
			return true
		}
	}
	return false
}

func (r RawAdvisory) validate() (string, bool) {
	switch {
	case r.ID == "":
		return "id", false
	case r.Module == "":
		return "module_name", false
	case r.Title == "":
		return "title", false
	case r.Severity == "":
		return "severity", false
	case r.URL == "":
		return "url", false
	case r.Findings == nil:
		return "findings", false
	}
	return "", true
}
