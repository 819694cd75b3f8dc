// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"strings"
	"unicode"

	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"github.com/WeConnect/salus/audit"
)

const (
	DefaultMaxModuleLength  = 16
	DefaultMaxTitleLength   = 16
	DefaultTruncationMarker = "~"

	// NoAdvisoriesMessage replaces the table when the report is clean.
	NoAdvisoriesMessage = "No known vulnerabilities found in Node.js packages."

	httpsPrefix = "https://"
)

// Substitution shortens a common phrase in advisory titles.
type Substitution struct {
	Pattern     string
	Replacement string
}

// TableConfig holds everything the table renderer needs. Get one from
// DefaultTableConfig, every call returns a fresh copy.
type TableConfig struct {
	MaxModuleLength  int
	MaxTitleLength   int
	Colors           bool
	TruncationMarker string

	Headings []string
	// TitleSubstitutions are applied in order, before truncation.
	TitleSubstitutions []Substitution
	// SeverityAbbreviations maps severity labels to short forms, labels
	// that are not listed are printed as they are.
	SeverityAbbreviations map[string]string

	// DangerColor marks advisories that fail the build, WarningColor
	// excepted advisories in production.
	DangerColor  termenv.Color
	WarningColor termenv.Color
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxModuleLength:  DefaultMaxModuleLength,
		MaxTitleLength:   DefaultMaxTitleLength,
		Colors:           true,
		TruncationMarker: DefaultTruncationMarker,
		Headings:         append([]string{}, defaultHeadings...),
		TitleSubstitutions: []Substitution{
			{Pattern: "Regular Expression", Replacement: "Regex"},
			{Pattern: "Denial of Service", Replacement: "DoS"},
			{Pattern: "Remote Code Execution", Replacement: "RCE"},
			{Pattern: "Cross-Site Scripting", Replacement: "XSS"},
			{Pattern: "Server-Side Request Forgery", Replacement: "SSRF"},
			{Pattern: "Prototype Pollution", Replacement: "Proto Pollution"},
		},
		SeverityAbbreviations: map[string]string{
			"critical": "crit",
			"moderate": "mod",
		},
		DangerColor:  termenv.ANSIRed,
		WarningColor: termenv.ANSIYellow,
	}
}

// abbreviate cuts s to limit printable characters, the last of which is the
// marker if anything was cut.
func abbreviate(s string, limit int, marker string) string {
	if limit < 1 || ansi.PrintableRuneWidth(s) <= limit {
		return s
	}
	return truncate.StringWithTail(s, uint(limit), marker)
}

func (c TableConfig) title(title string) string {
	for _, sub := range c.TitleSubstitutions {
		title = strings.ReplaceAll(title, sub.Pattern, sub.Replacement)
	}
	return abbreviate(title, c.MaxTitleLength, c.TruncationMarker)
}

func (c TableConfig) module(module string) string {
	return abbreviate(module, c.MaxModuleLength, c.TruncationMarker)
}

func (c TableConfig) severity(severity string) string {
	if short, ok := c.SeverityAbbreviations[severity]; ok {
		return short
	}
	return severity
}

var defaultHeadings = []string{"ID", "Module", "Title", "Sev", "URL", "Prod", "Ex"}

// headings falls back to the default headings if the configured ones do
// not match the number of columns.
func (c TableConfig) headings() []string {
	if len(c.Headings) != len(defaultHeadings) {
		return defaultHeadings
	}
	return c.Headings
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// printable turns tabs and line breaks into spaces and drops every other
// control character, ESC of terminal escape sequences included.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// cells returns the table cells of an advisory, in heading order.
func (c TableConfig) cells(a audit.Advisory) []string {
	return []string{
		printable(a.ID),
		c.module(printable(a.Module)),
		c.title(printable(a.Title)),
		c.severity(printable(a.Severity)),
		strings.TrimPrefix(printable(a.URL), httpsPrefix),
		yesNo(a.IsProduction),
		yesNo(a.IsExcepted),
	}
}

func (c TableConfig) rowColor(a audit.Advisory) termenv.Color {
	switch {
	case a.IsFailing():
		return c.DangerColor
	case a.IsProduction && a.IsExcepted:
		return c.WarningColor
	}
	return nil
}

func (c TableConfig) colorize(row string, color termenv.Color) string {
	if !c.Colors || color == nil {
		return row
	}
	return termenv.ANSI.String(row).Foreground(color).String()
}

// RenderTable renders the advisories in the given order as a fixed-width
// table. Every line, including the separators, has the same printable
// width. Without advisories only NoAdvisoriesMessage is returned.
func RenderTable(advisories []audit.Advisory, conf TableConfig) string {
	if len(advisories) == 0 {
		return NoAdvisoriesMessage + "\n"
	}

	rows := make([][]string, 0, len(advisories)+1)
	headings := conf.headings()
	rows = append(rows, headings)
	for i := range advisories {
		rows = append(rows, conf.cells(advisories[i]))
	}

	widths := make([]int, len(headings))
	for _, row := range rows {
		for col := range row {
			if w := ansi.PrintableRuneWidth(row[col]); w > widths[col] {
				widths[col] = w
			}
		}
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = joinRow(row, widths)
	}
	rowWidth := ansi.PrintableRuneWidth(lines[0])
	thick := strings.Repeat("=", rowWidth)
	thin := strings.Repeat("-", rowWidth)

	var b strings.Builder
	b.WriteString(thick + "\n")
	b.WriteString(lines[0] + "\n")
	b.WriteString(thin + "\n")
	for i := range advisories {
		b.WriteString(conf.colorize(lines[i+1], conf.rowColor(advisories[i])) + "\n")
	}
	b.WriteString(thick + "\n")
	return b.String()
}

func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i := range cells {
		fill := widths[i] - ansi.PrintableRuneWidth(cells[i])
		padded[i] = " " + cells[i] + strings.Repeat(" ", fill) + " "
	}
	return strings.Join(padded, "|")
}
