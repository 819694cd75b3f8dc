// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"strings"
	"testing"

	"github.com/muesli/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeConnect/salus/audit"
)

func sampleAdvisories() []audit.Advisory {
	return []audit.Advisory{
		{
			ID: "100", Module: "lodash", Title: "Prototype Pollution", Severity: "high",
			URL: "https://npmjs.com/advisories/100", IsProduction: true,
		},
		{
			ID: "5", Module: "some-really-long-module-name", Title: "Regular Expression Denial of Service in foo",
			Severity: "moderate", URL: "https://npmjs.com/advisories/5", IsProduction: true, IsExcepted: true,
		},
		{
			ID: "7", Module: "minimist", Title: "Remote Code Execution", Severity: "critical",
			URL: "http://example.com/7",
		},
	}
}

func plainConfig() TableConfig {
	conf := DefaultTableConfig()
	conf.Colors = false
	return conf
}

func TestRenderTable(t *testing.T) {
	expected := strings.Join([]string{
		"=========================================================================================",
		" ID  | Module           | Title            | Sev  | URL                      | Prod | Ex ",
		"-----------------------------------------------------------------------------------------",
		" 100 | lodash           | Proto Pollution  | high | npmjs.com/advisories/100 | y    | n  ",
		" 5   | some-really-lon~ | Regex DoS in foo | mod  | npmjs.com/advisories/5   | y    | y  ",
		" 7   | minimist         | RCE              | crit | http://example.com/7     | n    | n  ",
		"=========================================================================================",
		"",
	}, "\n")

	out := RenderTable(sampleAdvisories(), plainConfig())
	assert.Equal(t, expected, out)
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, NoAdvisoriesMessage+"\n", RenderTable(nil, DefaultTableConfig()))
}

func TestRenderTable_Alignment(t *testing.T) {
	for _, colors := range []bool{false, true} {
		conf := DefaultTableConfig()
		conf.Colors = colors
		out := RenderTable(sampleAdvisories(), conf)

		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 7)
		width := ansi.PrintableRuneWidth(lines[0])
		for _, line := range lines {
			assert.Equal(t, width, ansi.PrintableRuneWidth(line), line)
		}
	}
}

func TestRenderTable_ControlCharacters(t *testing.T) {
	advisories := []audit.Advisory{
		{
			ID: "1", Module: "tab\tbed", Title: "Evil\x1b[31m\ntitle\a", Severity: "high",
			URL: "https://npmjs.com/advisories/1", IsProduction: true,
		},
		{
			ID: "2", Module: "plain", Title: "Plain title", Severity: "low",
			URL: "https://npmjs.com/advisories/2",
		},
	}

	out := RenderTable(advisories, plainConfig())
	assert.NotContains(t, out, "\x1b")
	assert.NotContains(t, out, "\t")
	assert.NotContains(t, out, "\a")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, len(lines[0]), len(line), line)
	}
	assert.Equal(t, " 1  | tab bed | Evil[31m title | high | npmjs.com/advisories/1 | y    | n  ", lines[3])
}

func TestRenderTable_Colors(t *testing.T) {
	out := RenderTable(sampleAdvisories(), DefaultTableConfig())
	lines := strings.Split(out, "\n")

	assert.Equal(t, "\x1b[31m 100 | lodash           | Proto Pollution  | high | npmjs.com/advisories/100 | y    | n  \x1b[0m", lines[3])
	assert.Equal(t, "\x1b[33m 5   | some-really-lon~ | Regex DoS in foo | mod  | npmjs.com/advisories/5   | y    | y  \x1b[0m", lines[4])
	assert.Equal(t, " 7   | minimist         | RCE              | crit | http://example.com/7     | n    | n  ", lines[5])
	for _, i := range []int{0, 1, 2, 6} {
		assert.NotContains(t, lines[i], "\x1b[")
	}
}

func TestRenderTable_Deterministic(t *testing.T) {
	first := RenderTable(sampleAdvisories(), DefaultTableConfig())
	for i := 0; i < 10; i++ {
		require.Equal(t, first, RenderTable(sampleAdvisories(), DefaultTableConfig()))
	}
}

func TestTitleAbbreviation(t *testing.T) {
	conf := DefaultTableConfig()
	assert.Equal(t, "Regex DoS in foo", conf.title("Regular Expression Denial of Service in foo"))
	assert.Equal(t, "Regex DoS in fo~", conf.title("Regular Expression Denial of Service in foo2"))
	assert.Equal(t, "RCE", conf.title("Remote Code Execution"))
	assert.Equal(t, "Sandbox Breakout", conf.title("Sandbox Breakout"))
	assert.Equal(t, "sixteen-chars-ok", conf.module("sixteen-chars-ok"))

	conf.MaxTitleLength = 8
	assert.Equal(t, "Regex D~", conf.title("Regular Expression Denial of Service"))
}

func TestTruncation(t *testing.T) {
	conf := DefaultTableConfig()
	conf.MaxModuleLength = 5
	conf.MaxTitleLength = 4

	for _, s := range []string{"", "a", "abcd", "abcde", "abcdef", "a-very-long-module"} {
		m := conf.module(s)
		assert.LessOrEqual(t, len(m), 5)
		if len(s) > 5 {
			assert.True(t, strings.HasSuffix(m, "~"), m)
			assert.Equal(t, s[:4], m[:4])
		} else {
			assert.Equal(t, s, m)
		}

		title := conf.title(s)
		assert.LessOrEqual(t, len(title), 4)
		if len(s) > 4 {
			assert.True(t, strings.HasSuffix(title, "~"), title)
		}
	}

	conf.MaxModuleLength = 1
	assert.Equal(t, "~", conf.module("lodash"))
}

func TestSeverityAndURL(t *testing.T) {
	conf := DefaultTableConfig()
	assert.Equal(t, "crit", conf.severity("critical"))
	assert.Equal(t, "mod", conf.severity("moderate"))
	assert.Equal(t, "high", conf.severity("high"))
	assert.Equal(t, "unheard-of", conf.severity("unheard-of"))

	cells := conf.cells(audit.Advisory{ID: "1", URL: "https://https://x"})
	assert.Equal(t, "https://x", cells[4])
	cells = conf.cells(audit.Advisory{ID: "1", URL: "HTTPS://x"})
	assert.Equal(t, "HTTPS://x", cells[4])
}

func TestDefaultTableConfig_Copies(t *testing.T) {
	conf := DefaultTableConfig()
	conf.Headings[0] = "Advisory"
	conf.SeverityAbbreviations["high"] = "hi"
	conf.TitleSubstitutions[0].Replacement = "RE"

	fresh := DefaultTableConfig()
	assert.Equal(t, "ID", fresh.Headings[0])
	assert.NotContains(t, fresh.SeverityAbbreviations, "high")
	assert.Equal(t, "Regex", fresh.TitleSubstitutions[0].Replacement)

	// custom headings are used when they cover every column
	out := RenderTable(sampleAdvisories()[:1], conf)
	assert.Contains(t, out, " Advisory |")
	assert.Contains(t, out, "| hi ")
}
