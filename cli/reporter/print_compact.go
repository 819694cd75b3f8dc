// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/WeConnect/salus/audit"
)

// renderCompact prints a borderless table, the cells are abbreviated the
// same way as in the full table.
func renderCompact(res *audit.Result, conf TableConfig) string {
	if len(res.Advisories) == 0 {
		return NoAdvisoriesMessage + "\n"
	}

	b := &strings.Builder{}
	table := tablewriter.NewWriter(b)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetRowLine(false)
	table.SetColumnSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(conf.headings())

	for i := range res.Advisories {
		advisory := res.Advisories[i]
		cells := conf.cells(advisory)
		color := conf.rowColor(advisory)
		for j := range cells {
			cells[j] = conf.colorize(cells[j], color)
		}
		table.Append(cells)
	}
	table.Render()
	return b.String()
}
