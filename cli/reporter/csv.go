// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/WeConnect/salus/audit"
)

type csvStruct struct {
	ID         string
	Module     string
	Title      string
	Severity   string
	URL        string
	Production string
	Excepted   string
	Failing    string
}

func (c csvStruct) toSlice() []string {
	return []string{c.ID, c.Module, c.Title, c.Severity, c.URL, c.Production, c.Excepted, c.Failing}
}

// ResultToCSV writes one line per advisory, without any abbreviation.
func ResultToCSV(res *audit.Result, out io.Writer) error {
	w := csv.NewWriter(out)

	// write header
	err := w.Write(csvStruct{
		"ID",
		"Module",
		"Title",
		"Severity",
		"URL",
		"Production",
		"Excepted",
		"Failing",
	}.toSlice())
	if err != nil {
		return err
	}

	for i := range res.Advisories {
		a := res.Advisories[i]
		err := w.Write(csvStruct{
			ID:         a.ID,
			Module:     a.Module,
			Title:      a.Title,
			Severity:   a.Severity,
			URL:        a.URL,
			Production: strconv.FormatBool(a.IsProduction),
			Excepted:   strconv.FormatBool(a.IsExcepted),
			Failing:    strconv.FormatBool(a.IsFailing()),
		}.toSlice())
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
