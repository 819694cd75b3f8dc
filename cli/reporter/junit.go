// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/jstemmer/go-junit-report/v2/junit"

	"github.com/WeConnect/salus/audit"
)

// ResultToJunit maps every advisory to a test case. Failing advisories
// are failures, all others are skipped with the reason they do not count.
// Extraneous exceptions end up in their own suite.
func ResultToJunit(res *audit.Result, out io.Writer) error {
	suites := junit.Testsuites{}

	properties := []junit.Property{
		{Name: "passed", Value: strconv.FormatBool(res.Passed())},
	}
	ts := junit.Testsuite{
		Name:       "npm audit",
		Time:       "",
		Properties: &properties,
		Testcases:  []junit.Testcase{},
	}

	for i := range res.Advisories {
		a := res.Advisories[i]
		ts.Tests++
		testCase := junit.Testcase{
			Classname: a.Module,
			Name:      a.ID + ": " + a.Title,
			Time:      "",
		}

		switch {
		case a.IsFailing():
			testCase.Failure = &junit.Result{
				Message: a.Severity + " severity advisory in production dependency " + a.Module,
				Type:    "fail",
				Data:    a.URL,
			}
			ts.Failures++
		case a.IsExcepted:
			testCase.Skipped = &junit.Result{Message: "excepted"}
			ts.Skipped++
		default:
			testCase.Skipped = &junit.Result{Message: "development dependency"}
			ts.Skipped++
		}
		ts.Testcases = append(ts.Testcases, testCase)
	}
	suites.Suites = append(suites.Suites, ts)

	if res.HasExtraneousExceptions() {
		exceptions := junit.Testsuite{
			Name:      "exceptions",
			Time:      "",
			Testcases: []junit.Testcase{},
		}
		add := func(ids []string, msg string) {
			for _, id := range ids {
				exceptions.Tests++
				exceptions.Skipped++
				exceptions.Testcases = append(exceptions.Testcases, junit.Testcase{
					Classname: "exception",
					Name:      id,
					Skipped:   &junit.Result{Message: msg},
				})
			}
		}
		add(res.ExtraneousExceptions, "no matching advisory")
		add(res.ExtraneousDevExceptions, "only matches dev dependency advisories")
		suites.Suites = append(suites.Suites, exceptions)
	}

	// to xml
	data, err := xml.MarshalIndent(suites, "", "\t")
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}

