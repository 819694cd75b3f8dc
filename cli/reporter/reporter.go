// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"

	"github.com/WeConnect/salus/audit"
)

type PrintConfig struct {
	Format Format
	Table  TableConfig
}

// Reporter renders a classified audit report in one of the Formats.
type Reporter struct {
	conf *PrintConfig
	out  io.Writer
}

func NewReporter(conf *PrintConfig, out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{conf: conf, out: out}
}

// WriteReport renders the whole report in memory first and hands it to
// the writer in a single call, so nothing is printed if rendering fails.
func (r *Reporter) WriteReport(ctx context.Context, res *audit.Result) error {
	if res == nil {
		return errors.New("report cannot be empty")
	}

	data, err := r.render(res)
	if err != nil {
		return err
	}
	_, err = r.out.Write(data)
	return err
}

func (r *Reporter) render(res *audit.Result) ([]byte, error) {
	switch r.conf.Format {
	case Full:
		return []byte(RenderTable(res.Advisories, r.conf.Table) + RenderSummary(res)), nil
	case Compact:
		return []byte(renderCompact(res, r.conf.Table) + RenderSummary(res)), nil
	case Summary:
		return []byte(renderStats(res) + RenderSummary(res)), nil
	case JSON:
		return ResultToJSON(res)
	case YAML:
		raw, err := ResultToJSON(res)
		if err != nil {
			return nil, err
		}
		return yaml.JSONToYAML(raw)
	case CSV:
		buf := bytes.Buffer{}
		err := ResultToCSV(res, &buf)
		return buf.Bytes(), err
	case JUnit:
		buf := bytes.Buffer{}
		err := ResultToJunit(res, &buf)
		return buf.Bytes(), err
	case SARIF:
		return ResultToSarif(res)
	default:
		return nil, errors.New("unknown reporter type, don't recognize this Format")
	}
}
