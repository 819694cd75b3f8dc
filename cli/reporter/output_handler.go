// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/WeConnect/salus/audit"
)

type HandlerConfig struct {
	Format       string
	OutputTarget string
	Table        TableConfig
}

type OutputTarget byte

const (
	CLI OutputTarget = iota + 1
	LOCAL_FILE
)

type OutputHandler interface {
	WriteReport(ctx context.Context, res *audit.Result) error
}

// NewOutputHandler picks the handler for the configured target. The CLI
// handler writes to out, file targets are created on fs.
func NewOutputHandler(config HandlerConfig, fs afero.Fs, out io.Writer) (OutputHandler, error) {
	format, ok := Formats[strings.ToLower(config.Format)]
	if !ok {
		return nil, errors.New("unknown output format '" + config.Format + "'. Available: " + AllFormats())
	}
	conf := &PrintConfig{Format: format, Table: config.Table}

	typ := determineOutputType(config.OutputTarget)
	switch typ {
	case LOCAL_FILE:
		// files never get escape codes
		conf.Table.Colors = false
		return &localFileHandler{fs: fs, file: config.OutputTarget, conf: conf}, nil
	case CLI:
		fallthrough
	default:
		return NewReporter(conf, out), nil
	}
}

// determines the output type based on the provided string, everything but
// an empty target is a file
func determineOutputType(target string) OutputTarget {
	// we fall back to CLI reporting, default behavior
	if target == "" {
		return CLI
	}
	return LOCAL_FILE
}
