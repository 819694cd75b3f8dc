// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/WeConnect/salus/audit"
)

type localFileHandler struct {
	fs   afero.Fs
	file string
	conf *PrintConfig
}

// we reuse the Reporter by simply pointing the writer towards a file
// instead of stdout
func (h *localFileHandler) WriteReport(ctx context.Context, res *audit.Result) error {
	trimmedFile := strings.TrimPrefix(h.file, "file://")
	f, err := h.fs.Create(trimmedFile)
	if err != nil {
		return err
	}
	defer f.Close() //nolint: errcheck

	err = NewReporter(h.conf, f).WriteReport(ctx, res)
	if err != nil {
		return err
	}
	log.Info().Str("file", trimmedFile).Msg("wrote report to file")
	return nil
}
