// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/WeConnect/salus/audit/npm"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file|->",
		Short: "Evaluate a saved npm audit report",
		Long: `Evaluate the JSON output of "npm audit --json" that was captured earlier.
Use "-" to read the report from stdin.`,
		Args: cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindGateFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := readReport(cmd, afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			records, err := npm.ParseReport(data)
			if err != nil {
				return err
			}
			return runGate(cmd, conf, records)
		},
	}
	addGateFlags(cmd.Flags())
	return cmd
}

func readReport(cmd *cobra.Command, fs afero.Fs, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "could not read report from stdin")
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read report")
	}
	return data, nil
}
