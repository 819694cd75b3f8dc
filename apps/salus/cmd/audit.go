// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WeConnect/salus/internal/npmaudit"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [dir]",
		Short: "Run npm audit and fail on production advisories",
		Long: `Run "npm audit" in the given project directory (default: current directory)
and fail when advisories affect production dependencies that are not excepted.
A missing package-lock.json is generated for the run and removed afterwards.
With npm 7 and later a second run with --omit=dev detects dev-only advisories.`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindGateFlags(cmd.Flags())
			viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			auditor := npmaudit.NewAuditor()
			auditor.Timeout = conf.Timeout
			records, err := auditor.Advisories(cmd.Context(), dir)
			if err != nil {
				return err
			}
			return runGate(cmd, conf, records)
		},
	}
	addGateFlags(cmd.Flags())
	cmd.Flags().Duration("timeout", npmaudit.DefaultTimeout, "Abort npm when it runs longer than this")
	return cmd
}
