// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/WeConnect/salus/apps/salus/cmd/config"
	"github.com/WeConnect/salus/audit"
	"github.com/WeConnect/salus/cli/reporter"
	"github.com/WeConnect/salus/internal/logger"
)

// gate flags are shared between audit and report
func addGateFlags(flags *pflag.FlagSet) {
	flags.StringSlice("exception", nil, "Advisory IDs that must not fail the build")
	flags.Int("max-module-length", reporter.DefaultMaxModuleLength, "Truncate module names longer than this")
	flags.Int("max-title-length", reporter.DefaultMaxTitleLength, "Truncate titles longer than this")
	flags.Bool("no-color", false, "Disable colored table rows")
	flags.StringP("output", "o", "full", "Set output format: "+reporter.AllFormats())
	flags.String("output-target", "", "Write the report to this file instead of stdout")
	flags.Bool("strict", false, "Reject reports with duplicate advisory IDs")
}

// bindGateFlags has to run in PreRun, both commands bind the same keys
func bindGateFlags(flags *pflag.FlagSet) {
	viper.BindPFlag("exception", flags.Lookup("exception"))
	viper.BindPFlag("max_module_length", flags.Lookup("max-module-length"))
	viper.BindPFlag("max_title_length", flags.Lookup("max-title-length"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("output_target", flags.Lookup("output-target"))
	viper.BindPFlag("strict", flags.Lookup("strict"))
	viper.BindPFlag("no_color", flags.Lookup("no-color"))
}

func loadConfig() (*config.CliConfig, error) {
	conf, err := config.ReadConfig()
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// runGate classifies the advisories, writes the report and turns a failed
// verdict into exit code 1.
func runGate(cmd *cobra.Command, conf *config.CliConfig, records []audit.RawAdvisory) error {
	var opts []audit.ClassifyOption
	if conf.Strict {
		opts = append(opts, audit.WithStrictIDs())
	}
	res, err := audit.Classify(records, conf.ActiveExceptions(time.Now()), opts...)
	if err != nil {
		return err
	}
	logger.DebugDumpJSON("classification", res)

	out := cmd.OutOrStdout()

	table := reporter.DefaultTableConfig()
	table.MaxModuleLength = conf.MaxModuleLength
	table.MaxTitleLength = conf.MaxTitleLength
	table.Colors = colorsEnabled(conf, out)

	handler, err := reporter.NewOutputHandler(reporter.HandlerConfig{
		Format:       conf.Output,
		OutputTarget: conf.OutputTarget,
		Table:        table,
	}, afero.NewOsFs(), out)
	if err != nil {
		return err
	}
	if err := handler.WriteReport(cmd.Context(), res); err != nil {
		return err
	}

	if !res.Passed() {
		log.Debug().Strs("failing", res.FailingIDs).Msg("build failed")
		return NewCommandError(nil, 1)
	}
	return nil
}

func colorsEnabled(conf *config.CliConfig, out io.Writer) bool {
	if !conf.Colors || conf.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return logger.IsTerminal(out)
}
