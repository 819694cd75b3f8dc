// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WeConnect/salus/apps/salus/cmd/config"
	"github.com/WeConnect/salus/internal/logger"
)

const (
	rootCmdDesc = "salus fails builds on npm audit advisories that affect production dependencies\n"
)

func init() {
	// NOTE: we need to call this super early so the first log lines already use the compact logger
	logger.CliCompactLogger(logger.LogOutputWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// BuildRootCmd assembles a fresh command tree. Flags and viper state are
// reset on every call, so the tree can be executed repeatedly in-process.
func BuildRootCmd() *cobra.Command {
	viper.Reset()

	rootCmd := &cobra.Command{
		Use:           "salus",
		Short:         "salus CLI",
		Long:          rootCmdDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLogger()
			return initConfig()
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "Set log level: error, warn, info, debug, trace")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./"+config.DefaultConfigFile+")")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	viper.SetDefault("colors", true)

	rootCmd.AddCommand(newAuditCmd(), newReportCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the CLI and exits with the code of the failed command.
// This is called by main.main().
func Execute() {
	if err := BuildRootCmd().Execute(); err != nil {
		var cErr *CommandError
		if errors.As(err, &cErr) {
			if cErr.HasError() {
				log.Error().Msg(err.Error())
			}
			os.Exit(cErr.ExitCode())
		}

		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func initLogger() {
	// environment variables always over-write custom flags
	envLevel, ok := logger.GetEnvLogLevel()
	if ok {
		logger.Set(envLevel)
		return
	}

	// retrieve log-level from flags
	level := viper.GetString("log-level")
	if v := viper.GetBool("verbose"); v {
		level = "debug"
	}
	logger.Set(level)
}

func initConfig() error {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(strings.TrimSuffix(config.DefaultConfigFile, ".yml"))
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config")
	case errors.As(err, &notFound):
		log.Debug().Msg("no config file found, using defaults")
	default:
		return errors.Wrap(err, "could not read config file")
	}
	return nil
}
