// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogOutputWriter is where CLI logs go. Reports are written to stdout,
// so logs must never end up there.
var LogOutputWriter io.Writer = os.Stderr

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewConsoleWriter returns a human friendly zerolog writer. Compact mode
// drops the timestamp.
func NewConsoleWriter(out io.Writer, compact bool) zerolog.ConsoleWriter {
	w := zerolog.ConsoleWriter{
		Out:     out,
		NoColor: !IsTerminal(out) || os.Getenv("NO_COLOR") != "",
	}
	if compact {
		w.FormatTimestamp = func(i interface{}) string { return "" }
		w.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	return w
}

// CliCompactLogger sets the global logger to a compact console writer.
func CliCompactLogger(out io.Writer) {
	log.Logger = log.Output(NewConsoleWriter(out, true))
}

// Set configures the global log level. Unknown levels fall back to info.
func Set(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// GetEnvLogLevel reads DEBUG and TRACE from the environment. Both take
// precedence over flags.
func GetEnvLogLevel() (string, bool) {
	if isEnvSet("TRACE") {
		return "trace", true
	}
	if isEnvSet("DEBUG") {
		return "debug", true
	}
	return "", false
}

func isEnvSet(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

// DebugDumpJSON logs obj as JSON on trace level.
func DebugDumpJSON(name string, obj interface{}) {
	if zerolog.GlobalLevel() > zerolog.TraceLevel {
		return
	}
	data, err := json.Marshal(obj)
	if err != nil {
		log.Trace().Err(err).Str("name", name).Msg("could not dump debug data")
		return
	}
	log.Trace().RawJSON(name, data).Msg("debug dump")
}
