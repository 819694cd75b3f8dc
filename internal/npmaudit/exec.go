// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package npmaudit

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	ExitCodeTimeout  = 124
	ExitCodeNotFound = 127
)

// Result holds the outcome of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
	ExitCode int
}

type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (Result, error)
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct{}

// Run executes the command in dir and captures its output and duration.
// Timeouts are reported with ExitCodeTimeout, a missing binary with
// ExitCodeNotFound.
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.ExitCode = ExitCodeTimeout
	case errors.Is(err, exec.ErrNotFound):
		res.ExitCode = ExitCodeNotFound
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = 1
	}
	return res, err
}
