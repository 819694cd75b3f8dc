// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package npmaudit

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/WeConnect/salus/audit"
	"github.com/WeConnect/salus/audit/npm"
)

const DefaultTimeout = 10 * time.Minute

// Auditor runs `npm audit --json` in a project directory.
type Auditor struct {
	Fs      afero.Fs
	Runner  CommandRunner
	Timeout time.Duration
}

func NewAuditor() *Auditor {
	return &Auditor{
		Fs:      afero.NewOsFs(),
		Runner:  ExecRunner{},
		Timeout: DefaultTimeout,
	}
}

// prepare applies the timeout and makes sure a lockfile exists until the
// returned cleanup is called.
func (a *Auditor) prepare(ctx context.Context, dir string) (context.Context, func(), error) {
	cancel := func() {}
	if a.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
	}

	removeLockfile, err := EnsureLockfile(ctx, a.Fs, a.Runner, dir)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return ctx, func() {
		removeLockfile()
		cancel()
	}, nil
}

// Run returns the raw JSON report.
func (a *Auditor) Run(ctx context.Context, dir string) ([]byte, error) {
	ctx, cleanup, err := a.prepare(ctx, dir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return a.audit(ctx, dir)
}

// Advisories runs npm audit and parses the report. Reports of npm 7 and
// later carry no dev flag, so a second run with --omit=dev tells which
// advisories are only reachable through dev dependencies.
func (a *Auditor) Advisories(ctx context.Context, dir string) ([]audit.RawAdvisory, error) {
	ctx, cleanup, err := a.prepare(ctx, dir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	data, err := a.audit(ctx, dir)
	if err != nil {
		return nil, err
	}
	records, err := npm.ParseReport(data)
	if err != nil {
		return nil, err
	}
	if npm.ReportVersion(data) < 2 || len(records) == 0 {
		return records, nil
	}

	prodData, err := a.audit(ctx, dir, "--omit=dev")
	if err != nil {
		return nil, errors.Wrap(err, "could not determine production advisories")
	}
	production, err := npm.ParseReport(prodData)
	if err != nil {
		return nil, errors.Wrap(err, "could not determine production advisories")
	}
	return npm.MarkDevOnly(records, production), nil
}

// audit runs npm audit once. npm exits with 1 whenever it finds
// advisories, so that exit code is only an error if nothing was printed.
func (a *Auditor) audit(ctx context.Context, dir string, extraArgs ...string) ([]byte, error) {
	args := append([]string{"audit", "--json"}, extraArgs...)
	res, err := a.Runner.Run(ctx, dir, "npm", args...)
	log.Debug().
		Str("dir", dir).
		Strs("args", args).
		Dur("duration", res.Duration).
		Int("exit_code", res.ExitCode).
		Msg("ran npm audit")

	switch {
	case res.ExitCode == ExitCodeTimeout:
		return nil, errors.Newf("npm audit timed out after %s", a.Timeout)
	case res.ExitCode == ExitCodeNotFound:
		return nil, errors.New("npm executable not found in PATH")
	case res.ExitCode > 1, strings.TrimSpace(res.Stdout) == "":
		if err == nil {
			err = errors.New("no output")
		}
		return nil, errors.Wrapf(err, "npm audit failed (exit code %d): %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return []byte(res.Stdout), nil
}
