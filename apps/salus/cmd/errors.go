// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import "strconv"

// CommandError carries the exit code a command wants the process to end
// with. Without a wrapped error nothing is logged, the command already
// told the user what happened.
type CommandError struct {
	err      error
	exitCode int
}

func NewCommandError(err error, exitCode int) *CommandError {
	return &CommandError{err: err, exitCode: exitCode}
}

func (e *CommandError) Error() string {
	if e.err == nil {
		return "exit code " + strconv.Itoa(e.exitCode)
	}
	return e.err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.err
}

func (e *CommandError) ExitCode() int {
	return e.exitCode
}

func (e *CommandError) HasError() bool {
	return e.err != nil
}
