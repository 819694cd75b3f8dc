// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package npmaudit

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	LockfileName = "package-lock.json"
	manifestName = "package.json"
)

// EnsureLockfile makes sure dir has a package-lock.json, since npm audit
// refuses to run without one. A lockfile created here is removed again by
// the returned cleanup function, an existing one is never touched.
func EnsureLockfile(ctx context.Context, fs afero.Fs, runner CommandRunner, dir string) (func(), error) {
	noop := func() {}
	lockfile := filepath.Join(dir, LockfileName)

	exists, err := afero.Exists(fs, lockfile)
	if err != nil {
		return noop, errors.Wrap(err, "could not check for "+LockfileName)
	}
	if exists {
		return noop, nil
	}

	hasManifest, err := afero.Exists(fs, filepath.Join(dir, manifestName))
	if err != nil {
		return noop, errors.Wrap(err, "could not check for "+manifestName)
	}
	if !hasManifest {
		return noop, errors.Newf("no %s found in %s", manifestName, dir)
	}

	log.Debug().Str("dir", dir).Msg("no lockfile found, generating a temporary one")
	res, err := runner.Run(ctx, dir, "npm", "install", "--package-lock-only", "--ignore-scripts")
	if err != nil {
		return noop, errors.Wrapf(err, "failed to generate %s (exit code %d): %s", LockfileName, res.ExitCode, res.Stderr)
	}

	cleanup := func() {
		if err := fs.Remove(lockfile); err != nil {
			log.Warn().Err(err).Str("file", lockfile).Msg("could not remove temporary lockfile")
			return
		}
		log.Debug().Str("file", lockfile).Msg("removed temporary lockfile")
	}
	return cleanup, nil
}
