// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package audit

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedAdvisory is returned when a raw advisory lacks a required field.
	ErrMalformedAdvisory = errors.New("malformed advisory")
	// ErrDuplicateAdvisoryID is only returned in strict mode, see WithStrictIDs.
	ErrDuplicateAdvisoryID = errors.New("duplicate advisory id")
)
