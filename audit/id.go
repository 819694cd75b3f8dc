// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package audit

import "strconv"

// idKey is the sort key of an advisory id. Ids that parse as base-10
// integers sort first by value, all others follow ordered by their raw text.
type idKey struct {
	numeric bool
	value   int64
	raw     string
}

func newIDKey(id string) idKey {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return idKey{raw: id}
	}
	return idKey{numeric: true, value: v, raw: id}
}

func (k idKey) less(o idKey) bool {
	if k.numeric != o.numeric {
		return k.numeric
	}
	if k.numeric {
		return k.value < o.value
	}
	return k.raw < o.raw
}

// CompareIDs orders advisory ids the same way exceptions and advisories
// are ordered in reports. It returns -1, 0 or 1.
func CompareIDs(a, b string) int {
	ka, kb := newIDKey(a), newIDKey(b)
	switch {
	case ka.less(kb):
		return -1
	case kb.less(ka):
		return 1
	}
	return 0
}
