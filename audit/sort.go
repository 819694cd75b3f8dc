// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package audit

import "sort"

// ByPriority orders advisories the way humans scan a report: advisories
// that fail the build first, then by ascending id.
type ByPriority []Advisory

func (s ByPriority) Len() int {
	return len(s)
}

func (s ByPriority) Less(i, j int) bool {
	pi, pj := priority(s[i]), priority(s[j])
	if pi != pj {
		return pi < pj
	}
	return newIDKey(s[i].ID).less(newIDKey(s[j].ID))
}

func (s ByPriority) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func priority(a Advisory) int {
	if a.IsFailing() {
		return 0
	}
	return 1
}

// SortAdvisories sorts in place. Advisories with equal keys keep their
// relative order.
func SortAdvisories(advisories []Advisory) {
	sort.Stable(ByPriority(advisories))
}
