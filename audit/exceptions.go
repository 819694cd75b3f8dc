// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package audit

import (
	"fmt"
	"sort"
	"strings"
)

// ExceptionSet holds the advisory ids that must not fail the build.
// It is read-only once constructed and safe for concurrent use.
type ExceptionSet struct {
	ids    []string
	lookup map[string]struct{}
}

// NewExceptionSet normalizes the given ids. Surrounding whitespace is
// trimmed, empty ids are dropped and duplicates collapsed.
func NewExceptionSet(ids ...string) *ExceptionSet {
	set := &ExceptionSet{
		ids:    make([]string, 0, len(ids)),
		lookup: make(map[string]struct{}, len(ids)),
	}
	for i := range ids {
		id := strings.TrimSpace(ids[i])
		if id == "" {
			continue
		}
		if _, ok := set.lookup[id]; ok {
			continue
		}
		set.lookup[id] = struct{}{}
		set.ids = append(set.ids, id)
	}

	sort.SliceStable(set.ids, func(i, j int) bool {
		return CompareIDs(set.ids[i], set.ids[j]) < 0
	})
	return set
}

// ExceptionSetFromTokens accepts any values with a string form, e.g. the
// integers a YAML config decodes advisory ids into.
func ExceptionSetFromTokens(tokens []interface{}) *ExceptionSet {
	ids := make([]string, 0, len(tokens))
	for i := range tokens {
		if tokens[i] == nil {
			continue
		}
		ids = append(ids, fmt.Sprint(tokens[i]))
	}
	return NewExceptionSet(ids...)
}

// Contains reports whether id is excepted. A nil set contains nothing.
func (s *ExceptionSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.lookup[id]
	return ok
}

// IDs returns a copy of all ids in report order.
func (s *ExceptionSet) IDs() []string {
	if s == nil {
		return nil
	}
	res := make([]string, len(s.ids))
	copy(res, s.ids)
	return res
}

func (s *ExceptionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}
