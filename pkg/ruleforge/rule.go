// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

// Rule is a node declaring that a set of output paths is produced from a
// set of input paths by running a sequence of already-expanded commands.
type Rule struct {
	Outputs     []string
	Inputs      []string
	Commands    []string
	IsDirectory bool
	Priority    int
	Comments    []string
	Info        string
	IsPhony     bool
	IsPrecious  bool
	LinkInputs  []string // nil means "not an alias"; non-nil (even empty) means alias.
	emitted     bool
}

// IsAlias reports whether the rule is a library alias (LinkInputs set).
func (r *Rule) IsAlias() bool {
	return r.LinkInputs != nil
}

func (r *Rule) hasOutput(name string) bool {
	for _, o := range r.Outputs {
		if o == name {
			return true
		}
	}
	return false
}

// orderedAppendUnique appends v to list if it is not already present,
// preserving insertion order.
func orderedAppendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// pushUniqueLast removes any prior occurrence of v in list, then appends
// it. This is distinct from orderedAppendUnique and is used for linker
// ordering, where later duplicates must satisfy earlier references.
func pushUniqueLast(list []string, v string) []string {
	out := make([]string, 0, len(list)+1)
	for _, existing := range list {
		if existing != v {
			out = append(out, existing)
		}
	}
	return append(out, v)
}

// RuleStore is the set of rules keyed by output name.
type RuleStore struct {
	byOutput map[string]*Rule
	all      []*Rule // insertion order, for deterministic iteration fallback
}

// NewRuleStore builds an empty rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{byOutput: map[string]*Rule{}}
}

// Lookup returns the rule bound to name, or nil.
func (s *RuleStore) Lookup(name string) *Rule {
	return s.byOutput[name]
}

// bind records that name maps to r, registering r in the arena if new.
func (s *RuleStore) bind(name string, r *Rule) {
	if _, ok := s.byOutput[name]; !ok {
		found := false
		for _, existing := range s.all {
			if existing == r {
				found = true
				break
			}
		}
		if !found {
			s.all = append(s.all, r)
		}
	}
	s.byOutput[name] = r
}

// Rules returns every distinct rule in insertion order.
func (s *RuleStore) Rules() []*Rule {
	return s.all
}

// resetEmitted clears the transient emitted flag on every rule, for a
// fresh emission pass.
func (s *RuleStore) resetEmitted() {
	for _, r := range s.all {
		r.emitted = false
	}
}
