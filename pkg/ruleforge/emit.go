// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	"os"
	"sort"
	"strings"
)

// sortedRules returns every distinct rule in descending priority order,
// ties broken by lexical first-output name — the deterministic emission
// order every emitter shares.
func (g *Graph) sortedRules() []*Rule {
	rules := append([]*Rule{}, g.Store.Rules()...)
	sort.SliceStable(rules, func(i, j int) bool {
		ri, rj := rules[i], rules[j]
		if ri.Priority != rj.Priority {
			return ri.Priority > rj.Priority
		}
		oi, oj := "", ""
		if len(ri.Outputs) > 0 {
			oi = ri.Outputs[0]
		}
		if len(rj.Outputs) > 0 {
			oj = rj.Outputs[0]
		}
		return oi < oj
	})
	return rules
}

// effectiveInputs computes a rule's dependency list for emission: link
// aliases flattened through rule_get_inputs for non-phony rules, raw
// inputs for phony rules, with items starting with "-" (linker switches)
// dropped in both cases since they aren't filesystem dependencies.
func (g *Graph) effectiveInputs(r *Rule) []string {
	var raw []string
	if r.IsPhony {
		raw = r.Inputs
	} else {
		raw = g.RuleGetInputs(r)
	}
	out := make([]string, 0, len(raw))
	for _, in := range raw {
		if isLinkerSwitch(in) {
			continue
		}
		out = append(out, in)
	}
	return out
}

// joinCommands implements §4.9: concatenate commands into a single
// pipeline string. Ignorable commands (leading "-") join with ";", strict
// commands join with "&&". The leading "@" silent marker is stripped. A
// trailing ";" joiner closes with "true"; a trailing "&&" joiner is
// dropped.
func joinCommands(commands []string) string {
	if len(commands) == 0 {
		return ""
	}
	var b strings.Builder
	for _, cmd := range commands {
		ignorable := strings.HasPrefix(cmd, "-")
		body := strings.TrimPrefix(cmd, "-")
		body = strings.TrimPrefix(body, "@")
		b.WriteString(body)
		if ignorable {
			b.WriteString(" ; ")
		} else {
			b.WriteString(" && ")
		}
	}
	s := b.String()
	if strings.HasSuffix(s, " ; ") {
		s = strings.TrimSuffix(s, " ; ") + " ; true"
	} else if strings.HasSuffix(s, " && ") {
		s = strings.TrimSuffix(s, " && ")
	}
	return s
}

// atomicWrite writes content to path via a ".new" temp file, then renames
// it into place, so an aborted run never leaves a half-written artifact.
func atomicWrite(path, content string) *Error {
	tmp := path + ".new"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return WrapIO(tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return WrapIO(path, err)
	}
	return nil
}

// dotDOutputs returns the subset of r.Outputs ending in ".d".
func dotDOutputs(r *Rule) []string {
	var out []string
	for _, o := range r.Outputs {
		if strings.HasSuffix(o, ".d") {
			out = append(out, o)
		}
	}
	return out
}

// nonDotDOutputs returns the subset of r.Outputs not ending in ".d".
func nonDotDOutputs(r *Rule) []string {
	var out []string
	for _, o := range r.Outputs {
		if !strings.HasSuffix(o, ".d") {
			out = append(out, o)
		}
	}
	return out
}
