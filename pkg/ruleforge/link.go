// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import "strings"

// RuleAddLink designates rule as a library alias whose effective linker
// inputs are items (which may include file paths and raw linker switches
// beginning with "-").
func RuleAddLink(rule *Rule, items ...string) {
	rule.IsPhony = true
	if rule.LinkInputs == nil {
		rule.LinkInputs = []string{}
	}
	for _, item := range items {
		rule.LinkInputs = pushUniqueLast(rule.LinkInputs, item)
	}
}

// RuleFlattenAliases expands every phony-and-not-link-alias rule in items
// to its inputs, recursively, cycle-safe via a visited set. Items that
// aren't rule names (e.g. "-lfoo") pass through unchanged.
func (g *Graph) RuleFlattenAliases(items []string) []string {
	visited := map[string]bool{}
	var out []string
	var walk func(item string)
	walk = func(item string) {
		rule := g.Store.Lookup(item)
		if rule == nil || rule.IsAlias() || !rule.IsPhony {
			out = append(out, item)
			return
		}
		if visited[item] {
			return
		}
		visited[item] = true
		for _, in := range rule.Inputs {
			walk(in)
		}
	}
	for _, item := range items {
		walk(item)
	}
	return out
}

// RuleGetLinkInputs expands each item: if it names an alias rule, emits
// that rule's LinkInputs in order; otherwise emits the item itself. The
// result is de-duplicated keeping the *last* occurrence (push-unique-last),
// which is what makes linker argument ordering correct.
func (g *Graph) RuleGetLinkInputs(items []string) []string {
	var out []string
	for _, item := range items {
		rule := g.Store.Lookup(item)
		if rule != nil && rule.IsAlias() {
			for _, in := range rule.LinkInputs {
				out = pushUniqueLast(out, in)
			}
			continue
		}
		out = pushUniqueLast(out, item)
	}
	return out
}

// RuleGetInputs returns rule's inputs run through RuleGetLinkInputs.
func (g *Graph) RuleGetInputs(rule *Rule) []string {
	return g.RuleGetLinkInputs(rule.Inputs)
}

// isLinkerSwitch reports whether item is a raw linker flag rather than a
// dependency path (effective-inputs filtering in the emitters drops these).
func isLinkerSwitch(item string) bool {
	return strings.HasPrefix(item, "-")
}
