// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

// Graph bundles the rule store, variable store, and input-file registry
// that together form one generation session. The embedded-scripting
// Context (see context.go) is a thin wrapper exposing Graph's operations
// under the script-facing names from the external interface contract.
type Graph struct {
	Store  *RuleStore
	Vars   *VarStore
	Inputs *InputRegistry
}

// NewGraph builds an empty generation session.
func NewGraph() *Graph {
	return &Graph{
		Store:  NewRuleStore(),
		Vars:   NewVarStore(),
		Inputs: NewInputRegistry(),
	}
}

// InputRegistry is an ordered, de-duplicated sequence of every source
// file, directory, or config file whose change must trigger regeneration
// of the build artifact.
type InputRegistry struct {
	seen  map[string]bool
	paths []string
}

// NewInputRegistry builds an empty registry.
func NewInputRegistry() *InputRegistry {
	return &InputRegistry{seen: map[string]bool{}}
}

// Add registers path if not already present.
func (r *InputRegistry) Add(path string) {
	if r.seen[path] {
		return
	}
	r.seen[path] = true
	r.paths = append(r.paths, path)
}

// Paths returns every registered path in insertion order.
func (r *InputRegistry) Paths() []string {
	return r.paths
}
