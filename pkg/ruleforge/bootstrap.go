// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	"fmt"
	"os"
	"strings"
)

const cleanLineBudget = 120

// BootstrapOptions configures the housekeeping rules added before an
// emitter walks the store.
type BootstrapOptions struct {
	ArtifactPath string // output of the self-rebuild rule, e.g. "Makefile"
	DriverPath   string // the tool's own executable
	EntryScript  string // the user's entry script, e.g. "Rules.go"
}

// PhonyTarget is the conventional output name an emitter uses to declare
// its housekeeping phony-target list (".PHONY" for the classic runner; the
// modern runner and shell script don't need a literal target for it, but
// the rule's Inputs list is still the authoritative phony-target set).
const PhonyTarget = ".PHONY"

// Bootstrap runs the verifier, then adds the self-rebuild rule, the clean
// rule, and the phony collector, in that order. The verifier runs first
// because the self-rebuild step binds a bare rule to every input. Hash
// markers must already have been added (via AddHashMarkers) so the
// bootstrap rules themselves are not hashed.
func (g *Graph) Bootstrap(opts BootstrapOptions) *Error {
	g.verify()
	if err := g.addSelfRebuild(opts); err != nil {
		return err
	}
	g.addCleanRule()
	g.addPhonyCollector()
	return nil
}

func (g *Graph) addSelfRebuild(opts BootstrapOptions) *Error {
	inputs := append([]string{}, g.Inputs.Paths()...)
	inputs = orderedAppendUnique(inputs, opts.DriverPath)

	var cmdParts []string
	cmdParts = append(cmdParts, opts.DriverPath)
	for _, ov := range g.Vars.UserOverrides() {
		cmdParts = append(cmdParts, fmt.Sprintf("%s=%s", ov.Name, shellQuote(ov.Value)))
	}
	cmd := "@" + strings.Join(cmdParts, " ")

	_, err := g.Generate([]string{opts.ArtifactPath}, inputs, cmd)
	if err != nil {
		return err
	}
	rule := g.Store.Lookup(opts.ArtifactPath)
	rule.IsPrecious = true

	for _, in := range inputs {
		if g.Store.Lookup(in) == nil {
			if _, err := g.Generate([]string{in}, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func (g *Graph) addCleanRule() {
	var targets []string
	for _, r := range g.Store.Rules() {
		if r.IsPrecious || r.IsPhony {
			continue
		}
		targets = append(targets, r.Outputs...)
	}

	var commands []string
	var line string
	chunkCount := 0
	flush := func() {
		if line == "" {
			return
		}
		commands = append(commands, "-@rm -f "+line)
		line = ""
		chunkCount++
		if chunkCount%100 == 0 {
			commands = append(commands, fmt.Sprintf("@echo cleaned %d batches", chunkCount))
		}
	}
	for _, t := range targets {
		candidate := t
		if line != "" {
			candidate = line + " " + t
		}
		if len(candidate) > cleanLineBudget {
			flush()
			line = t
		} else {
			line = candidate
		}
	}
	flush()

	rule := &Rule{
		Outputs:  []string{"clean"},
		IsPhony:  true,
		Commands: commands,
	}
	g.Store.bind("clean", rule)
}

func (g *Graph) addPhonyCollector() {
	var targets []string
	for _, r := range g.Store.Rules() {
		if r.IsPhony && len(r.Outputs) > 0 {
			targets = append(targets, r.Outputs[0])
		}
	}
	rule := &Rule{
		Outputs: []string{PhonyTarget},
		Inputs:  targets,
		IsPhony: true,
	}
	g.Store.bind(PhonyTarget, rule)
}

// verify warns on standard error for every registered input file that is
// neither generated by the graph nor present on the filesystem.
func (g *Graph) verify() {
	for _, in := range g.Inputs.Paths() {
		if g.Store.Lookup(in) != nil {
			continue
		}
		if _, err := os.Stat(in); err != nil {
			L.Warnf("input %q is neither generated nor present on disk", in)
		}
	}
}
