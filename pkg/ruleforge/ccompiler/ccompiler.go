// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ccompiler is the compilation helper layer: default C/C++/
// assembler tool registration, object-file naming, static-library
// archiving, and automatic linker selection — a thin layer on top of
// pkg/ruleforge, built the way a RuleBuilderCommand accumulates flags,
// inputs, and outputs onto one rule-graph call.
package ccompiler

import (
	"strconv"
	"strings"

	"github.com/cassite-labs/ruleforge/pkg/ruleforge"
)

// ToolsetOptions seeds the default tool variables; zero values fall back
// to the conventional tool names.
type ToolsetOptions struct {
	CC, CXX, AS, AR string
}

// Toolset registers CC/CXX/AS/AR variables and exposes the Object/
// Archive/Program rule constructors on top of a Context.
type Toolset struct {
	c        *ruleforge.Context
	cxxUnits map[string]bool // object outputs produced from a C++ source.
}

// NewToolset registers default tool variables (add_variable semantics, so
// a user script or CLI override set earlier wins) and returns a Toolset.
func NewToolset(c *ruleforge.Context, opt ToolsetOptions) *Toolset {
	def := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	c.AddVariable("CC", def(opt.CC, "cc"))
	c.AddVariable("CXX", def(opt.CXX, "c++"))
	c.AddVariable("AS", def(opt.AS, "as"))
	c.AddVariable("AR", def(opt.AR, "ar"))
	return &Toolset{c: c, cxxUnits: map[string]bool{}}
}

func isCxxSource(src string) bool {
	_, _, ext := ruleforge.SplitFilename(src)
	switch ext {
	case ".cc", ".cpp", ".cxx", ".C":
		return true
	default:
		return false
	}
}

// Object compiles one source file to <TMP>/<stem>.o, falling back to
// <stem>0.o, <stem>1.o, ... on a GenerateUnique collision (the same
// source compiled under different flags must land in distinct objects).
func (t *Toolset) Object(src string, extraFlags ...string) (string, error) {
	_, stem, _ := ruleforge.SplitFilename(src)
	tmp := t.c.GetVariable("TMP")

	compiler := "$(CC)"
	flagsVar := "CFLAGS"
	if isCxxSource(src) {
		compiler = "$(CXX)"
		flagsVar = "CXXFLAGS"
	}
	flags := strings.TrimSpace(t.c.GetVariableMerge(flagsVar) + " " + strings.Join(extraFlags, " "))

	cmd := compiler + " " + flags + " -c -o $@ $<"

	candidate := ruleforge.NormalizeFilename(tmp, stem+".o")
	for n := -1; ; n++ {
		if n >= 0 {
			candidate = ruleforge.NormalizeFilename(tmp, stem+strconv.Itoa(n)+".o")
		}
		ok, err := t.c.GenerateUnique([]string{candidate}, []string{src}, cmd)
		if err != nil {
			return "", err
		}
		if ok {
			if isCxxSource(src) {
				t.cxxUnits[candidate] = true
			}
			return candidate, nil
		}
	}
}

// Archive builds lib<name>.a from objects, then registers a distinct
// phony alias named name carrying the archive file as its sole link
// input, so it can be used as a library input to Program without marking
// the archive file itself phony (which would exclude it from hashing and
// from the clean rule).
func (t *Toolset) Archive(name string, objects []string) (string, error) {
	tmp := t.c.GetVariable("TMP")
	out := ruleforge.NormalizeFilename(tmp, "lib"+name+".a")
	if _, err := t.c.Generate([]string{out}, objects, "@$(AR) rcs $@ "+strings.Join(objects, " ")); err != nil {
		return "", err
	}
	if _, err := t.c.Generate([]string{name}, nil); err != nil {
		return "", err
	}
	if err := t.c.RuleAddLink(name, out); err != nil {
		return "", err
	}
	return name, nil
}

// Program links objects plus the flattened libs into an executable,
// choosing CXX if any of objects was compiled from a C++ source by this
// Toolset's Object, else CC. The objects inside libs are not examined.
func (t *Toolset) Program(name string, objects []string, libs []string) (string, error) {
	out := ruleforge.NormalizeFilename(t.c.GetVariable("OUT"), name)

	linker := "$(CC)"
	for _, o := range objects {
		if t.cxxUnits[o] {
			linker = "$(CXX)"
			break
		}
	}

	flattened := t.c.RuleGetLinkInputs(libs)
	args := append(append([]string{}, objects...), flattened...)

	cmd := linker + " -o $@ " + strings.Join(args, " ")
	allInputs := append(append([]string{}, objects...), libs...)
	return t.c.Generate([]string{out}, allInputs, cmd)
}
