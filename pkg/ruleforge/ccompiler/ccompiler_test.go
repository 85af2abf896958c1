// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ccompiler

import (
	"testing"

	"github.com/cassite-labs/ruleforge/pkg/ruleforge"
)

func newToolset(t *testing.T) (*Toolset, *ruleforge.Graph) {
	t.Helper()
	g := ruleforge.NewGraph()
	g.Vars.SetVariable("OUT", "out")
	g.Vars.SetVariable("TMP", "out/.build")
	c := ruleforge.NewContext(g)
	return NewToolset(c, ToolsetOptions{}), g
}

func TestArchiveKeepsFileNonPhony(t *testing.T) {
	ts, g := newToolset(t)

	alias, err := ts.Archive("foo", []string{"out/.build/a.o", "out/.build/b.o"})
	if err != nil {
		t.Fatal(err)
	}
	if alias != "foo" {
		t.Fatalf("Archive should return the alias name, got %q", alias)
	}

	archiveFile := g.Store.Lookup("out/.build/libfoo.a")
	if archiveFile == nil {
		t.Fatal("archive file rule missing")
	}
	if archiveFile.IsPhony {
		t.Fatal("archive file rule must not be phony: it would be excluded from hashing and clean")
	}
	if len(archiveFile.Commands) != 1 {
		t.Fatalf("expected one ar command, got %v", archiveFile.Commands)
	}

	aliasRule := g.Store.Lookup("foo")
	if aliasRule == nil {
		t.Fatal("alias rule missing")
	}
	if !aliasRule.IsPhony || !aliasRule.IsAlias() {
		t.Fatalf("alias rule should be phony and carry link inputs, got %+v", aliasRule)
	}
	if len(aliasRule.LinkInputs) != 1 || aliasRule.LinkInputs[0] != "out/.build/libfoo.a" {
		t.Fatalf("alias link inputs = %v", aliasRule.LinkInputs)
	}
}

func TestProgramFlattensArchiveAlias(t *testing.T) {
	ts, g := newToolset(t)

	alias, err := ts.Archive("foo", []string{"out/.build/a.o"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ts.Program("prog", []string{"out/.build/main.o"}, []string{alias}); err != nil {
		t.Fatal(err)
	}

	prog := g.Store.Lookup("out/prog")
	if prog == nil {
		t.Fatal("program rule missing")
	}
	ins := g.RuleGetInputs(prog)
	foundArchiveFile := false
	for _, in := range ins {
		if in == "out/.build/libfoo.a" {
			foundArchiveFile = true
		}
		if in == alias {
			t.Fatal("program should depend on the archive file, not the alias name itself")
		}
	}
	if !foundArchiveFile {
		t.Fatalf("expected flattened archive file among inputs, got %v", ins)
	}
}
