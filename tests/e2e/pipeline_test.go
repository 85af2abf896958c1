// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package e2e exercises the rule-graph engine end to end, the way a
// Rules.go entry script would drive it, by calling the Context API
// directly. The Yaegi interpreter in pkg/ruleforge/script is not exercised
// here.
package e2e

import (
	"os"
	"strings"
	"testing"

	"github.com/cassite-labs/ruleforge/pkg/ruleforge"
)

func newContext(t *testing.T) (*ruleforge.Context, *ruleforge.Graph) {
	t.Helper()
	g := ruleforge.NewGraph()
	g.Vars.SetVariable("OUT", "out")
	g.Vars.SetVariable("TMP", "out/.build")
	return ruleforge.NewContext(g), g
}

// Scenario 1: file copy.
func TestFileCopyScenario(t *testing.T) {
	c, g := newContext(t)

	if _, err := c.GenerateCopy("out/a.txt", "a.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Generate([]string{"all"}, []string{"out/a.txt"}); err != nil {
		t.Fatal(err)
	}

	g.AddHashMarkers()
	if err := g.Bootstrap(ruleforge.BootstrapOptions{
		ArtifactPath: "Makefile", DriverPath: "/bin/ruleforge", EntryScript: "Rules.go",
	}); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := dir + "/Makefile"
	if err := g.EmitMakefile(path); err != nil {
		t.Fatal(err)
	}

	content := readFile(t, path)
	if !strings.Contains(content, "out/a.txt :") {
		t.Fatalf("expected copy rule in artifact:\n%s", content)
	}
	if !strings.Contains(content, "@cp a.txt out/a.txt") {
		t.Fatalf("expected cp command in artifact:\n%s", content)
	}
}

// Scenario 3: merge conflict is fatal.
func TestMergeConflictScenario(t *testing.T) {
	c, _ := newContext(t)
	if _, err := c.Generate([]string{"a"}, nil, "cmd a"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Generate([]string{"b"}, nil, "cmd b"); err != nil {
		t.Fatal(err)
	}
	_, err := c.Generate([]string{"a", "b"}, nil, "cmd ab")
	if err == nil {
		t.Fatal("expected a merge-conflict error")
	}
}

// Scenario 4: link-alias flattening.
func TestLinkAliasFlatteningScenario(t *testing.T) {
	c, g := newContext(t)
	if _, err := c.Generate([]string{"libfoo.a"}, nil, "ar"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Generate([]string{"libfoo"}, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.RuleAddLink("libfoo", "libfoo.a", "-lpthread"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Generate([]string{"prog"}, []string{"libfoo"}, "link"); err != nil {
		t.Fatal(err)
	}

	ins, err := c.RuleGetInputs("prog")
	if err != nil {
		t.Fatal(err)
	}
	if len(ins) != 2 || ins[0] != "libfoo.a" || ins[1] != "-lpthread" {
		t.Fatalf("RuleGetInputs = %v", ins)
	}

	prog := g.Store.Lookup("prog")
	effective := g.RuleGetInputs(prog)
	for _, in := range effective {
		if in == "libfoo" {
			t.Fatal("prog should not depend on the alias name itself")
		}
	}
}

// Scenario 5: unique-name fallback.
func TestUniqueNameFallbackScenario(t *testing.T) {
	c, _ := newContext(t)
	ok, err := c.GenerateUnique([]string{"t.o"}, []string{"t.c"}, "cmd1")
	if err != nil || !ok {
		t.Fatalf("first call: ok=%v err=%v", ok, err)
	}
	ok, err = c.GenerateUnique([]string{"t.o"}, []string{"t.c"}, "cmd2")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected false on differing command")
	}
	ok, err = c.GenerateUnique([]string{"t0.o"}, []string{"t.c"}, "cmd2")
	if err != nil || !ok {
		t.Fatalf("retry: ok=%v err=%v", ok, err)
	}
}

// Scenario 2 (partial): command-change rebuild changes the hash-marker path.
func TestCommandChangeRebuildScenario(t *testing.T) {
	build := func(cmd string) string {
		g := ruleforge.NewGraph()
		g.Vars.SetVariable("TMP", ".build")
		if _, err := g.Generate([]string{"o"}, []string{"i"}, cmd); err != nil {
			t.Fatal(err)
		}
		g.AddHashMarkers()
		r := g.Store.Lookup("o")
		return r.Inputs[len(r.Inputs)-1]
	}
	m1 := build("cmd A")
	m2 := build("cmd B")
	if m1 == m2 {
		t.Fatal("expected hash-marker path to change when the command changes")
	}
}

// Round-trip idempotence: running emission twice with unchanged inputs
// yields byte-identical artifacts.
func TestEmissionIsByteIdenticalAcrossRuns(t *testing.T) {
	build := func() string {
		g := ruleforge.NewGraph()
		g.Vars.SetVariable("TMP", ".build")
		c := ruleforge.NewContext(g)
		if _, err := c.Generate([]string{"o"}, []string{"i"}, "cmd"); err != nil {
			t.Fatal(err)
		}
		g.AddHashMarkers()
		if err := g.Bootstrap(ruleforge.BootstrapOptions{
			ArtifactPath: "Makefile", DriverPath: "/bin/ruleforge", EntryScript: "Rules.go",
		}); err != nil {
			t.Fatal(err)
		}
		dir := t.TempDir()
		path := dir + "/Makefile"
		if err := g.EmitMakefile(path); err != nil {
			t.Fatal(err)
		}
		return readFile(t, path)
	}
	a := build()
	b := build()
	if a != b {
		t.Fatalf("artifacts differ across identical runs:\n--- a ---\n%s\n--- b ---\n%s", a, b)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
