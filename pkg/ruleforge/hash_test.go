// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	"strings"
	"testing"
)

func TestAddHashMarkersCreatesMarker(t *testing.T) {
	g := NewGraph()
	g.Vars.SetVariable("TMP", ".build")
	if _, err := g.Generate([]string{"o"}, []string{"i"}, "cmd"); err != nil {
		t.Fatal(err)
	}
	g.AddHashMarkers()

	r := g.Store.Lookup("o")
	var marker string
	// Expect a marker under .build/.hash/.
	found := false
	for _, in := range r.Inputs {
		if len(in) > len(".build/.hash/") && in[:len(".build/.hash/")] == ".build/.hash/" {
			found = true
			marker = in
		}
	}
	if !found {
		t.Fatalf("expected hash marker input, got %v", r.Inputs)
	}
	markerRule := g.Store.Lookup(marker)
	if markerRule == nil || markerRule.Priority != -100 {
		t.Fatalf("marker rule missing or wrong priority: %+v", markerRule)
	}
	if len(markerRule.Inputs) != 1 {
		t.Fatalf("marker rule should depend on its hash-dir mark, got inputs %v", markerRule.Inputs)
	}
	dirMark := markerRule.Inputs[0]
	if !strings.HasSuffix(dirMark, "/.mark") || !strings.HasPrefix(dirMark, ".build/.hash/") {
		t.Fatalf("marker rule input %q is not the hash-dir mark", dirMark)
	}
	if g.Store.Lookup(dirMark) == nil {
		t.Fatalf("hash-dir mark %q has no rule to create it", dirMark)
	}
}

func TestHashMarkerChangesWithCommand(t *testing.T) {
	g1 := NewGraph()
	g1.Vars.SetVariable("TMP", ".build")
	if _, err := g1.Generate([]string{"o"}, []string{"i"}, "cmd A"); err != nil {
		t.Fatal(err)
	}
	g1.AddHashMarkers()
	marker1 := lastHashMarker(t, g1, "o")

	g2 := NewGraph()
	g2.Vars.SetVariable("TMP", ".build")
	if _, err := g2.Generate([]string{"o"}, []string{"i"}, "cmd B"); err != nil {
		t.Fatal(err)
	}
	g2.AddHashMarkers()
	marker2 := lastHashMarker(t, g2, "o")

	if marker1 == marker2 {
		t.Fatalf("expected different marker paths for differing commands, got %q", marker1)
	}
}

func lastHashMarker(t *testing.T, g *Graph, output string) string {
	t.Helper()
	r := g.Store.Lookup(output)
	if len(r.Inputs) == 0 {
		t.Fatalf("rule %q has no inputs", output)
	}
	return r.Inputs[len(r.Inputs)-1]
}

func TestHashMarkerChangesWithWhitespace(t *testing.T) {
	g1 := NewGraph()
	g1.Vars.SetVariable("TMP", ".build")
	if _, err := g1.Generate([]string{"o"}, []string{"i"}, "cmd"); err != nil {
		t.Fatal(err)
	}
	g1.AddHashMarkers()
	m1 := lastHashMarker(t, g1, "o")

	g2 := NewGraph()
	g2.Vars.SetVariable("TMP", ".build")
	if _, err := g2.Generate([]string{"o"}, []string{"i"}, "cmd "); err != nil {
		t.Fatal(err)
	}
	g2.AddHashMarkers()
	m2 := lastHashMarker(t, g2, "o")

	if m1 == m2 {
		t.Fatal("expected whitespace change to alter the hash-marker path")
	}
}
