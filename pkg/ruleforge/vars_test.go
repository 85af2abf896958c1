// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import "testing"

func TestVarStoreLayering(t *testing.T) {
	v := NewVarStore()

	if got := v.AddVariable("CC", "cc"); got != "cc" {
		t.Fatalf("AddVariable first call = %q, want cc", got)
	}
	if got := v.AddVariable("CC", "gcc"); got != "cc" {
		t.Fatalf("AddVariable second call should not override, got %q", got)
	}

	v.SetVariable("CC", "clang")
	if got := v.GetVariable("CC"); got != "clang" {
		t.Fatalf("GetVariable = %q, want clang", got)
	}

	v.SetUserVariable("WITH_DEBUG", "1")
	overrides := v.UserOverrides()
	if len(overrides) != 1 || overrides[0].Name != "WITH_DEBUG" || overrides[0].Value != "1" {
		t.Fatalf("UserOverrides = %+v", overrides)
	}
}

func TestAddToVariable(t *testing.T) {
	v := NewVarStore()
	v.AddToVariable("CFLAGS", "-Wall")
	v.AddToVariable("CFLAGS", "-O2")
	if got := v.GetVariable("CFLAGS"); got != "-Wall -O2" {
		t.Fatalf("CFLAGS = %q", got)
	}
}

func TestGetVariableMerge(t *testing.T) {
	v := NewVarStore()
	v.SetVariable("X", "a")
	scope := map[string]string{"X": "b"}
	if got := v.GetVariableMerge("X", scope); got != "a b" {
		t.Fatalf("GetVariableMerge = %q", got)
	}
}

func TestParseArgs(t *testing.T) {
	v := NewVarStore()
	positional, help, err := v.ParseArgs([]string{
		"FOO=bar",
		"--with-debug",
		"--without-shared",
		"--in=src",
		"--out=build",
		"makefile",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if help {
		t.Fatal("help should not be set")
	}
	if len(positional) != 1 || positional[0] != "makefile" {
		t.Fatalf("positional = %v", positional)
	}
	if v.GetVariable("FOO") != "bar" {
		t.Errorf("FOO = %q", v.GetVariable("FOO"))
	}
	if v.GetVariable("WITH_DEBUG") != "1" {
		t.Errorf("WITH_DEBUG = %q", v.GetVariable("WITH_DEBUG"))
	}
	if v.GetVariable("WITH_SHARED") != "0" {
		t.Errorf("WITH_SHARED = %q", v.GetVariable("WITH_SHARED"))
	}
	if v.GetVariable("IN") != "src" {
		t.Errorf("IN = %q", v.GetVariable("IN"))
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	v := NewVarStore()
	_, _, err := v.ParseArgs([]string{"--bogus"})
	if err == nil || err.Category != UsageError {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseArgsHelp(t *testing.T) {
	v := NewVarStore()
	_, help, err := v.ParseArgs([]string{"--help"})
	if err != nil || !help {
		t.Fatalf("expected help, got help=%v err=%v", help, err)
	}
}
