// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package probe is the configuration-probing helper layer: temp-file
// try-compile/try-link, pkg-config interrogation, and program/library
// search. These run as synchronous subprocesses at generation time to
// answer configuration questions; they never touch the rule graph's own
// hashing or emission, and they never run a *generated* rule's commands.
package probe

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cassite-labs/ruleforge/pkg/ruleforge"
)

// FindProgram searches PATH, then extraDirs, for an executable named name.
func FindProgram(name string, extraDirs ...string) (string, bool) {
	if p, err := exec.LookPath(name); err == nil {
		return p, true
	}
	for _, dir := range extraDirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// TryCompile writes source to a fresh temp file and attempts to compile it
// with the toolset's default compiler, reporting success.
func TryCompile(c *ruleforge.Context, source string) bool {
	dir, err := os.MkdirTemp("", "ruleforge-probe-")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "probe.c")
	if err := os.WriteFile(src, []byte(source), 0o644); err != nil {
		return false
	}
	obj := filepath.Join(dir, "probe.o")

	cc := c.GetVariable("CC")
	if cc == "" {
		cc = "cc"
	}
	cmd := exec.Command(cc, c.GetVariableMerge("CFLAGS"), "-c", "-o", obj, src)
	cmd.Args = stripEmptyArgs(cmd.Args)
	return cmd.Run() == nil
}

// TryLink writes source to a fresh temp file and attempts a full
// compile-and-link, reporting success.
func TryLink(c *ruleforge.Context, source string, extraLibs ...string) bool {
	dir, err := os.MkdirTemp("", "ruleforge-probe-")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "probe.c")
	if err := os.WriteFile(src, []byte(source), 0o644); err != nil {
		return false
	}
	bin := filepath.Join(dir, "probe")

	cc := c.GetVariable("CC")
	if cc == "" {
		cc = "cc"
	}
	args := []string{c.GetVariableMerge("CFLAGS"), "-o", bin, src}
	args = append(args, extraLibs...)
	cmd := exec.Command(cc, args...)
	cmd.Args = stripEmptyArgs(cmd.Args)
	return cmd.Run() == nil
}

func stripEmptyArgs(args []string) []string {
	out := args[:1]
	for _, a := range args[1:] {
		if strings.TrimSpace(a) != "" {
			out = append(out, a)
		}
	}
	return out
}

// PkgConfig shells out to pkg-config for pkg with the given mode flags
// (e.g. "--cflags", "--libs") and returns its trimmed stdout.
func PkgConfig(pkg string, mode ...string) (string, error) {
	tool, ok := FindProgram("pkg-config")
	if !ok {
		return "", ruleforge.IOf("pkg-config not found on PATH")
	}
	args := append(append([]string{}, mode...), pkg)
	out, err := exec.Command(tool, args...).Output()
	if err != nil {
		return "", ruleforge.WrapIO(pkg, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// FindLibrary probes for -l<name> linkability against each candidate
// directory in turn, using the linker/flags the toolset registered into c
// (CC, CFLAGS).
func FindLibrary(c *ruleforge.Context, name string, dirs []string) (string, bool) {
	const probeSrc = "int main(void) { return 0; }\n"
	for _, dir := range dirs {
		if TryLink(c, probeSrc, "-L"+dir, "-l"+name) {
			return dir, true
		}
	}
	if TryLink(c, probeSrc, "-l"+name) {
		return "", true
	}
	return "", false
}
