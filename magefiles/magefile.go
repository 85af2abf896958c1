// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides the mage build targets for the ruleforge repository.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Test groups the testing targets.
type Test mg.Namespace

// Build compiles the ruleforge binary into ./bin.
func Build() error {
	logf("building ruleforge")
	return run("go", "build", "-o", "bin/ruleforge", "./cmd/ruleforge")
}

// Lint runs golangci-lint on the project.
func Lint() error {
	return run("golangci-lint", "run", "./...")
}

// Install installs the ruleforge binary via go install.
func Install() error {
	return run("go", "install", "./cmd/ruleforge")
}

// Clean removes build output.
func Clean() error {
	logf("removing bin/")
	return os.RemoveAll("bin")
}

// Unit runs the unit test suite (pkg/... only, no e2e).
func (Test) Unit() error {
	return run("go", "test", "./pkg/...")
}

// Integration runs the end-to-end scenarios under tests/e2e.
func (Test) Integration() error {
	return run("go", "test", "./tests/...")
}

// All runs the unit and integration suites.
func (Test) All() error {
	if err := (Test{}).Unit(); err != nil {
		return err
	}
	return (Test{}).Integration()
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[ruleforge] "+format+"\n", args...)
}
