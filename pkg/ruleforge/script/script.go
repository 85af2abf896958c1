// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package script interprets a user's entry script — ordinary Go source
// defining func Rules(c *ruleforge.Context) error — with the Yaegi
// interpreter, so the whole toolchain stays single-binary: no subprocess,
// no separate script runtime, no "go build" of user code.
package script

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/cassite-labs/ruleforge/pkg/ruleforge"
)

// allowedImports is the set of packages a user script may import, beyond
// the ruleforge API itself. Only stdlib packages relevant to build
// scripting are allowed; no os/exec, no net, no unsafe.
var allowedImports = map[string]bool{
	"strings":        true,
	"strconv":        true,
	"fmt":            true,
	"path":           true,
	"path/filepath":  true,
	"sort":           true,
	"os":             true, // reading env vars / stat'ing files is routine in build scripts.
}

// Timeout bounds how long a single script invocation may run.
var Timeout = 30 * time.Second

// Run reads the entry script at path, interprets it, and calls its Rules
// function with c. Returns a ScriptError naming path and the original
// failure on any problem: forbidden import, interpretation failure,
// missing/mis-shaped Rules function, panic, or a returned error.
func Run(path string, c *ruleforge.Context) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return ruleforge.WrapIO(path, err)
	}

	if err := validateImports(string(source)); err != nil {
		return ruleforge.Scriptf("%s: %v", path, err)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return ruleforge.Scriptf("%s: loading stdlib: %v", path, err)
	}
	if err := i.Use(exports); err != nil {
		return ruleforge.Scriptf("%s: loading ruleforge API: %v", path, err)
	}

	if _, err := i.Eval(string(source)); err != nil {
		return ruleforge.Scriptf("%s: %v", path, err)
	}

	fn, err := i.Eval("main.Rules")
	if err != nil {
		return ruleforge.Scriptf("%s: no Rules function defined: %v", path, err)
	}
	rulesFn, ok := fn.Interface().(func(*ruleforge.Context) error)
	if !ok {
		return ruleforge.Scriptf("%s: Rules has the wrong signature (want func(*ruleforge.Context) error)", path)
	}

	c.SetModuleLoader(func(modulePath string, mc *ruleforge.Context) error {
		return Run(modulePath, mc)
	})

	return runBounded(path, rulesFn, c)
}

func runBounded(path string, fn func(*ruleforge.Context) error, c *ruleforge.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	resultChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultChan <- fmt.Errorf("panic: %v", r)
			}
		}()
		resultChan <- fn(c)
	}()

	select {
	case err := <-resultChan:
		if err != nil {
			return ruleforge.Scriptf("%s: %v", path, err)
		}
		return nil
	case <-ctx.Done():
		return ruleforge.Scriptf("%s: timed out after %s", path, Timeout)
	}
}

// validateImports rejects any import not in allowedImports or the
// ruleforge package itself.
func validateImports(source string) error {
	inBlock := false
	for _, rawLine := range strings.Split(source, "\n") {
		line := strings.TrimSpace(rawLine)
		switch {
		case strings.HasPrefix(line, "import ("):
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock:
			if pkg, ok := importPath(line); ok && !isAllowed(pkg) {
				return fmt.Errorf("forbidden import %q", pkg)
			}
		case strings.HasPrefix(line, "import "):
			if pkg, ok := importPath(strings.TrimPrefix(line, "import ")); ok && !isAllowed(pkg) {
				return fmt.Errorf("forbidden import %q", pkg)
			}
		}
	}
	return nil
}

func importPath(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if idx := strings.Index(line, `"`); idx >= 0 {
		line = line[idx:]
	}
	line = strings.Trim(line, `"`)
	if line == "" {
		return "", false
	}
	return line, true
}

func isAllowed(pkg string) bool {
	if pkg == "github.com/cassite-labs/ruleforge/pkg/ruleforge" {
		return true
	}
	return allowedImports[pkg]
}
