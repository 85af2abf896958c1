// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package script

// Hand-maintained symbol table for the ruleforge package, in the shape
// `yaegi extract` would generate, so user scripts can import
// "github.com/cassite-labs/ruleforge/pkg/ruleforge" under the interpreter.
// Kept small and manually updated since the package's public surface
// (Context's methods) changes rarely relative to the core engine.

import (
	"reflect"

	"github.com/cassite-labs/ruleforge/pkg/ruleforge"
)

var exports = map[string]map[string]reflect.Value{
	"github.com/cassite-labs/ruleforge/pkg/ruleforge/ruleforge": {
		"NewContext":         reflect.ValueOf(ruleforge.NewContext),
		"NewGraph":           reflect.ValueOf(ruleforge.NewGraph),
		"NormalizeFilename":  reflect.ValueOf(ruleforge.NormalizeFilename),
		"SplitFilename":      reflect.ValueOf(ruleforge.SplitFilename),
		"IsAbsolute":         reflect.ValueOf(ruleforge.IsAbsolute),
		"EscapesParent":      reflect.ValueOf(ruleforge.EscapesParent),
		"Context":            reflect.ValueOf((*ruleforge.Context)(nil)),
		"Graph":              reflect.ValueOf((*ruleforge.Graph)(nil)),
		"Rule":               reflect.ValueOf((*ruleforge.Rule)(nil)),
	},
}
