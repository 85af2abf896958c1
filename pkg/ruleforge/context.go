// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	"os"
	"path/filepath"
	"strconv"
)

// Context is the surface the embedded scripting front-end (see
// pkg/ruleforge/script) calls into. It is a thin wrapper over Graph giving
// Go-idiomatic exported names to the operations the external interface
// contract requires: Generate, GenerateUnique, GenerateCopy,
// GenerateAnonymous, GenerateDirectory, the RuleAddLink/RuleFlattenAliases/
// RuleGetLinkInputs/RuleGetInputs family, the variable-store operations,
// LoadFile/LoadDirectory/LoadModule/LoadVariables, and the path helpers.
type Context struct {
	g           *Graph
	tempCounter int
	moduleLoad  ModuleLoader
}

// ModuleLoader interprets another entry script against the same Context.
// The script package sets this before invoking a script's Rules function,
// so LoadModule can recurse without pkg/ruleforge importing pkg/ruleforge/script.
type ModuleLoader func(path string, c *Context) error

// SetModuleLoader installs the callback LoadModule uses to interpret a
// sub-script. Called by pkg/ruleforge/script before running a script.
func (c *Context) SetModuleLoader(loader ModuleLoader) { c.moduleLoad = loader }

// NewContext wraps g for script consumption.
func NewContext(g *Graph) *Context {
	return &Context{g: g}
}

// Graph exposes the underlying Graph for non-script callers (the CLI
// driver, tests, and the ccompiler/probe helper layers).
func (c *Context) Graph() *Graph { return c.g }

func (c *Context) Generate(outputs, inputs []string, commands ...string) (string, error) {
	out, err := c.g.Generate(outputs, inputs, commands...)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Context) GenerateUnique(outputs, inputs []string, commands ...string) (bool, error) {
	ok, err := c.g.GenerateUnique(outputs, inputs, commands...)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (c *Context) GenerateCopy(dst, src string) (string, error) {
	out, err := c.g.GenerateCopy(dst, src)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Context) GenerateAnonymous(ext string, inputs []string, commands ...string) (string, error) {
	out, err := c.g.GenerateAnonymous(ext, inputs, commands...)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Context) GenerateDirectory(path string) string {
	return c.g.GenerateDirectory(path)
}

func (c *Context) RuleAddLink(outputName string, items ...string) error {
	r := c.g.Store.Lookup(outputName)
	if r == nil {
		return RuleModelf("rule_add_link: no rule named %q", outputName)
	}
	RuleAddLink(r, items...)
	return nil
}

func (c *Context) RuleFlattenAliases(items []string) []string {
	return c.g.RuleFlattenAliases(items)
}

func (c *Context) RuleGetLinkInputs(items []string) []string {
	return c.g.RuleGetLinkInputs(items)
}

func (c *Context) RuleGetInputs(outputName string) ([]string, error) {
	r := c.g.Store.Lookup(outputName)
	if r == nil {
		return nil, RuleModelf("rule_get_inputs: no rule named %q", outputName)
	}
	return c.g.RuleGetInputs(r), nil
}

func (c *Context) AddVariable(name, def string) string { return c.g.Vars.AddVariable(name, def) }
func (c *Context) SetVariable(name, value string)      { c.g.Vars.SetVariable(name, value) }
func (c *Context) SetUserVariable(name, value string)  { c.g.Vars.SetUserVariable(name, value) }
func (c *Context) GetVariable(name string) string      { return c.g.Vars.GetVariable(name) }
func (c *Context) GetVariableMerge(name string) string { return c.g.Vars.GetVariableMerge(name) }
func (c *Context) AddToVariable(name string, values ...string) {
	c.g.Vars.AddToVariable(name, values...)
}
func (c *Context) AddDirectoryVariable(name string) { c.g.Vars.AddDirectoryVariable(name) }

// LoadFile registers path in the input-file registry.
func (c *Context) LoadFile(path string) string {
	norm := NormalizeFilename(path)
	c.g.Inputs.Add(norm)
	return norm
}

// LoadDirectory registers every regular file under path (recursively) in
// the input-file registry. path must be relative and may not escape its
// parent (spec.md §7.2: a rule-model error otherwise).
func (c *Context) LoadDirectory(path string) error {
	if IsAbsolute(path) || EscapesParent(path) {
		return RuleModelf("load_directory: path %q must be relative and not escape its parent", path)
	}
	c.g.Inputs.Add(NormalizeFilename(path))
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return WrapIO(p, err)
		}
		if d.IsDir() {
			return nil
		}
		c.g.Inputs.Add(NormalizeFilename(p))
		return nil
	})
}

// LoadModule registers path as an input and, if a ModuleLoader has been
// installed (always true when running under pkg/ruleforge/script),
// interprets it against this same Context so its rule/variable/input
// registrations merge into this generation session.
func (c *Context) LoadModule(path string) error {
	norm := c.LoadFile(path)
	if c.moduleLoad == nil {
		return nil
	}
	if err := c.moduleLoad(norm, c); err != nil {
		return err
	}
	return nil
}

// LoadVariables loads NAME=VALUE pairs (one per line, blank lines and
// lines starting with "#" ignored) from path via AddVariable, and
// registers path as an input.
func (c *Context) LoadVariables(path string) error {
	c.LoadFile(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapIO(path, err)
	}
	if err := loadVariableLines(c.g.Vars, string(data)); err != nil {
		return err
	}
	return nil
}

func (c *Context) NormalizeFilename(parts ...string) string { return NormalizeFilename(parts...) }

func (c *Context) SplitFilename(path string) (string, string, string) { return SplitFilename(path) }

// MakeTempFilename returns a fresh path under TMP with the given
// extension, derived from an anonymous-rule-style content hash so repeated
// calls in the same process don't collide.
func (c *Context) MakeTempFilename(ext string) string {
	tmp := c.g.Vars.GetVariable("TMP")
	c.tempCounter++
	h := md5Hex(ext + "#" + strconv.Itoa(c.tempCounter))
	return NormalizeFilename(tmp, ".anon", h+ext)
}

// ToList splits a space-separated string into a slice, dropping empty
// fields — the scripting convenience named in the external interface.
func (c *Context) ToList(s string) []string {
	var out []string
	field := ""
	flush := func() {
		if field != "" {
			out = append(out, field)
			field = ""
		}
	}
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			flush()
			continue
		}
		field += string(r)
	}
	flush()
	return out
}
