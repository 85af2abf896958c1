// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import "strings"

func canonicalizeList(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, NormalizeFilename(p))
	}
	return out
}

func priorityFor(outputs []string) int {
	for _, o := range outputs {
		if strings.HasPrefix(o, ".") {
			return 2
		}
	}
	return 0
}

func (g *Graph) expandAll(commands, outputs, inputs []string) []string {
	firstOutput, firstInput := "", ""
	if len(outputs) > 0 {
		firstOutput = outputs[0]
	}
	if len(inputs) > 0 {
		firstInput = inputs[0]
	}
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, g.Vars.Expand(c, firstOutput, firstInput))
	}
	return out
}

// Generate implements generate(outputs, inputs, ...commands): extend an
// existing rule or create a new one, merging in the new outputs/inputs/
// commands. Returns the first output name. Fatal if the requested outputs
// span more than one pre-existing distinct rule.
func (g *Graph) Generate(outputs, inputs []string, commands ...string) (string, *Error) {
	outs := canonicalizeList(outputs)
	ins := canonicalizeList(inputs)
	if len(outs) == 0 {
		return "", RuleModelf("generate requires at least one output")
	}
	expanded := g.expandAll(commands, outs, ins)

	var existing *Rule
	for _, o := range outs {
		if r := g.Store.Lookup(o); r != nil {
			if existing == nil {
				existing = r
			} else if existing != r {
				return "", RuleModelf("cannot merge: outputs %v span more than one existing rule", outs)
			}
		}
	}

	var rule *Rule
	if existing != nil {
		if existing.IsDirectory {
			return "", RuleModelf("cannot redefine directory rule %v as a file rule", existing.Outputs)
		}
		rule = existing
		for _, o := range outs {
			rule.Outputs = orderedAppendUnique(rule.Outputs, o)
		}
		for _, i := range ins {
			rule.Inputs = orderedAppendUnique(rule.Inputs, i)
		}
		rule.Commands = append(rule.Commands, expanded...)
	} else {
		rule = &Rule{
			Outputs:  append([]string{}, outs...),
			Inputs:   append([]string{}, ins...),
			Commands: expanded,
			Priority: priorityFor(outs),
		}
	}

	for _, o := range outs {
		g.Store.bind(o, rule)
	}

	if err := g.ensureParentMarks(rule, outs); err != nil {
		return "", err
	}

	return outs[0], nil
}

// ensureParentMarks implements §4.4 step 3: for each non-absolute,
// non-parent-escaping output containing a slash, ensure the parent
// directory rule exists and add its mark file as an implicit input.
func (g *Graph) ensureParentMarks(rule *Rule, outputs []string) *Error {
	for _, o := range outputs {
		if !strings.Contains(o, "/") || IsAbsolute(o) || EscapesParent(o) {
			continue
		}
		dir, _, _ := SplitFilename(o)
		dir = strings.TrimSuffix(dir, "/")
		if dir == "" {
			continue
		}
		mark := g.GenerateDirectory(dir)
		rule.Inputs = orderedAppendUnique(rule.Inputs, mark)
	}
	return nil
}

// ruleSubsetOf reports whether every output/input/command in candidate
// already appears in existing (used by GenerateUnique's idempotence check).
func ruleSubsetOf(existing *Rule, outs, ins, commands []string) bool {
	for _, o := range outs {
		if !existing.hasOutput(o) {
			return false
		}
	}
	for _, i := range ins {
		found := false
		for _, existingIn := range existing.Inputs {
			if existingIn == i {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, c := range commands {
		found := false
		for _, existingCmd := range existing.Commands {
			if existingCmd == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GenerateUnique implements generate_unique: like Generate, but refuses to
// merge into a differing pre-existing rule. Returns true if the rule now
// (or already) contains every requested output/input/command, false if an
// existing rule under one of the requested names differs — the caller
// should retry with a different output name.
func (g *Graph) GenerateUnique(outputs, inputs []string, commands ...string) (bool, *Error) {
	outs := canonicalizeList(outputs)
	ins := canonicalizeList(inputs)
	expanded := g.expandAll(commands, outs, ins)

	for _, o := range outs {
		if existing := g.Store.Lookup(o); existing != nil {
			return ruleSubsetOf(existing, outs, ins, expanded), nil
		}
	}

	rule := &Rule{
		Outputs:  append([]string{}, outs...),
		Inputs:   append([]string{}, ins...),
		Commands: expanded,
		Priority: priorityFor(outs),
	}
	for _, o := range outs {
		g.Store.bind(o, rule)
	}
	if err := g.ensureParentMarks(rule, outs); err != nil {
		return false, err
	}
	return true, nil
}

// GenerateCopy defines dst from src with a single $(CP) command, defaulting
// CP to "cp".
func (g *Graph) GenerateCopy(dst, src string) (string, *Error) {
	g.Vars.AddVariable("CP", "cp")
	return g.Generate([]string{dst}, []string{src}, "@$(CP) $< $@")
}

// GenerateAnonymous computes a stable hash over ext, inputs, and commands;
// the output is <TMP>/.anon/<hash><ext>. Deterministic, so repeated calls
// with identical parameters share one rule.
func (g *Graph) GenerateAnonymous(ext string, inputs []string, commands ...string) (string, *Error) {
	ins := canonicalizeList(inputs)
	h := md5Hex(ext + "\n" + strings.Join(ins, " ") + "\n" + strings.Join(commands, "\n"))
	tmp := g.Vars.GetVariable("TMP")
	output := NormalizeFilename(tmp, ".anon", h+ext)
	if g.Store.Lookup(output) != nil {
		return output, nil
	}
	return g.Generate([]string{output}, inputs, commands...)
}

// GenerateDirectory idempotently creates a rule whose output is
// <path>/.mark, marked IsDirectory/IsPrecious, priority -99, recursively
// ensuring the parent directory's mark is listed as input.
func (g *Graph) GenerateDirectory(path string) string {
	path = NormalizeFilename(path)
	mark := NormalizeFilename(path, ".mark")
	if existing := g.Store.Lookup(mark); existing != nil {
		return mark
	}
	rule := &Rule{
		Outputs:     []string{mark},
		IsDirectory: true,
		IsPrecious:  true,
		Priority:    -99,
		Commands: []string{
			"-@mkdir -p " + path,
			"@touch " + mark,
		},
	}
	if strings.Contains(path, "/") && !IsAbsolute(path) && !EscapesParent(path) {
		parentDir, _, _ := SplitFilename(path)
		parentDir = strings.TrimSuffix(parentDir, "/")
		if parentDir != "" {
			parentMark := g.GenerateDirectory(parentDir)
			rule.Inputs = orderedAppendUnique(rule.Inputs, parentMark)
		}
	}
	g.Store.bind(mark, rule)
	return mark
}
