// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import "strings"

// EmitNinjafile writes the modern-runner (Ninja-style) artifact to path.
func (g *Graph) EmitNinjafile(path string) *Error {
	var b strings.Builder
	b.WriteString("rule generic\n  command = $cmd\n  description = $desc\n\n")
	g.Store.resetEmitted()

	for _, r := range g.sortedRules() {
		if r.emitted {
			continue
		}
		r.emitted = true
		writeNinjaRule(&b, g, r)
	}

	b.WriteString("default all\n")
	return atomicWrite(path, b.String())
}

func writeNinjaRule(b *strings.Builder, g *Graph, r *Rule) {
	for _, c := range r.Comments {
		b.WriteString("# ")
		b.WriteString(c)
		b.WriteByte('\n')
	}

	outs := nonDotDOutputs(r)
	ins := g.effectiveInputs(r)

	if r.IsPhony && len(r.Commands) == 0 {
		b.WriteString("build ")
		b.WriteString(strings.Join(outs, " "))
		b.WriteString(": phony ")
		b.WriteString(strings.Join(ins, " "))
		b.WriteString("\n\n")
		return
	}

	b.WriteString("build ")
	b.WriteString(strings.Join(outs, " "))
	b.WriteString(": generic ")
	b.WriteString(strings.Join(ins, " "))
	b.WriteByte('\n')

	b.WriteString("  command = ")
	b.WriteString(joinCommands(r.Commands))
	b.WriteByte('\n')

	if r.Info != "" {
		b.WriteString("  description = ")
		b.WriteString(r.Info)
		b.WriteByte('\n')
	}
	if dotD := dotDOutputs(r); len(dotD) > 0 {
		b.WriteString("  depfile = ")
		b.WriteString(dotD[0])
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}
