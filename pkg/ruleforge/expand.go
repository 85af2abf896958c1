// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import "strings"

// Expand substitutes $X, $(NAME), $@, $<, and $$ in cmd. firstOutput and
// firstInput supply $@/$< (empty string if the rule being constructed has
// none); any other name is looked up via store.GetVariable. Expansion must
// happen exactly once, at rule-construction time, on the original command
// string.
func (v *VarStore) Expand(cmd, firstOutput, firstInput string) string {
	var b strings.Builder
	b.Grow(len(cmd))

	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		if c != '$' || i+1 >= len(cmd) {
			b.WriteByte(c)
			continue
		}
		next := cmd[i+1]
		switch next {
		case '$':
			b.WriteByte('$')
			i++
		case '@':
			b.WriteString(firstOutput)
			i++
		case '<':
			b.WriteString(firstInput)
			i++
		case '(':
			end := strings.IndexByte(cmd[i+2:], ')')
			if end < 0 {
				// Unterminated $( — treat literally, matching a
				// permissive scripting front-end.
				b.WriteByte(c)
				continue
			}
			name := cmd[i+2 : i+2+end]
			b.WriteString(v.GetVariable(name))
			i = i + 2 + end
		default:
			// $X: single-character variable name.
			name := string(next)
			b.WriteString(v.GetVariable(name))
			i++
		}
	}
	return b.String()
}
