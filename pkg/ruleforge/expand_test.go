// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import "testing"

func TestExpand(t *testing.T) {
	v := NewVarStore()
	v.SetVariable("NAME", "world")

	cases := []struct {
		cmd, out, in, want string
	}{
		{"echo $$ $@ $<", "o", "i", "echo $ o i"},
		{"hello $(NAME)", "", "", "hello world"},
		{"no vars here", "", "", "no vars here"},
		{"$@:$@", "out.o", "", "out.o:out.o"},
	}
	for _, c := range cases {
		if got := v.Expand(c.cmd, c.out, c.in); got != c.want {
			t.Errorf("Expand(%q) = %q, want %q", c.cmd, got, c.want)
		}
	}
}
