// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// codeHash is the content hash over a rule's inputs and commands: changing
// either changes this hash, which is what forces a rebuild on command-line
// change rather than merely on timestamp difference.
func codeHash(inputs, commands []string) string {
	return md5Hex(strings.Join(inputs, " ") + "\n" + strings.Join(commands, "\n"))
}

// nameHash identifies a rule by its first output, independent of its
// current command/input content.
func nameHash(firstOutput string) string {
	return md5Hex(firstOutput)
}

// markerPath builds <TMP>/.hash/XX/YY_<code> for a given name hash and
// code hash.
func markerPath(tmp, nh, ch string) string {
	return NormalizeFilename(tmp, ".hash", nh[:2], nh[2:]+"_"+ch)
}

// AddHashMarkers implements §4.6: for every rule that is neither a
// directory nor phony, create a content-hash marker rule and add it as an
// input of the target rule at priority -100. The marker's own rule removes
// any stale sibling marker (and the stale target output) before touching
// the new marker, so that editing a command line or reordering inputs
// forces a rebuild even on runners that only compare timestamps.
func (g *Graph) AddHashMarkers() {
	tmp := g.Vars.GetVariable("TMP")
	for _, rule := range g.Store.Rules() {
		if rule.IsDirectory || rule.IsPhony || len(rule.Outputs) == 0 {
			continue
		}
		nh := nameHash(rule.Outputs[0])
		ch := codeHash(rule.Inputs, rule.Commands)
		marker := markerPath(tmp, nh, ch)
		if g.Store.Lookup(marker) != nil {
			rule.Inputs = orderedAppendUnique(rule.Inputs, marker)
			continue
		}
		glob := NormalizeFilename(tmp, ".hash", nh[:2], nh[2:]+"_*")
		hashDir := NormalizeFilename(tmp, ".hash", nh[:2])
		dirMark := g.GenerateDirectory(hashDir)
		markerRule := &Rule{
			Outputs:  []string{marker},
			Inputs:   []string{dirMark},
			Priority: -100,
			Commands: []string{
				"-@rm -f " + glob,
				"-@rm -f " + rule.Outputs[0],
				"@touch " + marker,
			},
		}
		g.Store.bind(marker, markerRule)
		rule.Inputs = orderedAppendUnique(rule.Inputs, marker)
	}
}
