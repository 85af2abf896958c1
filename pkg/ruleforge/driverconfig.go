// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DriverConfigFile is the optional ambient config file, read from the
// source root, that seeds CLI-flag defaults and initial variables. Its
// absence is not an error.
const DriverConfigFile = "ruleforge.yaml"

// DriverConfig mirrors the teacher's layered project-configuration
// pattern: a small, optional YAML file that only ever supplies defaults —
// anything the CLI or the entry script sets later always wins.
type DriverConfig struct {
	In        string            `yaml:"in"`
	Out       string            `yaml:"out"`
	InFile    string            `yaml:"infile"`
	OutFile   string            `yaml:"outfile"`
	Default   string            `yaml:"default_subcommand"`
	Variables map[string]string `yaml:"variables"`
}

// LoadDriverConfig reads DriverConfigFile from dir. A missing file returns
// a zero-value DriverConfig and no error; a malformed one returns an
// IOError.
func LoadDriverConfig(dir string) (*DriverConfig, *Error) {
	path := NormalizeFilename(dir, DriverConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &DriverConfig{}, nil
		}
		return nil, WrapIO(path, err)
	}
	var cfg DriverConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, WrapIO(path, err)
	}
	return &cfg, nil
}

// Seed applies the config's defaults into v (add_variable semantics: the
// CLI's own flags, parsed afterward, still win over these).
func (d *DriverConfig) Seed(v *VarStore) {
	if d.In != "" {
		v.AddVariable("IN", d.In)
	}
	if d.Out != "" {
		v.AddVariable("OUT", d.Out)
	}
	if d.InFile != "" {
		v.AddVariable("INFILE", d.InFile)
	}
	if d.OutFile != "" {
		v.AddVariable("OUTFILE", d.OutFile)
	}
	for name, value := range d.Variables {
		v.AddVariable(name, value)
	}
}
