// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command ruleforge is the entry driver: it parses arguments, loads the
// user's entry script, and dispatches to the selected emitter.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cassite-labs/ruleforge/pkg/ruleforge"
	"github.com/cassite-labs/ruleforge/pkg/ruleforge/script"
)

func main() {
	root := &cobra.Command{
		Use:           "ruleforge [flags] [subcommand]",
		Short:         "Generate a flat build artifact from a scripted rule graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.DisableFlagParsing = true
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return run(args)
	}

	if err := root.Execute(); err != nil {
		reportFatal(err)
		os.Exit(1)
	}
}

func reportFatal(err error) {
	fmt.Fprintln(os.Stderr, "ruleforge: "+err.Error())
	if os.Getenv("RULEFORGE_DEBUG") != "" {
		if rfErr, ok := err.(*ruleforge.Error); ok {
			fmt.Fprintln(os.Stderr, rfErr.Stack())
		}
	}
}

func run(args []string) error {
	vars := ruleforge.NewVarStore()

	cfg, cfgErr := ruleforge.LoadDriverConfig(".")
	if cfgErr != nil {
		return cfgErr
	}
	cfg.Seed(vars)

	positional, help, err := vars.ParseArgs(args)
	if err != nil {
		return err
	}
	if help {
		printUsage()
		return nil
	}

	subcommand := "makefile"
	var targets []string
	if len(positional) > 0 {
		subcommand = positional[0]
		targets = positional[1:]
	} else if cfg.Default != "" {
		subcommand = cfg.Default
	}

	inDir := vars.AddVariable("IN", ".")
	vars.AddVariable("OUT", ".")
	vars.AddVariable("TMP", vars.GetVariable("OUT")+"/.build")
	entry := vars.AddVariable("INFILE", "Rules.go")

	graph := ruleforge.NewGraph()
	graph.Vars = vars

	scriptPath := ruleforge.NormalizeFilename(inDir, entry)
	c := ruleforge.NewContext(graph)
	if err := script.Run(scriptPath, c); err != nil {
		return err
	}

	driverPath, _ := os.Executable()
	graph.AddHashMarkers()

	var artifact string
	switch subcommand {
	case "makefile", "":
		artifact = vars.AddVariable("OUTFILE", "Makefile")
		if err := graph.Bootstrap(ruleforge.BootstrapOptions{ArtifactPath: artifact, DriverPath: driverPath, EntryScript: scriptPath}); err != nil {
			return err
		}
		return errOrNil(graph.EmitMakefile(artifact))
	case "ninjafile":
		artifact = vars.AddVariable("OUTFILE", "build.ninja")
		if err := graph.Bootstrap(ruleforge.BootstrapOptions{ArtifactPath: artifact, DriverPath: driverPath, EntryScript: scriptPath}); err != nil {
			return err
		}
		return errOrNil(graph.EmitNinjafile(artifact))
	case "scriptfile":
		artifact = vars.AddVariable("OUTFILE", "build.sh")
		if err := graph.Bootstrap(ruleforge.BootstrapOptions{ArtifactPath: artifact, DriverPath: driverPath, EntryScript: scriptPath}); err != nil {
			return err
		}
		if len(targets) == 0 {
			return ruleforge.Usagef("scriptfile requires explicit targets")
		}
		return errOrNil(graph.EmitScript(artifact, targets))
	case "show-vars":
		printVars(graph.Vars)
		return nil
	default:
		return ruleforge.Usagef("unrecognized subcommand %q", subcommand)
	}
}

func errOrNil(err *ruleforge.Error) error {
	if err == nil {
		return nil
	}
	return err
}

func printVars(v *ruleforge.VarStore) {
	for _, entry := range v.Snapshot() {
		ann := ""
		switch entry.Annotation {
		case ruleforge.AnnotationUser:
			ann = " (user-set)"
		case ruleforge.AnnotationDirectory:
			ann = " (directory)"
		}
		fmt.Printf("%s=%s%s\n", entry.Name, entry.Value, ann)
	}
}

func printUsage() {
	fmt.Println(`ruleforge [flags] [subcommand]

Flags:
  --in=PATH         source root (default .)
  --out=PATH        output root (default .)
  --infile=NAME     entry script (default Rules.go)
  --outfile=NAME    artifact name (default per subcommand)
  --with-FOO        set WITH_FOO=1
  --without-FOO     set WITH_FOO=0
  KEY=VALUE         set an arbitrary variable
  --help            show this message

Subcommands:
  makefile          classic-runner emitter (default Makefile)
  ninjafile         modern-runner emitter (default build.ninja)
  scriptfile TARGET...  shell-script emitter (default build.sh)
  show-vars         print final variable values`)
}
