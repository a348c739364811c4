package main

import (
	"fmt"
	"os"
)

const cliToolVersion = "ecsc 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "check":
		return runCheck(args[1:])
	case "deps":
		return runDeps(args[1:])
	case "dump":
		return runDump(args[1:])
	case "load":
		return runLoad(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: ecsc <command> [arguments]

commands:
  run <schema.yaml>     load a package and its dependencies, report the resulting registry
  check <schema.yaml>   load a package and its dependencies, reporting only errors
  deps fetch            fetch every git dependency named in schema.yaml into the local cache
  deps lock             resolve and write schema.lock from schema.yaml
  dump <schema.yaml>    load a package and save a snapshot of its registry to schema.db
  load <name> [dir]     print a previously dumped snapshot by package name
  version               print the tool version`)
}
