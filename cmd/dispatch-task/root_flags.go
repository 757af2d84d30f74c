package main

import (
	"flag"
	"io"
)

type rootArgs struct {
	overrides []string
	logFile   string
	logLevel  string
}

// parseRootArgs consumes global flags up to the subcommand name.
func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("dispatch-task", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var overrides stringSlice
	var root rootArgs
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	fs.StringVar(&root.logFile, "log-file", "", "Log file path (default logs/dispatch-task.log)")
	fs.StringVar(&root.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, nil, err
	}
	root.overrides = append([]string{}, overrides...)
	return root, fs.Args(), nil
}

func prependOverrides(root []string, overrides []string) []string {
	merged := append([]string{}, root...)
	return append(merged, overrides...)
}
