package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dispatch-cli/internal/config"
	"dispatch-cli/internal/logger"
)

var log = logger.Named("cli")

const usage = `usage: dispatch-task [-c key=value]... [-log-file PATH] [-log-level LEVEL] <command> [flags]

commands:
  send     dispatch one issue to the agent service
  login    store the API key in ~/.dispatch/auth.json
  logout   remove the stored API key
  init     write a default config file
`

func main() {
	logger.Configure()
	if err := config.LoadDotEnv(""); err != nil {
		log.Warnf("failed to load .env: %v", err)
	}

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := logger.SetLevel(root.logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	if logFile, _, err := logger.SetupFile(root.logFile); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	if len(rest) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	var run func(rootArgs, []string, io.Reader, io.Writer, io.Writer) error
	switch rest[0] {
	case "send":
		run = runSend
	case "login":
		run = runLogin
	case "logout":
		run = runLogout
	case "init":
		run = runInit
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", rest[0], usage)
		os.Exit(2)
	}
	if err := run(root, rest[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		reportError(os.Stderr, err)
		log.Fatalf("%s failed: %v", rest[0], err)
	}
}

// reportedError marks an error whose details the subcommand already wrote to
// stderr.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reportError(w io.Writer, err error) {
	var reported reportedError
	if errors.As(err, &reported) {
		return
	}
	_, _ = fmt.Fprintf(w, "error: %v\n", err)
}
