package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"dispatch-cli/internal/auth"
	"dispatch-cli/internal/config"
)

func runLogin(_ rootArgs, args []string, stdin io.Reader, _ io.Writer, stderr io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var key string
	fs.StringVar(&key, "api-key", "", "API key to store (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read api key: %w", err)
		}
		key = line
	}
	if err := auth.SaveAPIKey(key); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stderr, "api key saved; "+config.EnvAPIKey+" still takes precedence when set")
	return nil
}

func runLogout(_ rootArgs, _ []string, _ io.Reader, _ io.Writer, stderr io.Writer) error {
	if err := auth.Clear(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stderr, "stored api key removed")
	return nil
}

func runInit(root rootArgs, args []string, _ io.Reader, _ io.Writer, stderr io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var cfgPath string
	var force bool
	fs.StringVar(&cfgPath, "config", "", "Path to write (default ~/.dispatch/config.toml)")
	fs.BoolVar(&force, "force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}
	cfg, err := config.ApplyKVOverrides(config.Default(), root.overrides)
	if err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stderr, "wrote %s\n", cfgPath)
	return nil
}
