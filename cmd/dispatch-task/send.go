package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"dispatch-cli/internal/auth"
	"dispatch-cli/internal/config"
	"dispatch-cli/internal/dispatch"
	"dispatch-cli/internal/i18n"
	"dispatch-cli/internal/logger"
	"dispatch-cli/internal/prompts"
	"dispatch-cli/internal/render"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

type sendArgs struct {
	cfgPath         string
	issue           dispatch.Issue
	descriptionFile string
	lang            string
	dryRun          bool
	copyResult      bool
}

func parseSendArgs(args []string) (sendArgs, error) {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var a sendArgs
	fs.StringVar(&a.cfgPath, "config", "", "Path to config file (default ~/.dispatch/config.toml)")
	fs.StringVar(&a.issue.ID, "id", "", "Issue identifier, e.g. VOI-50")
	fs.StringVar(&a.issue.URL, "url", "", "Issue URL")
	fs.StringVar(&a.issue.Title, "title", "", "Issue title")
	fs.StringVar(&a.issue.Description, "description", "", "Issue description (Markdown)")
	fs.StringVar(&a.descriptionFile, "description-file", "", "Read the description from a file ('-' for stdin)")
	fs.StringVar(&a.lang, "lang", "", "Prompt language: zh or en (default from config)")
	fs.BoolVar(&a.dryRun, "dry-run", false, "Print the request body instead of sending it")
	fs.BoolVar(&a.copyResult, "copy", false, "Copy the task URL (or id) to the clipboard")
	if err := fs.Parse(args); err != nil {
		return a, err
	}
	if fs.NArg() > 0 {
		return a, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if strings.TrimSpace(a.issue.ID) == "" {
		return a, errors.New("--id is required")
	}
	if a.issue.Description != "" && a.descriptionFile != "" {
		return a, errors.New("--description and --description-file are mutually exclusive")
	}
	return a, nil
}

func readDescription(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read description from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read description: %w", err)
	}
	return string(data), nil
}

func checkLanguage(lang i18n.Language) error {
	available := prompts.Languages(prompts.PromptIssueTask)
	codes := make([]string, 0, len(available))
	for _, l := range available {
		if l == lang {
			return nil
		}
		codes = append(codes, l.Code())
	}
	return fmt.Errorf("unsupported language %q (available: %s)", lang.Code(), strings.Join(codes, ", "))
}

func runSend(root rootArgs, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a, err := parseSendArgs(args)
	if err != nil {
		return err
	}
	if a.descriptionFile != "" {
		if a.issue.Description, err = readDescription(a.descriptionFile, stdin); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	var extra []string
	if strings.TrimSpace(a.lang) != "" {
		extra = append(extra, "language="+a.lang)
	}
	if cfg, err = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, extra)); err != nil {
		return err
	}
	lang := i18n.Normalize(cfg.Language)
	if err := checkLanguage(lang); err != nil {
		return err
	}
	connectors, err := cfg.ResolveConnectors()
	if err != nil {
		return err
	}

	opts := dispatch.Options{
		BaseURL:      cfg.BaseURL,
		KeySetting:   config.EnvAPIKey,
		AuthHeader:   cfg.AuthHeader,
		AgentProfile: cfg.AgentProfile,
		TaskMode:     cfg.TaskMode,
		Connectors:   connectors,
		Language:     lang,
		Repository:   cfg.Repository,
		Guidelines:   cfg.Guidelines,
		Timeout:      time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		Logger:       logger.NewHTTPLogger(nil),
	}
	entry := logger.Named("send").WithField(logger.IssueField, a.issue.ID)

	if a.dryRun {
		req, err := dispatch.New(opts).BuildRequest(a.issue)
		if err != nil {
			return err
		}
		entry.Infof("dry run: built request (language=%s connectors=%d)", opts.Language.DisplayName(), len(req.Connectors))
		if err := render.WriteJSON(stdout, req); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stderr, render.Summary{IssueID: a.issue.ID, Title: a.issue.Title, DryRun: true}.Line(0))
		return nil
	}

	if opts.APIKey, err = auth.ResolveAPIKey(cfg.APIKey); err != nil {
		return fmt.Errorf("load stored api key: %w", err)
	}

	entry.Infof("dispatching to %s (profile=%s mode=%s)", cfg.BaseURL, opts.AgentProfile, opts.TaskMode)
	resp, err := dispatch.New(opts).Dispatch(context.Background(), a.issue)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, render.Summary{IssueID: a.issue.ID, Title: a.issue.Title, Err: err}.Line(0))
		return reportedError{err: err}
	}
	entry.Infof("dispatched task_id=%s", resp.TaskID())

	if err := render.WriteJSON(stdout, resp); err != nil {
		return err
	}
	summary := render.Summary{IssueID: a.issue.ID, Title: a.issue.Title, TaskID: resp.TaskID(), TaskURL: resp.TaskURL()}
	_, _ = fmt.Fprintln(stderr, summary.Line(0))

	if a.copyResult {
		target := summary.TaskURL
		if target == "" {
			target = summary.TaskID
		}
		if target == "" {
			log.Warnf("nothing to copy: response has no task_url or id")
		} else if err := copyToClipboard(target); err != nil {
			log.Warnf("copy to clipboard failed: %v", err)
		}
	}
	return nil
}
