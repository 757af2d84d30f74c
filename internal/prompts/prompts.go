package prompts

import (
	"fmt"
	"strings"

	"dispatch-cli/internal/i18n"
)

const (
	DefaultRepository = "gdszyy/echo-alchemist"
	DefaultGuidelines = "docs/.knowledge/EXECUTION_AGENT_README.md"
)

// IssueTask is the data substituted into the issue-task template. Every field
// is inserted verbatim; nothing is escaped.
type IssueTask struct {
	IssueID     string
	IssueURL    string
	Title       string
	Description string
	Repository  string
	Guidelines  string
}

var sectionHeaders = map[i18n.Language][]string{
	i18n.LanguageChinese: {"## 任务详情", "## 工作流程", "## 重要提醒"},
	i18n.LanguageEnglish: {"## Task Details", "## Workflow", "## Important Notes"},
}

// Sections returns the fixed section headers of the issue-task template in
// the order they appear.
func Sections(lang i18n.Language) []string {
	headers := sectionHeaders[i18n.Normalize(lang.Code())]
	return append([]string(nil), headers...)
}

// RenderIssueTask renders the issue-task prompt. Output depends only on lang
// and data.
func RenderIssueTask(lang i18n.Language, data IssueTask) (string, error) {
	tmpl, ok := lookup(PromptIssueTask, lang)
	if !ok {
		return "", fmt.Errorf("no %s template for language %q", PromptIssueTask, lang.Code())
	}
	if strings.TrimSpace(data.Repository) == "" {
		data.Repository = DefaultRepository
	}
	if strings.TrimSpace(data.Guidelines) == "" {
		data.Guidelines = DefaultGuidelines
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s: %w", PromptIssueTask, err)
	}
	return b.String(), nil
}
