package prompts

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"dispatch-cli/internal/i18n"
)

//go:embed text/*
var builtinFS embed.FS

// Name identifies a builtin prompt template.
type Name string

const (
	PromptIssueTask Name = "issue-task"
)

type templateKey struct {
	name Name
	lang i18n.Language
}

var builtinFiles = map[templateKey]string{
	{PromptIssueTask, i18n.LanguageChinese}: "text/issue_task_zh.md",
	{PromptIssueTask, i18n.LanguageEnglish}: "text/issue_task_en.md",
}

var builtinTemplates = func() map[templateKey]*template.Template {
	out := make(map[templateKey]*template.Template, len(builtinFiles))
	for key, path := range builtinFiles {
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("load builtin prompt %q (%s) from %s: %v", key.name, key.lang, path, err))
		}
		tmpl, err := template.New(string(key.name)).
			Option("missingkey=error").
			Parse(strings.TrimSpace(string(data)) + "\n")
		if err != nil {
			panic(fmt.Sprintf("parse builtin prompt %q (%s): %v", key.name, key.lang, err))
		}
		out[key] = tmpl
	}
	return out
}()

func lookup(name Name, lang i18n.Language) (*template.Template, bool) {
	tmpl, ok := builtinTemplates[templateKey{name: name, lang: i18n.Normalize(lang.Code())}]
	return tmpl, ok
}

// Languages lists the languages that have a template for name.
func Languages(name Name) []i18n.Language {
	var out []i18n.Language
	for _, lang := range []i18n.Language{i18n.LanguageChinese, i18n.LanguageEnglish} {
		if _, ok := lookup(name, lang); ok {
			out = append(out, lang)
		}
	}
	return out
}
