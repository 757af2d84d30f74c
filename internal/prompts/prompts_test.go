package prompts

import (
	"strings"
	"testing"

	"dispatch-cli/internal/i18n"
)

func sampleTask() IssueTask {
	return IssueTask{
		IssueID:     "VOI-50",
		IssueURL:    "https://example.test/VOI-50",
		Title:       "Fix bug",
		Description: "## 任务描述\n\n* 在 `package.json` 中添加 `terser`\n* quotes \" and <tags> & {{braces}}",
	}
}

func TestRenderIssueTask_ContainsInputsVerbatim(t *testing.T) {
	for _, lang := range Languages(PromptIssueTask) {
		t.Run(lang.Code(), func(t *testing.T) {
			task := sampleTask()
			out, err := RenderIssueTask(lang, task)
			if err != nil {
				t.Fatalf("RenderIssueTask() error: %v", err)
			}
			for _, want := range []string{task.IssueID, task.IssueURL, task.Title, task.Description} {
				if !strings.Contains(out, want) {
					t.Fatalf("prompt missing %q:\n%s", want, out)
				}
			}
			for _, header := range Sections(lang) {
				if n := strings.Count(out, header); n != 1 {
					t.Fatalf("header %q appears %d times, want 1", header, n)
				}
			}
		})
	}
}

func TestRenderIssueTask_SectionOrder(t *testing.T) {
	out, err := RenderIssueTask(i18n.LanguageChinese, sampleTask())
	if err != nil {
		t.Fatalf("RenderIssueTask() error: %v", err)
	}
	last := -1
	for _, header := range Sections(i18n.LanguageChinese) {
		idx := strings.Index(out, header)
		if idx <= last {
			t.Fatalf("header %q out of order (idx=%d, prev=%d)", header, idx, last)
		}
		last = idx
	}
}

func TestRenderIssueTask_Deterministic(t *testing.T) {
	a, err := RenderIssueTask(i18n.LanguageEnglish, sampleTask())
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := RenderIssueTask(i18n.LanguageEnglish, sampleTask())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if a != b {
		t.Fatalf("renders differ:\n%q\n%q", a, b)
	}
}

func TestRenderIssueTask_DefaultsAndOverrides(t *testing.T) {
	out, err := RenderIssueTask(i18n.LanguageChinese, sampleTask())
	if err != nil {
		t.Fatalf("RenderIssueTask() error: %v", err)
	}
	if !strings.Contains(out, "gh repo clone "+DefaultRepository) {
		t.Fatalf("expected default repository in prompt:\n%s", out)
	}
	if !strings.Contains(out, DefaultGuidelines) {
		t.Fatalf("expected default guidelines in prompt:\n%s", out)
	}

	task := sampleTask()
	task.Repository = "acme/widgets"
	task.Guidelines = "CONTRIBUTING.md"
	out, err = RenderIssueTask(i18n.LanguageChinese, task)
	if err != nil {
		t.Fatalf("RenderIssueTask() error: %v", err)
	}
	if !strings.Contains(out, "gh repo clone acme/widgets") || !strings.Contains(out, "`CONTRIBUTING.md`") {
		t.Fatalf("expected overrides in prompt:\n%s", out)
	}
}

func TestRenderIssueTask_UnknownLanguage(t *testing.T) {
	if _, err := RenderIssueTask(i18n.Language("fr"), sampleTask()); err == nil {
		t.Fatalf("RenderIssueTask(fr) = nil error, want error")
	}
}

func TestRenderIssueTask_HostileInputsVerbatim(t *testing.T) {
	long := strings.Repeat("长描述 long line with {{ braces }}\n", 4000)
	cases := []struct {
		name string
		task IssueTask
	}{
		{name: "empty", task: IssueTask{}},
		{name: "section headers", task: IssueTask{
			IssueID:     "VOI-1",
			Title:       "## 任务详情",
			Description: "## Workflow\n## 重要提醒\n## Important Notes",
		}},
		{name: "template actions", task: IssueTask{
			IssueID:     "{{.IssueID}}",
			IssueURL:    "{{.Title}}",
			Title:       "{{template \"x\"}}",
			Description: "{{- .Description -}} {{end}}",
		}},
		{name: "format verbs", task: IssueTask{
			IssueID:     "%s",
			IssueURL:    "https://example.test/%d?q=%v",
			Title:       "100%",
			Description: "%!s(MISSING) %%",
		}},
		{name: "invalid utf8", task: IssueTask{
			IssueID:     "VOI-\xff",
			Title:       "bad \xc3\x28 bytes",
			Description: "\xed\xa0\x80 surrogate",
		}},
		{name: "long text", task: IssueTask{
			IssueID:     "VOI-2",
			Title:       strings.Repeat("标题", 500),
			Description: long,
		}},
	}
	for _, lang := range Languages(PromptIssueTask) {
		for _, tc := range cases {
			t.Run(lang.Code()+"/"+tc.name, func(t *testing.T) {
				out, err := RenderIssueTask(lang, tc.task)
				if err != nil {
					t.Fatalf("RenderIssueTask() error: %v", err)
				}
				inputs := []string{tc.task.IssueID, tc.task.IssueURL, tc.task.Title, tc.task.Description}
				for _, want := range inputs {
					if !strings.Contains(out, want) {
						t.Fatalf("prompt missing input %q", want)
					}
				}
				joined := strings.Join(inputs, "\x00")
				for _, header := range Sections(lang) {
					want := 1 + strings.Count(joined, header)
					if n := strings.Count(out, header); n != want {
						t.Fatalf("header %q appears %d times, want %d", header, n, want)
					}
				}
				// Rendering with markers and swapping in the inputs must
				// reproduce the real output byte for byte.
				marked, err := RenderIssueTask(lang, IssueTask{
					IssueID:     "\x01id\x01",
					IssueURL:    "\x01url\x01",
					Title:       "\x01title\x01",
					Description: "\x01desc\x01",
				})
				if err != nil {
					t.Fatalf("RenderIssueTask(markers) error: %v", err)
				}
				want := strings.NewReplacer(
					"\x01id\x01", tc.task.IssueID,
					"\x01url\x01", tc.task.IssueURL,
					"\x01title\x01", tc.task.Title,
					"\x01desc\x01", tc.task.Description,
				).Replace(marked)
				if out != want {
					t.Fatalf("inputs were not substituted verbatim")
				}
			})
		}
	}
}
