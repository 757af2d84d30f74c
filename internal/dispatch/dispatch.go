// Package dispatch builds the task request for one issue and submits it to
// the agent service in a single POST.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"

	"dispatch-cli/internal/i18n"
	"dispatch-cli/internal/logger"
	"dispatch-cli/internal/prompts"
)

const (
	DefaultAgentProfile = "manus-1.6"
	TaskModeAgent       = "agent"
	DefaultAuthHeader   = "API_KEY"
	DefaultKeySetting   = "MANUS_API_KEY"
)

// Doer is the part of *http.Client the dispatcher needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Issue identifies the tracked unit of work. All fields are opaque text.
type Issue struct {
	ID          string
	URL         string
	Title       string
	Description string
}

// Request is the JSON body posted to the tasks endpoint.
type Request struct {
	Prompt       string   `json:"prompt"`
	AgentProfile string   `json:"agentProfile"`
	TaskMode     string   `json:"taskMode"`
	Connectors   []string `json:"connectors"`
}

// Response is the service answer. The document is kept exactly as received;
// any JSON value is accepted, not only objects.
type Response struct {
	raw   json.RawMessage
	value any
}

// Value returns the decoded document: map[string]any, []any, string,
// float64, bool or nil.
func (r *Response) Value() any { return r.value }

// Raw returns the body bytes as received.
func (r *Response) Raw() json.RawMessage { return r.raw }

// MarshalJSON re-emits the original document, preserving key order and
// number formatting.
func (r *Response) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// TaskID returns task_id, falling back to id. Empty for non-object answers.
func (r *Response) TaskID() string {
	if v := r.str("task_id"); v != "" {
		return v
	}
	return r.str("id")
}

func (r *Response) TaskURL() string { return r.str("task_url") }

func (r *Response) str(key string) string {
	obj, ok := r.value.(map[string]any)
	if !ok {
		return ""
	}
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

// Options carries everything the dispatcher needs; nothing is read from the
// process environment.
type Options struct {
	BaseURL      string
	APIKey       string
	KeySetting   string // name reported when APIKey is empty
	AuthHeader   string
	AgentProfile string
	TaskMode     string
	Connectors   []string

	Language   i18n.Language
	Repository string
	Guidelines string

	// HTTPClient defaults to an *http.Client with Timeout (zero means none).
	HTTPClient Doer
	Timeout    time.Duration
	Logger     logger.HTTPLogger
}

// Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	opts Options
	http Doer
	log  logger.HTTPLogger
}

func New(opts Options) *Client {
	if strings.TrimSpace(opts.KeySetting) == "" {
		opts.KeySetting = DefaultKeySetting
	}
	opts.AuthHeader = strings.TrimSpace(opts.AuthHeader)
	if opts.AuthHeader == "" {
		opts.AuthHeader = DefaultAuthHeader
	}
	if strings.TrimSpace(opts.AgentProfile) == "" {
		opts.AgentProfile = DefaultAgentProfile
	}
	if strings.TrimSpace(opts.TaskMode) == "" {
		opts.TaskMode = TaskModeAgent
	}
	opts.Connectors = append([]string(nil), opts.Connectors...)

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewHTTPLogger(nil)
	}
	return &Client{opts: opts, http: hc, log: log}
}

// BuildPrompt renders the instruction prompt for issue.
func (c *Client) BuildPrompt(issue Issue) (string, error) {
	return prompts.RenderIssueTask(c.opts.Language, prompts.IssueTask{
		IssueID:     issue.ID,
		IssueURL:    issue.URL,
		Title:       issue.Title,
		Description: issue.Description,
		Repository:  c.opts.Repository,
		Guidelines:  c.opts.Guidelines,
	})
}

// BuildRequest assembles the request body. It never touches the network or
// the API key.
func (c *Client) BuildRequest(issue Issue) (Request, error) {
	if len(c.opts.Connectors) == 0 {
		return Request{}, &ConfigError{Setting: "connectors", Err: ErrMissingConnectors}
	}
	prompt, err := c.BuildPrompt(issue)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Prompt:       prompt,
		AgentProfile: c.opts.AgentProfile,
		TaskMode:     c.opts.TaskMode,
		Connectors:   append([]string(nil), c.opts.Connectors...),
	}, nil
}

// Dispatch submits one task for issue. It makes at most one HTTP call and
// never retries. Errors are *ConfigError, *TransportError, *RemoteError or
// *DecodeError (body is not valid JSON).
func (c *Client) Dispatch(ctx context.Context, issue Issue) (*Response, error) {
	key := strings.TrimSpace(c.opts.APIKey)
	if key == "" {
		return nil, &ConfigError{Setting: c.opts.KeySetting, Err: ErrMissingAPIKey}
	}
	if !httpguts.ValidHeaderFieldName(c.opts.AuthHeader) {
		return nil, &ConfigError{Setting: "auth_header", Err: fmt.Errorf("%w: %q", ErrInvalidAuthHeader, c.opts.AuthHeader)}
	}
	endpoint := tasksEndpoint(c.opts.BaseURL)
	if endpoint == "" {
		return nil, &ConfigError{Setting: "base_url", Err: ErrMissingBaseURL}
	}

	body, err := c.BuildRequest(issue)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ConfigError{Setting: "base_url", Err: err}
	}
	// Set directly so the header name goes out exactly as configured.
	req.Header[c.opts.AuthHeader] = []string{key}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Request(issue.ID, req.Method, endpoint, len(payload))
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(issue.ID, err)
		return nil, &TransportError{Method: req.Method, URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error(issue.ID, err)
		return nil, &TransportError{Method: req.Method, URL: endpoint, Err: err}
	}
	c.log.Response(issue.ID, resp.StatusCode, len(raw))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     extractDetail(raw),
			Body:       raw,
		}
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &DecodeError{Body: raw, Err: err}
	}
	return &Response{raw: raw, value: value}, nil
}

func extractDetail(raw []byte) string {
	var decoded struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &decoded); err == nil {
		if len(decoded.Error) > 0 {
			var s string
			if json.Unmarshal(decoded.Error, &s) == nil && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(decoded.Error, &nested) == nil && strings.TrimSpace(nested.Message) != "" {
				return strings.TrimSpace(nested.Message)
			}
		}
		if strings.TrimSpace(decoded.Message) != "" {
			return strings.TrimSpace(decoded.Message)
		}
	}
	return strings.TrimSpace(string(raw))
}
