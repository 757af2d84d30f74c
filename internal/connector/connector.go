// Package connector resolves the connector references named in config into
// the opaque IDs the agent service expects.
package connector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

const (
	GitHub = "github"
	Linear = "linear"
)

// Defaults are the integrations granted to every dispatched task, in order:
// source control first, then the issue tracker.
var Defaults = []string{GitHub, Linear}

// Registry maps symbolic connector names to IDs.
type Registry map[string]string

// UnknownError reports a reference that is neither a registered name nor a UUID.
type UnknownError struct {
	Ref        string
	Suggestion string
}

func (e *UnknownError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown connector %q (did you mean %q?)", e.Ref, e.Suggestion)
	}
	return fmt.Sprintf("unknown connector %q", e.Ref)
}

// Resolve turns refs into connector IDs, keeping their order. A ref is either
// a name in r or a literal UUID.
func (r Registry) Resolve(refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	seen := make(map[string]string, len(refs))
	for _, raw := range refs {
		ref := strings.TrimSpace(raw)
		if ref == "" {
			continue
		}
		id, err := r.resolveOne(ref)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("connector %q duplicates %q", ref, prev)
		}
		seen[id] = ref
		out = append(out, id)
	}
	return out, nil
}

func (r Registry) resolveOne(ref string) (string, error) {
	if id, ok := r.lookup(ref); ok {
		if strings.TrimSpace(id) == "" {
			return "", fmt.Errorf("connector %q has no id configured", ref)
		}
		return strings.TrimSpace(id), nil
	}
	if _, err := uuid.Parse(ref); err == nil {
		return ref, nil
	}
	return "", &UnknownError{Ref: ref, Suggestion: r.suggest(ref)}
}

func (r Registry) lookup(ref string) (string, bool) {
	if id, ok := r[ref]; ok {
		return id, true
	}
	for name, id := range r {
		if strings.EqualFold(name, ref) {
			return id, true
		}
	}
	return "", false
}

func (r Registry) suggest(ref string) string {
	names := r.Names()
	matches := fuzzy.Find(strings.ToLower(ref), names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// Names returns the registered names sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
