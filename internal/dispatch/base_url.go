package dispatch

import (
	"net/url"
	"strings"
)

// TasksPath is the task-creation resource under the service base URL.
const TasksPath = "/tasks"

// tasksEndpoint joins base and TasksPath. A base that already ends in /tasks
// is accepted as-is so a pasted endpoint URL still works.
func tasksEndpoint(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed == nil || parsed.Host == "" {
		return strings.TrimRight(base, "/") + TasksPath
	}
	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, TasksPath)
	parsed.Path = path + TasksPath
	parsed.RawPath = ""
	return parsed.String()
}
