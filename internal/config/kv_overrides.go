package config

import (
	"fmt"
	"strconv"
	"strings"

	"dispatch-cli/internal/connector"
)

// ApplyKVOverrides applies free-form -c key=value overrides. Keys of the form
// connectors.<name> set a connector ID; dispatch_connectors takes a
// comma-separated list.
func ApplyKVOverrides(cfg Config, overrides []string) (Config, error) {
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			return cfg, fmt.Errorf("invalid override %q: want key=value", raw)
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "base_url", "url":
			cfg.BaseURL = val
		case "agent_profile":
			cfg.AgentProfile = val
		case "task_mode":
			cfg.TaskMode = val
		case "auth_header":
			cfg.AuthHeader = val
		case "language":
			cfg.Language = val
		case "repository", "repo":
			cfg.Repository = val
		case "guidelines":
			cfg.Guidelines = val
		case "request_timeout_seconds", "timeout":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return cfg, fmt.Errorf("invalid %s %q", key, val)
			}
			cfg.RequestTimeoutSeconds = n
		case "dispatch_connectors":
			cfg.DispatchConnectors = splitList(val)
		default:
			name, ok := strings.CutPrefix(key, "connectors.")
			if !ok || name == "" {
				return cfg, fmt.Errorf("unknown config key %q", key)
			}
			next := make(connector.Registry, len(cfg.Connectors)+1)
			for k, v := range cfg.Connectors {
				next[k] = v
			}
			next[name] = val
			cfg.Connectors = next
		}
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
