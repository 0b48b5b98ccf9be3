package logs

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Filter selects log lines. Zero fields match everything.
type Filter struct {
	Component string
	// Session matches a session id by prefix. Console lines carry only the
	// first eight characters.
	Session  string
	MinLevel slog.Level
	// Levels is false when MinLevel should be ignored.
	Levels bool
}

// Empty reports whether the filter passes every line.
func (f Filter) Empty() bool {
	return f.Component == "" && f.Session == "" && !f.Levels
}

type lineFields struct {
	level     string
	component string
	session   string
}

// Match reports whether line passes the filter. Lines that cannot be parsed
// only pass an empty filter.
func (f Filter) Match(line string) bool {
	if f.Empty() {
		return true
	}
	fields, ok := parseLine(line)
	if !ok {
		return false
	}
	if f.Component != "" && !strings.EqualFold(fields.component, f.Component) {
		return false
	}
	if f.Session != "" {
		prefix := strings.ToLower(f.Session)
		session := strings.ToLower(fields.session)
		if session == "" || !(strings.HasPrefix(session, prefix) || strings.HasPrefix(prefix, session)) {
			return false
		}
	}
	if f.Levels {
		level, ok := parseLevel(fields.level)
		if !ok || level < f.MinLevel {
			return false
		}
	}
	return true
}

func parseLine(line string) (lineFields, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		var rec struct {
			Level     string `json:"level"`
			Component string `json:"component"`
			SessionID string `json:"session_id"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return lineFields{}, false
		}
		return lineFields{level: rec.Level, component: rec.Component, session: rec.SessionID}, true
	}

	// date time LEVEL subject: message
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 4 {
		return lineFields{}, false
	}
	out := lineFields{level: parts[2]}
	subject, _, found := strings.Cut(parts[3], ": ")
	if !found {
		return out, true
	}
	for i, part := range strings.Split(subject, " · ") {
		switch {
		case strings.HasPrefix(part, "session "):
			out.session = strings.TrimPrefix(part, "session ")
		case strings.HasPrefix(part, "item #"):
		case i == 0:
			out.component = part
		}
	}
	return out, true
}

// ParseLevel accepts the level spellings used in config and log output.
func ParseLevel(value string) (slog.Level, bool) {
	return parseLevel(value)
}

func parseLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
