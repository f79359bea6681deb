package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// StdLogger writes structured logs to a writer in either text or JSON
// format. Text is the local-development default; JSON is selected in
// container environments or via FOODSTREET_LOG_FORMAT.
//
// Thread-safe; a single instance is shared across the client components.
type StdLogger struct {
	level  int
	format string
	name   string
	output io.Writer
	mu     sync.Mutex
}

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(level string) int {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return levelDebug
	case "WARN", "WARNING":
		return levelWarn
	case "ERROR":
		return levelError
	default:
		return levelInfo
	}
}

// NewStdLogger creates a logger for the given component name.
// Configuration priority:
//  1. Explicit parameters (highest)
//  2. Environment variables (FOODSTREET_LOG_LEVEL, FOODSTREET_LOG_FORMAT)
//  3. Defaults (lowest)
func NewStdLogger(name, level, format string) *StdLogger {
	if level == "" {
		level = os.Getenv("FOODSTREET_LOG_LEVEL")
	}
	if format == "" {
		format = os.Getenv("FOODSTREET_LOG_FORMAT")
	}
	if format == "" {
		format = "text"
		if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
			format = "json"
		}
	}
	return &StdLogger{
		level:  parseLevel(level),
		format: strings.ToLower(format),
		name:   name,
		output: os.Stdout,
	}
}

// SetOutput redirects log output, used by tests.
func (l *StdLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(levelDebug, "DEBUG", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.log(levelInfo, "INFO", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(levelWarn, "WARN", msg, fields)
}

func (l *StdLogger) Error(msg string, fields map[string]interface{}) {
	l.log(levelError, "ERROR", msg, fields)
}

func (l *StdLogger) log(level int, label, msg string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	if l.format == "json" {
		entry := map[string]interface{}{
			"time":      now,
			"level":     label,
			"component": l.name,
			"message":   msg,
		}
		for k, v := range fields {
			entry[k] = v
		}
		if data, err := json.Marshal(entry); err == nil {
			fmt.Fprintln(l.output, string(data))
		}
		return
	}

	// Text format with fields in stable order for readability
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %-5s [%s] %s", now, label, l.name, msg)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, fields[k])
	}
	fmt.Fprintln(l.output, sb.String())
}
