package zis

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/buger/jsonparser"
)

// LogLevel mirrors the severity names a debug-log spec string names,
// per spec.md §6's "debug-log spec ('LEVEL:GROUP:FILE')".
type LogLevel int

const (
	LogOff LogLevel = iota
	LogError
	LogWarn
	LogInfo
	LogDebug
)

func parseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "error":
		return LogError
	case "warn", "warning":
		return LogWarn
	case "info":
		return LogInfo
	case "debug":
		return LogDebug
	default:
		return LogOff
	}
}

// Diagnostics is the runtime's structured logger: a level/group filter
// plus a stdlib *log.Logger sink, configured from the host's
// debug-log spec (see config.go's LoadEnv).
type Diagnostics struct {
	level  LogLevel
	group  string // empty matches every group
	logger *log.Logger
}

// NewDiagnostics builds a Diagnostics from c's debug.log_* settings.
// A missing or unparseable level disables logging entirely.
func NewDiagnostics(c Config) *Diagnostics {
	level := parseLogLevel(c.GetString("debug.log_level"))
	group := c.GetString("debug.log_group")

	var out io.Writer = os.Stderr
	if path := c.GetString("debug.log_file"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	return &Diagnostics{
		level:  level,
		group:  group,
		logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (d *Diagnostics) enabled(level LogLevel, group string) bool {
	if d == nil || level == LogOff || level > d.level {
		return false
	}
	return d.group == "" || d.group == group
}

// Logf emits one structured diagnostic line if level/group pass the
// configured filter.
func (d *Diagnostics) Logf(level LogLevel, group, format string, args ...any) {
	if !d.enabled(level, group) {
		return
	}
	d.logger.Printf("[%s] %s", group, fmt.Sprintf(format, args...))
}

// ParseDiagnosticFilter reads a JSON filter blob of the shape
// {"min_level":"warn","group":"gc"} using a streaming, allocation-light
// scan rather than unmarshalling into a struct — the same tool the
// teacher pack's own benchmark harness pulls in for exactly this kind
// of small ad hoc JSON read (see SPEC_FULL.md §5). Unknown or absent
// keys keep the Diagnostics' existing settings.
func (d *Diagnostics) ParseDiagnosticFilter(blob []byte) error {
	if lvl, err := jsonparser.GetString(blob, "min_level"); err == nil {
		d.level = parseLogLevel(lvl)
	} else if err != jsonparser.KeyPathNotFoundError {
		return err
	}
	if grp, err := jsonparser.GetString(blob, "group"); err == nil {
		d.group = grp
	} else if err != jsonparser.KeyPathNotFoundError {
		return err
	}
	return nil
}
