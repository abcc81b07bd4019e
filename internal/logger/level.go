package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// CriticalLevel is the most severe level. It shares zerolog's fatal value,
// but events are emitted with WithLevel so the process keeps running.
const CriticalLevel = zerolog.FatalLevel

// ParseLevel maps one of DEBUG, INFO, WARNING, ERROR, CRITICAL
// (case-insensitive) to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO":
		return zerolog.InfoLevel, nil
	case "WARNING", "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return CriticalLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q (must be one of: DEBUG, INFO, WARNING, ERROR, CRITICAL)", level)
	}
}

// Critical starts a CRITICAL event on l. Unlike l.Fatal() it never exits.
func Critical(l *zerolog.Logger) *zerolog.Event {
	return l.WithLevel(CriticalLevel)
}

// LevelName is the name written for a level: "warning" and "critical" for
// zerolog's warn and fatal, zerolog's own name otherwise.
func LevelName(l zerolog.Level) string {
	switch l {
	case zerolog.WarnLevel:
		return "warning"
	case CriticalLevel:
		return "critical"
	default:
		return l.String()
	}
}

// formatConsoleLevel renders the level column as "INFO    ", "CRITICAL".
func formatConsoleLevel(i any) string {
	name, ok := i.(string)
	if !ok || name == "" {
		return "-"
	}
	return fmt.Sprintf("%-8s", strings.ToUpper(name))
}
