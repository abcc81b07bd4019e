// Package logger configures the application's logging.
//
// It uses *ZeroLog* for structured logging and fans every event out to
// three destinations:
//   - the console, for INFO and above
//   - a rotating info.log, for INFO and above
//   - a rotating error.log, for ERROR and above
//
// Rotation is handled by lumberjack. The destination set can be swapped
// at runtime with Reconfigure without rebuilding any logger.
//
// Levels are written with the names used in settings: "warning" and
// "critical" instead of zerolog's "warn" and "fatal".
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// InfoLogFile and ErrorLogFile are created inside Options.Dir.
	InfoLogFile  = "info.log"
	ErrorLogFile = "error.log"

	// maxFileSizeMB is the lumberjack rotation threshold (10 MiB).
	maxFileSizeMB = 10
	// maxBackups is how many rotated generations are retained.
	maxBackups = 5

	consoleTimeFormat = "2006-01-02 15:04:05"

	// NameFieldName carries the component name set through Named.
	NameFieldName = "logger"
)

// Options describe one destination set.
type Options struct {
	// Level is the minimum severity: DEBUG, INFO, WARNING, ERROR or CRITICAL.
	Level string

	// Dir is the directory holding info.log and error.log.
	Dir string

	// Console receives the human-readable stream. Defaults to os.Stdout.
	Console io.Writer
}

// sink is one immutable set of destinations.
type sink struct {
	writer  zerolog.LevelWriter
	level   zerolog.Level
	closers []io.Closer
}

// LoggerService owns the process-wide logger and its destinations.
//
// The logger writes into the service itself, and the service forwards each
// event to the current sink. Swapping the sink therefore redirects every
// logger derived from Logger(), including ones captured before the swap.
type LoggerService struct {
	// mu guards current. Writes hold the read lock for the whole write, so a
	// sink is never closed while an event is still going into its files.
	mu      sync.RWMutex
	current *sink

	logger zerolog.Logger
}

var callerOnce sync.Once

// New bootstraps logging and installs the result as zerolog's global logger.
//
// It fails when the level is unknown or the log directory cannot be created.
// Both are startup errors: the caller should exit instead of serving.
func New(opts Options) (*LoggerService, error) {
	callerOnce.Do(func() {
		zerolog.CallerMarshalFunc = marshalCaller
		// .Stack() events render pkg/errors stack traces.
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.LevelFieldMarshalFunc = LevelName
	})

	s := &LoggerService{}
	if err := s.Reconfigure(opts); err != nil {
		return nil, err
	}

	// The logger level stays at the lowest value; the sink does the
	// filtering so Reconfigure can change the threshold too.
	s.logger = zerolog.New(s).Level(zerolog.TraceLevel).With().Timestamp().Caller().Logger()
	log.Logger = s.logger

	return s, nil
}

// Reconfigure builds a new destination set from opts and atomically
// replaces the current one. The previous files are closed afterwards.
//
// If opts is invalid the current destinations stay in place.
func (s *LoggerService) Reconfigure(opts Options) error {
	next, err := newSink(opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.current
	s.current = next
	s.mu.Unlock()

	if prev != nil {
		// Errors closing the replaced files are not actionable here.
		_ = prev.close()
	}
	return nil
}

// Logger returns the process logger.
func (s *LoggerService) Logger() *zerolog.Logger {
	return &s.logger
}

// Named returns a child logger tagged with a component name.
func (s *LoggerService) Named(name string) zerolog.Logger {
	return s.logger.With().Str(NameFieldName, name).Logger()
}

// Close releases the log files. Later writes are dropped.
func (s *LoggerService) Close() error {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev == nil {
		return nil
	}
	return prev.close()
}

// Write implements io.Writer for events without a level.
func (s *LoggerService) Write(p []byte) (int, error) {
	return s.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel implements zerolog.LevelWriter.
func (s *LoggerService) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.current
	if current == nil || (level != zerolog.NoLevel && level < current.level) {
		return len(p), nil
	}
	return current.writer.WriteLevel(level, p)
}

func newSink(opts Options) (*sink, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	if opts.Dir == "" {
		return nil, fmt.Errorf("log directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", opts.Dir, err)
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	infoFile := newRotatingFile(filepath.Join(opts.Dir, InfoLogFile))
	errorFile := newRotatingFile(filepath.Join(opts.Dir, ErrorLogFile))

	consoleWriter := zerolog.ConsoleWriter{
		Out:          zerolog.SyncWriter(console),
		NoColor:      true,
		TimeFormat:   consoleTimeFormat,
		PartsOrder:   []string{zerolog.TimestampFieldName, NameFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		PartsExclude: []string{zerolog.CallerFieldName},
		FormatLevel:  formatConsoleLevel,
		FormatFieldValue: func(v any) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprint(v)
		},
		FieldsExclude: []string{NameFieldName},
	}

	writer := zerolog.MultiLevelWriter(
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: consoleWriter},
			Level:  zerolog.InfoLevel,
		},
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: infoFile},
			Level:  zerolog.InfoLevel,
		},
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: errorFile},
			Level:  zerolog.ErrorLevel,
		},
	)

	return &sink{
		writer:  writer,
		level:   level,
		closers: []io.Closer{infoFile, errorFile},
	}, nil
}

func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxBackups,
	}
}

func (s *sink) close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// marshalCaller renders the caller as "file.go:42 - pkg.Func()".
func marshalCaller(pc uintptr, file string, line int) string {
	location := filepath.Base(file) + ":" + strconv.Itoa(line)

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return location
	}

	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return location + " - " + name + "()"
}
