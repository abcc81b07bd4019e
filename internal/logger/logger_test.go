package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, level string) (*LoggerService, string, *bytes.Buffer) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "logs")
	console := &bytes.Buffer{}

	svc, err := New(Options{Level: level, Dir: dir, Console: console})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return svc, dir, console
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestNew_CreatesDirectory(t *testing.T) {
	_, dir, _ := newTestService(t, "INFO")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_UncreatableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	svc, err := New(Options{Level: "INFO", Dir: filepath.Join(blocker, "logs")})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestNew_InvalidLevel(t *testing.T) {
	svc, err := New(Options{Level: "verbose", Dir: t.TempDir()})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestRouting_ByLevel(t *testing.T) {
	svc, dir, console := newTestService(t, "DEBUG")
	l := svc.Logger()

	l.Debug().Msg("debug message")
	l.Info().Msg("info message")
	l.Warn().Msg("warning message")
	l.Error().Msg("error message")
	Critical(l).Msg("critical message")

	infoLines := readLines(t, filepath.Join(dir, InfoLogFile))
	errorLines := readLines(t, filepath.Join(dir, ErrorLogFile))

	require.Len(t, infoLines, 4)
	assert.Contains(t, infoLines[0], "info message")
	assert.Contains(t, infoLines[1], "warning message")
	assert.Contains(t, infoLines[2], "error message")
	assert.Contains(t, infoLines[3], "critical message")

	require.Len(t, errorLines, 2)
	assert.Contains(t, errorLines[0], "error message")
	assert.Contains(t, errorLines[1], "critical message")

	out := console.String()
	assert.NotContains(t, out, "debug message", "console is INFO and above")
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "critical message")
}

func TestRouting_MinimumLevelDropsEverywhere(t *testing.T) {
	svc, dir, console := newTestService(t, "ERROR")
	l := svc.Logger()

	l.Info().Msg("dropped")
	l.Error().Msg("kept")

	infoLines := readLines(t, filepath.Join(dir, InfoLogFile))
	require.Len(t, infoLines, 1)
	assert.Contains(t, infoLines[0], "kept")
	assert.NotContains(t, console.String(), "dropped")
}

func TestFileLines_IncludeCallerAndFunction(t *testing.T) {
	svc, dir, _ := newTestService(t, "INFO")
	svc.Logger().Error().Msg("with caller")

	lines := readLines(t, filepath.Join(dir, ErrorLogFile))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))

	assert.Equal(t, "error", entry[zerolog.LevelFieldName])
	assert.Equal(t, "with caller", entry[zerolog.MessageFieldName])
	assert.NotEmpty(t, entry[zerolog.TimestampFieldName])

	caller, ok := entry[zerolog.CallerFieldName].(string)
	require.True(t, ok)
	assert.Contains(t, caller, "logger_test.go:")
	assert.Contains(t, caller, "TestFileLines_IncludeCallerAndFunction()")
}

func TestNamed_AddsComponent(t *testing.T) {
	svc, dir, console := newTestService(t, "INFO")

	named := svc.Named("payback")
	named.Info().Msg("named message")

	lines := readLines(t, filepath.Join(dir, InfoLogFile))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"logger":"payback"`)
	assert.Contains(t, console.String(), "payback")
}

func TestReconfigure_ReplacesDestinations(t *testing.T) {
	svc, firstDir, firstConsole := newTestService(t, "INFO")

	// captured before the swap on purpose
	captured := svc.Named("captured")
	captured.Info().Msg("before")

	secondDir := filepath.Join(t.TempDir(), "second")
	secondConsole := &bytes.Buffer{}
	require.NoError(t, svc.Reconfigure(Options{Level: "INFO", Dir: secondDir, Console: secondConsole}))

	captured.Info().Msg("after")

	first := readLines(t, filepath.Join(firstDir, InfoLogFile))
	require.Len(t, first, 1)
	assert.Contains(t, first[0], "before")

	second := readLines(t, filepath.Join(secondDir, InfoLogFile))
	require.Len(t, second, 1, "no duplicate output after reconfigure")
	assert.Contains(t, second[0], "after")

	assert.NotContains(t, firstConsole.String(), "after")
	assert.Equal(t, 1, strings.Count(secondConsole.String(), "after"))
}

func TestReconfigure_SameDirectoryDoesNotDuplicate(t *testing.T) {
	svc, dir, console := newTestService(t, "INFO")

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Reconfigure(Options{Level: "INFO", Dir: dir, Console: console}))
	}
	svc.Logger().Info().Msg("once")

	assert.Len(t, readLines(t, filepath.Join(dir, InfoLogFile)), 1)
	assert.Equal(t, 1, strings.Count(console.String(), "once"))
}

func TestReconfigure_FailureKeepsCurrent(t *testing.T) {
	svc, dir, _ := newTestService(t, "INFO")

	err := svc.Reconfigure(Options{Level: "nope", Dir: dir})
	require.Error(t, err)

	svc.Logger().Info().Msg("still here")
	assert.Len(t, readLines(t, filepath.Join(dir, InfoLogFile)), 1)
}

func TestConcurrentWrites(t *testing.T) {
	svc, dir, _ := newTestService(t, "INFO")

	const writers, perWriter = 8, 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := svc.Named("worker")
			for j := 0; j < perWriter; j++ {
				l.Info().Int("n", j).Msg("concurrent")
			}
		}()
	}
	wg.Wait()

	lines := readLines(t, filepath.Join(dir, InfoLogFile))
	require.Len(t, lines, writers*perWriter)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), "interleaved line: %s", line)
	}
}

func TestRotatingFile_Limits(t *testing.T) {
	path := filepath.Join(t.TempDir(), InfoLogFile)
	f := newRotatingFile(path)

	assert.Equal(t, path, f.Filename)
	assert.Equal(t, 10, f.MaxSize, "rotate at 10 MiB")
	assert.Equal(t, 5, f.MaxBackups, "keep five rotated generations")
}

func TestLevelNames(t *testing.T) {
	svc, dir, console := newTestService(t, "INFO")
	l := svc.Logger()

	l.Warn().Msg("careful")
	Critical(l).Msg("on fire")

	lines := readLines(t, filepath.Join(dir, InfoLogFile))
	require.Len(t, lines, 2)

	levels := make([]any, 0, len(lines))
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		levels = append(levels, entry[zerolog.LevelFieldName])
	}
	assert.Equal(t, []any{"warning", "critical"}, levels)

	out := console.String()
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "CRITICAL")
	assert.NotContains(t, out, "FTL")
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "debug", LevelName(zerolog.DebugLevel))
	assert.Equal(t, "info", LevelName(zerolog.InfoLevel))
	assert.Equal(t, "warning", LevelName(zerolog.WarnLevel))
	assert.Equal(t, "error", LevelName(zerolog.ErrorLevel))
	assert.Equal(t, "critical", LevelName(CriticalLevel))
}

// openFiles counts this process's descriptors whose target lies under dir.
func openFiles(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)

	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && strings.HasPrefix(target, dir) {
			n++
		}
	}
	return n
}

func TestReconfigure_ConcurrentWritesReleaseFiles(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("descriptor count needs /proc")
	}

	svc, dir, _ := newTestService(t, "INFO")
	console := &bytes.Buffer{}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := svc.Named("writer")
			for {
				select {
				case <-stop:
					return
				default:
					l.Error().Msg("busy")
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		require.NoError(t, svc.Reconfigure(Options{Level: "INFO", Dir: dir, Console: console}))
	}
	close(stop)
	wg.Wait()

	require.NoError(t, svc.Close())
	assert.Zero(t, openFiles(t, dir), "log files left open after Close")

	svc.Logger().Error().Msg("after close")
	assert.Zero(t, openFiles(t, dir), "a write after Close reopened a file")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"Warning", zerolog.WarnLevel},
		{"warn", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"critical", CriticalLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("TRACE")
	assert.Error(t, err)
}

func TestParseLevel_Ordering(t *testing.T) {
	order := []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
	for i := 1; i < len(order); i++ {
		lo, _ := ParseLevel(order[i-1])
		hi, _ := ParseLevel(order[i])
		assert.Less(t, lo, hi)
	}
}
