package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogFilePath is the log file, relative to the working directory.
const LogFilePath = "logs/stickview.log"

// maxLines bounds the in-memory history shown by the terminal overlay.
const maxLines = 1000

// Logger writes leveled events as JSON lines to a file and keeps a short, human-readable
// history in memory for on-screen display. Safe for concurrent use.
type Logger struct {
	zl    zerolog.Logger
	mu    sync.Mutex
	lines []string
	file  *os.File
}

// New returns a logger at level ("debug", "info", "warn", "error") that appends to
// LogFilePath and echoes to stderr. If the file cannot be opened, logging continues
// without it.
func New(level string) *Logger {
	var file *os.File
	if err := os.MkdirAll(filepath.Dir(LogFilePath), 0755); err == nil {
		file, _ = os.OpenFile(LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	}
	var outs []io.Writer
	if file != nil {
		outs = append(outs, file)
	}
	outs = append(outs, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	l := newLogger(level, outs...)
	l.file = file
	return l
}

// NewTo returns a logger that writes only to out and memory. Used by headless commands and tests.
func NewTo(level string, out io.Writer) *Logger {
	return newLogger(level, out)
}

func newLogger(level string, outs ...io.Writer) *Logger {
	l := &Logger{lines: make([]string, 0)}
	mem := zerolog.ConsoleWriter{Out: (*memSink)(l), NoColor: true, TimeFormat: time.DateTime}
	writers := append([]io.Writer{mem}, outs...)
	l.zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(level)).
		With().Timestamp().Logger()
	return l
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Log records a plain line at info level, e.g. text typed into the terminal.
func (l *Logger) Log(line string) {
	l.zl.Info().Msg(line)
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Lines returns a copy of the stored history, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// memSink receives console-formatted events and keeps them as lines.
type memSink Logger

func (s *memSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		s.lines = append(s.lines, line)
	}
	if over := len(s.lines) - maxLines; over > 0 {
		s.lines = append(s.lines[:0], s.lines[over:]...)
	}
	return len(p), nil
}
