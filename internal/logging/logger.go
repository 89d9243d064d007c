package logging

// Leveled logging for sadecode, written through zerolog.

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tturner/sadecode/internal/diag"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

var levelNames = map[string]LogLevel{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"info":    LogLevelInfo,
	"verbose": LogLevelVerbose,
	"debug":   LogLevelDebug,
}

// ParseLevel parses a level name.
func ParseLevel(s string) (LogLevel, error) {
	if lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q (want silent, error, info, verbose or debug)", s)
}

func (l LogLevel) String() string {
	for name, lvl := range levelNames {
		if lvl == l {
			return name
		}
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// zerolog has no separate verbose level; verbose and debug both map to
// DebugLevel and are told apart by our own gate.
func zlevel(l LogLevel) zerolog.Level {
	switch l {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Logger provides leveled logging. Errors always reach the console; other
// messages reach it only at verbose or debug level. The optional log file
// receives every enabled message.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	format   string
	logEvery int
	file     *os.File
	fileLog  *zerolog.Logger
	console  zerolog.Logger
}

// NewLogger creates a new logger with a text log file.
func NewLogger(level LogLevel, logFile string) (*Logger, error) {
	return NewLoggerWithOptions(level, logFile, "text", 1)
}

// NewLoggerWithOptions creates a logger whose file output is "text" or
// "json". logEvery > 1 samples console output, keeping one message in
// logEvery; the file is never sampled.
func NewLoggerWithOptions(level LogLevel, logFile, format string, logEvery int) (*Logger, error) {
	if format == "" {
		format = "text"
	}
	if logEvery < 1 {
		logEvery = 1
	}
	l := &Logger{level: level, format: format, logEvery: logEvery}
	l.setConsole(os.Stderr)

	if logFile != "" {
		file, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		l.file = file
		var w io.Writer = file
		if format == "text" {
			w = zerolog.ConsoleWriter{Out: file, NoColor: true, TimeFormat: time.RFC3339}
		}
		fl := zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		l.fileLog = &fl
	}

	return l, nil
}

func (l *Logger) setConsole(w io.Writer) {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	console := zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	if l.logEvery > 1 {
		console = console.Sample(&zerolog.BasicSampler{N: uint32(l.logEvery)})
	}
	l.console = console
}

// SetConsole redirects console output, stderr by default.
func (l *Logger) SetConsole(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setConsole(w)
}

// Close closes the logger and flushes all data
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = nil
		return err
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.emit(LogLevelError, fmt.Sprintf(format, v...), nil)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.emit(LogLevelInfo, fmt.Sprintf(format, v...), nil)
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	l.emit(LogLevelVerbose, fmt.Sprintf(format, v...), nil)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.emit(LogLevelDebug, fmt.Sprintf(format, v...), nil)
}

// emit writes msg at level to the file and, when allowed, the console.
func (l *Logger) emit(at LogLevel, msg string, fields func(e *zerolog.Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if at == LogLevelSilent || l.level < at {
		return
	}

	if l.fileLog != nil {
		send(l.fileLog.WithLevel(zlevel(at)), msg, fields)
	}
	if at == LogLevelError || l.level >= LogLevelVerbose {
		send(l.console.WithLevel(zlevel(at)), msg, fields)
	}
}

func send(e *zerolog.Event, msg string, fields func(e *zerolog.Event)) {
	if e == nil {
		return
	}
	if fields != nil {
		fields(e)
	}
	e.Msg(msg)
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LogDecode logs the outcome of one record decode and every diagnostic it
// produced. Failures log at error level, successes at verbose level and
// diagnostics at info level.
func (l *Logger) LogDecode(attr string, offset, length int, diags []diag.Diagnostic, err error) {
	if err != nil {
		l.emit(LogLevelError, "decode failed", func(e *zerolog.Event) {
			e.Str("attr", attr).Int("offset", offset).Int("bytes", length).Err(err)
		})
		return
	}

	l.emit(LogLevelVerbose, "decoded "+attr, func(e *zerolog.Event) {
		e.Str("attr", attr).Int("offset", offset).Int("bytes", length).Int("diagnostics", len(diags))
	})
	for _, d := range diags {
		l.emit(LogLevelInfo, d.Message, func(e *zerolog.Event) {
			e.Str("attr", attr).Str("kind", string(d.Kind)).Str("source", d.Source).Str("code", d.Code)
		})
	}
}

// LogStartup logs startup information
func (l *Logger) LogStartup(command, input, byteOrder, configPath string) {
	l.Info("Starting sadecode %s", command)
	l.Verbose("  Input: %s", input)
	l.Verbose("  Byte order: %s", byteOrder)
	l.Verbose("  Config: %s", configPath)
}

// LogHex logs hex data (for debug level)
func (l *Logger) LogHex(label string, data []byte) {
	if l.GetLevel() >= LogLevelDebug {
		l.Debug("%s: % x", label, data)
	}
}
