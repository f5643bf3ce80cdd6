// Package log writes the engine's JSON log: slog records in a size rotated
// file, each carrying the call stack of the code that logged it.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logName = "mini-rpg.slog"

	maxSizeMB      = 16
	debugMaxSizeMB = 128
	maxBackups     = 2
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time

	w io.Closer // rotated log file, nil for NewWriter loggers
}

// New returns a logger writing to a rotated file in dir. An empty dir
// selects mini-rpg in the user config directory.
func New(level string, dir string) *Logger {
	if dir == "" {
		dir = defaultDir()
	}

	lvl := parseLevel(level)
	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	if lvl == slog.LevelDebug {
		w.MaxSize = debugMaxSizeMB
	}

	l := newLogger(w, lvl)
	l.LogFile = w.Filename
	l.w = w

	l.Info("log started",
		slog.Time("start", l.Start),
		slog.String("goos", runtime.GOOS),
		slog.String("goarch", runtime.GOARCH),
		slog.Int("cpus", runtime.NumCPU()),
		slog.String("go", runtime.Version()))
	return l
}

// NewWriter returns a logger writing JSON records to w.
func NewWriter(w io.Writer, level string) *Logger {
	return newLogger(w, parseLevel(level))
}

func newLogger(w io.Writer, lvl slog.Level) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{Logger: slog.New(h), Start: time.Now()}
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "no user config directory, logging to the working directory: %v\n", err)
		return "."
	}
	return filepath.Join(dir, "mini-rpg")
}

var levels = map[string]slog.Level{
	"":      slog.LevelInfo,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func parseLevel(level string) slog.Level {
	if lvl, ok := levels[level]; ok {
		return lvl
	}
	fmt.Fprintf(os.Stderr, "unknown log level %q, using info\n", level)
	return slog.LevelInfo
}

// emit is behind every leveled method. A nil *Logger drops debug and info
// records and hands warnings and errors to the default slog logger.
func (l *Logger) emit(lvl slog.Level, msg string, args []any) {
	var sl *slog.Logger
	switch {
	case l != nil:
		sl = l.Logger
	case lvl >= slog.LevelWarn:
		sl = slog.Default()
	default:
		return
	}

	ctx := context.Background()
	if !sl.Enabled(ctx, lvl) {
		return
	}
	args = append([]any{slog.Any("callstack", Callstack(nil))}, args...)
	sl.Log(ctx, lvl, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any) { l.emit(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any) { l.emit(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(slog.LevelError, msg, args) }

// Debugf and the other ...f variants format msg and attach no attributes
// besides the call stack.
func (l *Logger) Debugf(msg string, args ...any) {
	l.emit(slog.LevelDebug, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Infof(msg string, args ...any) {
	l.emit(slog.LevelInfo, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.emit(slog.LevelWarn, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.emit(slog.LevelError, fmt.Sprintf(msg, args...), nil)
}

// Close closes the log file. It is safe on nil and on loggers without one.
func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

// With returns a logger that adds args to every record. It returns nil for
// a nil receiver.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
		w:       l.w,
	}
}
