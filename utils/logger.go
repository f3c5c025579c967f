package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel enumerates severity tiers.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLevel maps a config string ("debug", "info", ...) to a LogLevel.
// Unknown strings fall back to INFO.
func ParseLevel(s string) LogLevel {
	for i, n := range levelNames {
		if strings.EqualFold(s, n) {
			return LogLevel(i)
		}
	}
	return INFO
}

// Logger is a concurrency-safe, levelled logger shared by both programs.
// Output goes to stdout (unless the console is muted) and, optionally, to a
// size-rotated log file.
type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	console bool
	inner   *log.Logger
	file    *lumberjack.Logger
}

var (
	globalLogger *Logger
	logOnce      sync.Once
)

// InitLogger creates the singleton logger. Call once at startup.
func InitLogger(minLevel LogLevel, logFilePath string) *Logger {
	logOnce.Do(func() {
		var f *lumberjack.Logger
		if logFilePath != "" {
			f = &lumberjack.Logger{
				Filename:   logFilePath,
				MaxSize:    16, // MB
				MaxBackups: 3,
			}
		}
		globalLogger = &Logger{
			level:   minLevel,
			console: true,
			file:    f,
		}
		globalLogger.rebuild()
	})
	return globalLogger
}

// L returns the global logger, initialising a stdout-only one at DEBUG if
// InitLogger has not been called.
func L() *Logger {
	if globalLogger == nil {
		return InitLogger(DEBUG, "")
	}
	return globalLogger
}

// rebuild recreates the writer chain. Caller must hold mu or be the sole owner.
func (l *Logger) rebuild() {
	var writers []io.Writer
	if l.console {
		writers = append(writers, os.Stdout)
	}
	if l.file != nil {
		writers = append(writers, l.file)
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}
	l.inner = log.New(io.MultiWriter(writers...), "", 0)
}

// SetConsole enables or disables the stdout tee. The pilot mutes it while
// the terminal screen is active.
func (l *Logger) SetConsole(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = on
	l.rebuild()
}

// SetLevel changes the minimum level that is emitted.
func (l *Logger) SetLevel(lvl LogLevel) {
	l.mu.Lock()
	l.level = lvl
	l.mu.Unlock()
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) log(lvl LogLevel, format string, args ...any) {
	l.mu.Lock()
	if lvl < l.level {
		l.mu.Unlock()
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	l.inner.Printf("[%s] %s  %s", lvl, ts, msg)
	l.mu.Unlock()

	if lvl == FATAL {
		os.Exit(1)
	}
}

func (l *Logger) Debug(f string, a ...any) { l.log(DEBUG, f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.log(INFO, f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.log(WARN, f, a...) }
func (l *Logger) Error(f string, a ...any) { l.log(ERROR, f, a...) }
func (l *Logger) Fatal(f string, a ...any) { l.log(FATAL, f, a...) }
