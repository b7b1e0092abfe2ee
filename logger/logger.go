package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var (
	levelNames = map[LogLevel]string{
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
		FATAL: "FATAL",
	}

	levelColors = map[LogLevel]string{
		DEBUG: "\033[36m", // Cyan
		INFO:  "\033[32m", // Green
		WARN:  "\033[33m", // Yellow
		ERROR: "\033[31m", // Red
		FATAL: "\033[35m", // Magenta
	}

	resetColor = "\033[0m"
)

// ParseLevel maps a config string to a LogLevel. Unknown values fall back to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// Logger writes leveled lines to the console and, optionally, a daily log file.
type Logger struct {
	level      LogLevel
	console    io.Writer
	file       *os.File
	mu         sync.Mutex
	useColor   bool
	prefix     string
	showCaller bool
	stop       chan struct{}
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Config describes how the logger should be initialised.
type Config struct {
	Level      LogLevel
	LogDir     string
	MaxSize    int64 // bytes
	MaxAge     int   // days
	UseColor   bool
	ShowCaller bool
	Prefix     string
	// Console defaults to os.Stdout.
	Console io.Writer
}

// New builds a standalone logger. Most callers use Initialize and the package helpers instead.
func New(config Config) (*Logger, error) {
	l := &Logger{
		level:      config.Level,
		console:    config.Console,
		useColor:   config.UseColor,
		prefix:     config.Prefix,
		showCaller: config.ShowCaller,
		stop:       make(chan struct{}),
	}
	if l.console == nil {
		l.console = os.Stdout
	}

	if config.LogDir != "" {
		if err := os.MkdirAll(config.LogDir, 0755); err != nil {
			return nil, err
		}

		file, err := openLogFile(config.LogDir, time.Now())
		if err != nil {
			return nil, err
		}
		l.file = file

		go l.rotate(config.LogDir, config.MaxSize, config.MaxAge)
	}

	return l, nil
}

// Initialize boots the global logger instance if it has not been created yet.
func Initialize(config Config) error {
	var err error
	once.Do(func() {
		defaultLogger, err = New(config)
	})
	return err
}

// Close stops file rotation and closes the current log file.
func Close() error {
	if defaultLogger == nil {
		return nil
	}
	return defaultLogger.Close()
}

// Close stops rotation and releases the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.stop:
	default:
		close(l.stop)
	}

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func openLogFile(logDir string, day time.Time) (*os.File, error) {
	logPath := filepath.Join(logDir, fmt.Sprintf("server-%s.log", day.Format("2006-01-02")))
	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// rotate switches to a new file at day change, archives oversized files and prunes old ones.
func (l *Logger) rotate(logDir string, maxSize int64, maxAge int) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	currentDay := time.Now().Format("2006-01-02")
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			if l.file == nil {
				l.mu.Unlock()
				return
			}

			info, statErr := l.file.Stat()
			dayChanged := now.Format("2006-01-02") != currentDay
			tooLarge := statErr == nil && maxSize > 0 && info.Size() > maxSize
			if dayChanged || tooLarge {
				name := l.file.Name()
				l.file.Close()
				if tooLarge && !dayChanged {
					archived := strings.TrimSuffix(name, ".log") + fmt.Sprintf("-%d.log", now.Unix())
					os.Rename(name, archived)
				}
				if f, err := openLogFile(logDir, now); err == nil {
					l.file = f
				} else {
					l.file = nil
				}
				currentDay = now.Format("2006-01-02")
			}
			l.mu.Unlock()

			if maxAge > 0 {
				files, _ := filepath.Glob(filepath.Join(logDir, "server-*.log"))
				for _, file := range files {
					info, err := os.Stat(file)
					if err != nil {
						continue
					}
					if now.Sub(info.ModTime()) > time.Duration(maxAge)*24*time.Hour {
						os.Remove(file)
					}
				}
			}
		}
	}
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	if level < l.level {
		l.mu.Unlock()
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	levelName := levelNames[level]
	message := fmt.Sprintf(format, args...)

	caller := ""
	if l.showCaller {
		if _, file, line, ok := runtime.Caller(3); ok {
			caller = fmt.Sprintf(" [%s:%d]", filepath.Base(file), line)
		}
	}

	plain := fmt.Sprintf("%s%s [%s]%s %s\n", timestamp, caller, levelName, l.prefix, message)
	if l.useColor {
		fmt.Fprintf(l.console, "%s%s [%s]%s %s%s%s\n",
			timestamp, caller, levelName, l.prefix, levelColors[level], message, resetColor)
	} else {
		io.WriteString(l.console, plain)
	}
	if l.file != nil {
		l.file.WriteString(plain)
	}
	l.mu.Unlock()

	if level == FATAL {
		os.Exit(1)
	}
}

// Public helper methods for the default logger.
func Debug(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(DEBUG, format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(INFO, format, args...)
	} else {
		log.Printf("[INFO] "+format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(WARN, format, args...)
	} else {
		log.Printf("[WARN] "+format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(ERROR, format, args...)
	} else {
		log.Printf("[ERROR] "+format, args...)
	}
}

func Fatal(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(FATAL, format, args...)
	} else {
		log.Fatalf("[FATAL] "+format, args...)
	}
}

// WithFields attaches structured fields to the log entry.
func WithFields(fields map[string]interface{}) *LogEntry {
	return &LogEntry{
		fields: fields,
		logger: defaultLogger,
	}
}

// WithFields attaches structured fields to an entry bound to this logger.
func (l *Logger) WithFields(fields map[string]interface{}) *LogEntry {
	return &LogEntry{
		fields: fields,
		logger: l,
	}
}

// LogEntry represents a structured log entry builder.
type LogEntry struct {
	fields map[string]interface{}
	logger *Logger
}

func (e *LogEntry) Debug(format string, args ...interface{}) {
	e.log(DEBUG, format, args...)
}

func (e *LogEntry) Info(format string, args ...interface{}) {
	e.log(INFO, format, args...)
}

func (e *LogEntry) Warn(format string, args ...interface{}) {
	e.log(WARN, format, args...)
}

func (e *LogEntry) Error(format string, args ...interface{}) {
	e.log(ERROR, format, args...)
}

func (e *LogEntry) Fatal(format string, args ...interface{}) {
	e.log(FATAL, format, args...)
}

// Log allows emitting a message with an explicit level via the entry.
func (e *LogEntry) Log(level LogLevel, format string, args ...interface{}) {
	e.log(level, format, args...)
}

func (e *LogEntry) log(level LogLevel, format string, args ...interface{}) {
	if e.logger == nil {
		return
	}

	message := fmt.Sprintf(format, args...)
	if len(e.fields) > 0 {
		keys := make([]string, 0, len(e.fields))
		for k := range e.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.fields[k]))
		}
		message = fmt.Sprintf("%s | %s", message, strings.Join(parts, ", "))
	}

	e.logger.log(level, "%s", message)
}

// SetLevel updates the global logging level.
func SetLevel(level LogLevel) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.level = level
		defaultLogger.mu.Unlock()
	}
}

// GetLevel returns the current global logging level.
func GetLevel() LogLevel {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defer defaultLogger.mu.Unlock()
		return defaultLogger.level
	}
	return INFO
}
