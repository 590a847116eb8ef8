package logs

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
	DEBUG Level = "DEBUG"
)

// levelPriority defines the priority of each log level
// higher value= more severe
var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

// ParseLevel maps a case-insensitive level name to a Level.
func ParseLevel(s string) (Level, error) {
	lvl := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[lvl]; !ok {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

type Entry struct {
	TimeStamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Component string    `json:"component,omitempty"`
	Message   string    `json:"message"`
}

// buffer is the ring shared by a logger and every child made with With.
type buffer struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	out     io.Writer
}

type Logger struct {
	buf       *buffer
	level     Level
	component string
}

// level: minimum log level to record(e.g., INFO, WARN, ERROR,DEBUG)
//
// maxsize:maximum number of log entries kept in memory
func NewLogger(maxSize int, level Level) *Logger {
	return &Logger{
		buf: &buffer{
			entries: make([]Entry, 0, maxSize),
			maxSize: maxSize,
		},
		level: level,
	}
}

// With returns a logger that tags its entries with component and writes to
// the same buffer.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		buf:       l.buf,
		level:     l.level,
		component: component,
	}
}

// SetOutput mirrors every recorded entry to w, one line each. nil disables it.
func (l *Logger) SetOutput(w io.Writer) {
	l.buf.mu.Lock()
	defer l.buf.mu.Unlock()
	l.buf.out = w
}

// log is the internal logging function
// it applies level filtering and ring buffer behavior
func (l *Logger) log(level Level, msg string) {
	//filter logs below the current level
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	entry := Entry{
		TimeStamp: time.Now(),
		Level:     level,
		Component: l.component,
		Message:   msg,
	}

	b := l.buf
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxSize <= 0 {
		return
	}
	if len(b.entries) >= b.maxSize {
		//remove oldest entry(ring behavior)
		b.entries = b.entries[1:]
	}
	b.entries = append(b.entries, entry)

	if b.out != nil {
		_, _ = io.WriteString(b.out, entry.String()+"\n")
	}
}

// String renders the entry as a single line.
func (e Entry) String() string {
	ts := e.TimeStamp.Format(time.RFC3339Nano)
	if e.Component == "" {
		return fmt.Sprintf("%s %-5s %s", ts, e.Level, e.Message)
	}
	return fmt.Sprintf("%s %-5s [%s] %s", ts, e.Level, e.Component, e.Message)
}

func (l *Logger) Debug(msg string) {
	l.log(DEBUG, msg)
}

func (l *Logger) Info(msg string) {
	l.log(INFO, msg)
}

func (l *Logger) Warn(msg string) {
	l.log(WARN, msg)
}

func (l *Logger) Error(msg string) {
	l.log(ERROR, msg)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(WARN, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(ERROR, fmt.Sprintf(format, args...))
}

// GetLast returns copies of the newest n entries, oldest first.
func (l *Logger) GetLast(n int) []Entry {
	b := l.buf
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > len(b.entries) {
		n = len(b.entries)
	}

	start := len(b.entries) - n
	out := make([]Entry, n)
	copy(out, b.entries[start:])
	return out
}
