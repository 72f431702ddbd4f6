package logs

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
	DEBUG Level = "DEBUG"
)

// levelPriority defines the priority of each log level
// higher value = more severe
var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

// ParseLevel converts a level name (any case) to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	lvl := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[lvl]; ok {
		return lvl
	}
	return INFO
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type Entry struct {
	TimeStamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger writes leveled, structured entries to a zap logger and keeps the
// most recent ones in memory for the admin and health endpoints.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	level   Level
	sink    *zap.Logger
}

// level: minimum log level to record (DEBUG, INFO, WARN, ERROR)
//
// maxSize: maximum number of log entries kept in memory
//
// sink: zap logger entries are forwarded to; nil discards them
func NewLogger(maxSize int, level Level, sink *zap.Logger) *Logger {
	if sink == nil {
		sink = zap.NewNop()
	}
	return &Logger{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
		level:   level,
		sink:    sink,
	}
}

// NewZap builds the process zap logger.
// format is "json" (production encoder on stdout) or "console".
func NewZap(level Level, format, serviceName string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if serviceName != "" {
		base = base.With(zap.String("service_name", serviceName))
	}
	return base, nil
}

// log applies level filtering and ring buffer behavior
func (l *Logger) log(level Level, msg string, fields []zap.Field) {
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	if ce := l.sink.Check(level.zapLevel(), msg); ce != nil {
		ce.Write(fields...)
	}

	entry := Entry{
		TimeStamp: time.Now(),
		Level:     level,
		Message:   msg,
	}
	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
		}
		entry.Fields = enc.Fields
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.maxSize <= 0 {
		return
	}
	if len(l.entries) >= l.maxSize {
		// drop oldest
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, entry)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.log(DEBUG, msg, fields)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.log(INFO, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.log(WARN, msg, fields)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.log(ERROR, msg, fields)
}

// Sync flushes the zap sink.
func (l *Logger) Sync() error {
	return l.sink.Sync()
}

// GetLast returns a copy of the last n entries, oldest first.
func (l *Logger) GetLast(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}

	start := len(l.entries) - n
	out := make([]Entry, n)
	copy(out, l.entries[start:])
	return out
}
