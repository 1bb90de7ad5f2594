package util

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
)

var (
	loggers   = map[string]*Logger{}
	loggersMu sync.Mutex

	// OutputLevel is the default stdout level
	OutputLevel jww.Threshold = jww.LevelError

	// logThreshold is the level for the ui capture channel
	logThreshold jww.Threshold = jww.LevelWarn

	levels = map[string]jww.Threshold{}
)

// Logger wraps a jww notepad to avoid leaking implementation detail
type Logger struct {
	*jww.Notepad
	*Redactor
}

// NewLogger creates a logger with the given log area and adds it to the registry
func NewLogger(area string) *Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, ok := loggers[area]; ok {
		return logger
	}

	level := logLevelForArea(area)
	redactor := new(Redactor)
	notepad := jww.NewNotepad(
		level, logThreshold,
		&redactWriter{w: os.Stdout, r: redactor}, io.Discard,
		padArea(area), log.Ldate|log.Ltime,
	)

	logger := &Logger{
		Notepad:  notepad,
		Redactor: redactor,
	}

	loggers[area] = logger
	return logger
}

// Redact adds items for redaction
func (l *Logger) Redact(items ...string) *Logger {
	l.Redactor.Redact(items...)
	return l
}

func padArea(area string) string {
	const width = 12
	if len(area) >= width {
		return area[:width] + " "
	}
	return area + strings.Repeat(" ", width-len(area)+1)
}

func logLevelForArea(area string) jww.Threshold {
	if level, ok := levels[strings.ToLower(area)]; ok {
		return level
	}
	return OutputLevel
}

// LogLevel sets log level for all loggers
func LogLevel(defaultLevel string, areaLevels map[string]string) {
	OutputLevel = LogLevelToThreshold(defaultLevel)

	loggersMu.Lock()
	defer loggersMu.Unlock()

	levels = make(map[string]jww.Threshold, len(areaLevels))
	for area, level := range areaLevels {
		levels[strings.ToLower(area)] = LogLevelToThreshold(level)
	}

	for name, logger := range loggers {
		logger.SetStdoutThreshold(logLevelForArea(name))
	}
}

// LogLevelToThreshold converts log level string to a jww Threshold
func LogLevelToThreshold(level string) jww.Threshold {
	switch strings.ToUpper(level) {
	case "FATAL":
		return jww.LevelFatal
	case "ERROR":
		return jww.LevelError
	case "WARN":
		return jww.LevelWarn
	case "INFO":
		return jww.LevelInfo
	case "DEBUG":
		return jww.LevelDebug
	case "TRACE":
		return jww.LevelTrace
	default:
		return jww.LevelError
	}
}

// Redactor masks secrets like tokens and VINs in log output
type Redactor struct {
	mu     sync.RWMutex
	redact []string
}

// Redact adds items to the list of masked strings
func (r *Redactor) Redact(items ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			r.redact = append(r.redact, item)
		}
	}
}

// Safe returns the masked string
func (r *Redactor) Safe(s string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.redact {
		s = strings.ReplaceAll(s, item, "***")
	}

	return s
}

type redactWriter struct {
	w io.Writer
	r *Redactor
}

func (w *redactWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(w.w, w.r.Safe(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
