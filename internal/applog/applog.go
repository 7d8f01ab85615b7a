// Package applog is the leveled logger every other package logs
// through: a thin wrapper over stdlib log that emits one JSON object
// per event, modeled on the teacher's WorkerLogLevel/logEvent pattern
// (pkg/ui/background_worker.go).
package applog

import (
	"encoding/json"
	"log"
	"strings"
	"time"
)

// Level controls log verbosity, ordered none < error < warn < info <
// debug < trace.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "none"
	}
}

// ParseLevel accepts the usual spellings ("warn"/"warning", "0"-"5")
// and defaults to LevelWarn on anything unrecognized.
func ParseLevel(raw string) Level {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "none", "off", "0":
		return LevelNone
	case "error", "err", "1":
		return LevelError
	case "warn", "warning", "2":
		return LevelWarn
	case "info", "3":
		return LevelInfo
	case "debug", "4":
		return LevelDebug
	case "trace", "5":
		return LevelTrace
	default:
		return LevelWarn
	}
}

// Logger emits structured events at or below its configured level.
type Logger struct {
	level     Level
	component string
}

// New returns a Logger tagging every event with component.
func New(component string, level Level) *Logger {
	return &Logger{level: level, component: component}
}

// Level reports the logger's configured threshold.
func (lg *Logger) Level() Level {
	if lg == nil {
		return LevelNone
	}
	return lg.level
}

// Event logs one structured event if level is at or below the logger's
// threshold. fields is merged into the emitted object; nil is fine.
func (lg *Logger) Event(level Level, event string, fields map[string]any) {
	if lg == nil || level == LevelNone || level > lg.level {
		return
	}
	payload := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level.String(),
		"component": lg.component,
		"event":     event,
	}
	for k, v := range fields {
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("%s: failed to marshal log event %s: %v", lg.component, event, err)
		return
	}
	log.Printf("%s", b)
}

func (lg *Logger) Error(event string, fields map[string]any) { lg.Event(LevelError, event, fields) }
func (lg *Logger) Warn(event string, fields map[string]any)  { lg.Event(LevelWarn, event, fields) }
func (lg *Logger) Info(event string, fields map[string]any)  { lg.Event(LevelInfo, event, fields) }
func (lg *Logger) Debug(event string, fields map[string]any) { lg.Event(LevelDebug, event, fields) }
func (lg *Logger) Trace(event string, fields map[string]any) { lg.Event(LevelTrace, event, fields) }
