package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

const sentryFlushTimeout = 5 * time.Second

// SentryHook is an io.Writer that can be attached to the logger's
// multi-writer. It forwards error-level entries to Sentry and passes
// everything else through untouched.
type SentryHook struct {
	appName string
	enabled bool
}

func NewSentryHook(appName, dsn string, debug bool) *SentryHook {
	h := &SentryHook{appName: appName}
	if dsn == "" {
		return h
	}

	err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            debug,
		Dsn:              dsn,
		ServerName:       appName,
	})
	if err != nil {
		log.Println("sentry init:", err.Error())
		return h
	}

	h.enabled = true
	return h
}

func (h *SentryHook) Stop() {
	if h.enabled {
		sentry.Flush(sentryFlushTimeout)
	}
}

type logEntry struct {
	Level      string `json:"level"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
}

func (h *SentryHook) Write(p []byte) (int, error) {
	if !h.enabled {
		return len(p), nil
	}

	var entry logEntry
	if err := json.Unmarshal(p, &entry); err != nil {
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(entry.Level)
	if err != nil || level < zapcore.ErrorLevel {
		return len(p), nil
	}

	event := sentry.NewEvent()
	event.Level = mapLevel(level)
	event.Message = entry.Message
	event.ServerName = h.appName
	event.Extra = map[string]any{
		"error":       entry.Error,
		"caller_file": entry.CallerFile,
		"caller_line": entry.CallerLine,
		"caller_func": entry.CallerFunc,
		"stack":       entry.Stack,
	}
	sentry.CaptureEvent(event)

	return len(p), nil
}

func mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	default:
		return sentry.LevelInfo
	}
}
