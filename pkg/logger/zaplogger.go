package logger

import (
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with caller information and map-based fields.
type Logger struct {
	appName string
	l       *zap.Logger
}

func NewZapLogger(appName string, writers ...io.Writer) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	var syncers []zapcore.WriteSyncer
	if len(writers) == 0 {
		syncers = append(syncers, os.Stdout)
	}
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		zapcore.DebugLevel,
	)

	return &Logger{
		appName: appName,
		l:       zap.New(core),
	}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	l.with(fields).Error(
		err.Error(),
		append(l.callerFields(),
			zap.String("error", err.Error()),
			zap.Stack("stack"),
		)...,
	)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.with(fields).Info(msg, l.callerFields()...)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.with(fields).Warn(msg, l.callerFields()...)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.with(fields).Debug(msg, l.callerFields()...)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.with(fields).Fatal(msg, l.callerFields()...)
}

func (l *Logger) with(fields []map[string]any) *zap.Logger {
	zapFields := make([]zapcore.Field, 0, 8)
	if len(fields) > 0 {
		for k, v := range fields[0] {
			zapFields = append(zapFields, zap.Any(k, v))
		}
	}
	return l.l.WithOptions(zap.Fields(zapFields...))
}

// callerFields reports the file, line and function of the Logger caller,
// two frames above this helper.
func (l *Logger) callerFields() []zapcore.Field {
	file, line, funcName := "unknown", 0, "unknown"
	if pc, f, ln, ok := runtime.Caller(2); ok {
		file, line = f, ln
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
		}
	}
	return []zapcore.Field{
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	}
}
