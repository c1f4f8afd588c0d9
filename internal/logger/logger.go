package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger writing to paths, stderr when none are given.
// Warnings and errors are also sent to Sentry when dsn isn't empty; call Flush
// before exiting.
func New(dsn string, paths ...string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if len(paths) > 0 {
		cfg.OutputPaths = paths
		cfg.ErrorOutputPaths = paths
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	if dsn != "" {
		sentryOption, err := Sentry(dsn)
		if err != nil {
			return nil, err
		}

		zapLogger = zapLogger.WithOptions(sentryOption)
	}

	return zapLogger.Sugar(), nil
}

func Flush(log *zap.SugaredLogger) {
	sentry.Flush(10 * time.Second)
	_ = log.Sync()
}

func Sentry(dsn string) (zap.Option, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn: dsn,
	})
	if err != nil {
		return nil, err
	}

	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.RegisterHooks(core, func(entry zapcore.Entry) error {
			if entry.Level >= zapcore.WarnLevel {
				sentry.CaptureEvent(&sentry.Event{
					Timestamp: entry.Time,
					Logger:    entry.LoggerName,
					Message:   entry.Message,
					Extra: map[string]any{
						"Stack":  entry.Stack,
						"Caller": entry.Caller.String(),
					},
					Level: SentryLevel(entry.Level),
				})
			}

			return nil
		})
	}), nil
}

func SentryLevel(zapLevel zapcore.Level) sentry.Level {
	switch zapLevel {
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelInfo
}
