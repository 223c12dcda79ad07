package logger

import (
	"context"
	"fmt"
	"os"

	"github.com/octabyte/becas-client/enums"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string
	Env         string
	ServiceName string
}

// Init builds the process logger and installs it as the zap global.
func Init(cfg *Config) error {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(getLogLevelFromString(cfg.Level)),
		Development:      cfg.Env == "development",
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"env":     cfg.Env,
			"service": cfg.ServiceName,
		},
	}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	zap.ReplaceGlobals(logger.WithOptions(zap.AddCallerSkip(1)))
	return nil
}

func LogDebug(msg string, fields ...zap.Field) {
	zap.L().Debug(msg, fields...)
}

func LogInfo(msg string, fields ...zap.Field) {
	zap.L().Info(msg, fields...)
}

func LogWarn(msg string, fields ...zap.Field) {
	zap.L().Warn(msg, fields...)
}

func LogError(msg string, fields ...zap.Field) {
	zap.L().Error(msg, fields...)
}

// WithTrace returns trace_id and span_id fields for the span carried by ctx,
// or nothing when ctx has no valid span.
func WithTrace(ctx context.Context, fields ...zap.Field) []zap.Field {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return fields
	}
	return append(fields,
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	)
}

func getLogLevelFromString(level string) zapcore.Level {
	switch enums.ParseLogLevel(level) {
	case enums.LogLevelDebug:
		return zapcore.DebugLevel
	case enums.LogLevelWarn:
		return zapcore.WarnLevel
	case enums.LogLevelError:
		return zapcore.ErrorLevel
	case enums.LogLevelDPanic:
		return zapcore.DPanicLevel
	case enums.LogLevelPanic:
		return zapcore.PanicLevel
	case enums.LogLevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() {
	_ = zap.L().Sync()
}
