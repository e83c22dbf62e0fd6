package zap_adapter

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"ridersync/pkg/logger"
)

type ZapAdapter struct {
	logger *zap.Logger
}

type options struct {
	output  string
	console bool
}

type Option func(*options)

// WithOutput меняет приемник логов (по умолчанию stdout). riderctl пишет в stderr,
// чтобы логи не смешивались с выводом команд.
func WithOutput(path string) Option {
	return func(o *options) { o.output = path }
}

// WithConsole - человекочитаемый формат вместо JSON.
func WithConsole() Option {
	return func(o *options) { o.console = true }
}

// NewZapAdapter собирает логгер. level - строка вида "debug", "info", "warn";
// пустая строка означает info.
func NewZapAdapter(level string, opts ...Option) (*ZapAdapter, error) {
	o := options{output: "stdout"}
	for _, opt := range opts {
		opt(&o)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{o.output}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if o.console {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.DisableStacktrace = true
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return Wrap(zapLogger), nil
}

// Wrap оборачивает готовый *zap.Logger, например zaptest или observer в тестах.
func Wrap(l *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: l}
}

func (z *ZapAdapter) Debug(msg string, fields ...logger.Field) {
	z.logger.Debug(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Info(msg string, fields ...logger.Field) {
	z.logger.Info(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Warn(msg string, fields ...logger.Field) {
	z.logger.Warn(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Error(msg string, fields ...logger.Field) {
	z.logger.Error(msg, convertFields(fields)...)
}

func (z *ZapAdapter) With(fields ...logger.Field) logger.Logger {
	if len(fields) == 0 {
		return z
	}
	return Wrap(z.logger.With(convertFields(fields)...))
}

func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func convertFields(fields []logger.Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			zapFields = append(zapFields, zap.NamedError(f.Key, v))
		case fmt.Stringer:
			// decimal.Decimal, time.Duration и id заказов пишем строкой, а не структурой
			zapFields = append(zapFields, zap.Stringer(f.Key, v))
		default:
			zapFields = append(zapFields, zap.Any(f.Key, f.Value))
		}
	}
	return zapFields
}

var _ logger.Logger = (*ZapAdapter)(nil)
