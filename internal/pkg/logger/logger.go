package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	outputPaths []string
	name        string
}

type Option func(*options)

// WithOutput sends log lines to paths instead of stdout. The render CLI
// uses it to keep stdout free for the HTML document.
func WithOutput(paths ...string) Option {
	return func(o *options) { o.outputPaths = paths }
}

// WithName sets the root logger name, e.g. "api" or "worker".
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func New(level string, opts ...Option) (*zap.Logger, error) {
	o := options{outputPaths: []string{"stdout"}}
	for _, opt := range opts {
		opt(&o)
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      o.outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	if level == "debug" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	if o.name != "" {
		log = log.Named(o.name)
	}
	return log, nil
}
