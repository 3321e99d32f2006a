package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iotaledger/rwlist/app/configuration"
	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/lo"
)

// NewRootLogger creates a new root logger from the provided configuration.
func NewRootLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lo.Cond(cfg.Level != "", cfg.Level, DefaultCfg.Level))
	if err != nil {
		return nil, ierrors.Wrap(err, "invalid log level")
	}

	stacktraceLevel, err := zapcore.ParseLevel(lo.Cond(cfg.StacktraceLevel != "", cfg.StacktraceLevel, DefaultCfg.StacktraceLevel))
	if err != nil {
		return nil, ierrors.Wrap(err, "invalid stacktrace level")
	}

	zapCfg := zap.Config{
		Level:         zap.NewAtomicLevelAt(level),
		DisableCaller: cfg.DisableCaller,
		// stacktraces are added by the option below, so they follow the configured level
		DisableStacktrace: true,
		Encoding:          lo.Cond(cfg.Encoding != "", cfg.Encoding, DefaultCfg.Encoding),
		EncoderConfig:     defaultEncoderConfig,
		OutputPaths:       lo.Cond(len(cfg.OutputPaths) > 0, cfg.OutputPaths, DefaultCfg.OutputPaths),
		ErrorOutputPaths:  []string{"stderr"},
	}

	var opts []zap.Option
	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(stacktraceLevel))
	}

	root, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to build root logger")
	}

	return root, nil
}

// NewRootLoggerFromConfiguration creates a new root logger from the logger settings of the provided configuration.
func NewRootLoggerFromConfiguration(config *configuration.Configuration) (*zap.Logger, error) {
	cfg := DefaultCfg

	// get config values one by one, unset keys keep their default
	if val := config.String(ConfigurationKeyLevel); val != "" {
		cfg.Level = val
	}
	if config.Exists(ConfigurationKeyDisableCaller) {
		cfg.DisableCaller = config.Bool(ConfigurationKeyDisableCaller)
	}
	if config.Exists(ConfigurationKeyDisableStacktrace) {
		cfg.DisableStacktrace = config.Bool(ConfigurationKeyDisableStacktrace)
	}
	if val := config.String(ConfigurationKeyStacktraceLevel); val != "" {
		cfg.StacktraceLevel = val
	}
	if val := config.String(ConfigurationKeyEncoding); val != "" {
		cfg.Encoding = val
	}
	if val := config.Strings(ConfigurationKeyOutputPaths); len(val) > 0 {
		cfg.OutputPaths = val
	}

	return NewRootLogger(cfg)
}
