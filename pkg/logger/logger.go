package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LEVEL"`
	Sink     string        `yaml:"sink" envconfig:"SINK"`
}

// NewLogger builds a JSON zap logger named after the service.
// Sink is a zap.Open url ("stderr", a file path); stdout is used when empty
// or when the sink cannot be opened, and the open error is logged there.
func NewLogger(cfg Log, name string) *zap.Logger {
	return newLogger(cfg, name, zapcore.Lock(os.Stdout))
}

func newLogger(cfg Log, name string, fallback zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	sink := fallback
	var openErr error
	if cfg.Sink != "" {
		ws, _, err := zap.Open(cfg.Sink)
		if err != nil {
			openErr = err
		} else {
			sink = ws
		}
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, zap.NewAtomicLevelAt(cfg.LogLevel))
	log := zap.New(core, zap.AddCaller()).Named(name)
	if openErr != nil {
		log.Error("open log sink, falling back to stdout", zap.String("sink", cfg.Sink), zap.Error(openErr))
	}
	return log
}
