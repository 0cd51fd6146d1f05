package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the console logger. It writes to w (stderr in the CLI) so stdout
// only carries the report. Without debug only warnings and errors are emitted.
func New(w io.Writer, debug bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var options []zap.Option
	if debug {
		level.SetLevel(zap.DebugLevel)
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		options = append(options, zap.AddCaller())
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, options...).Named("critfindings")
}
