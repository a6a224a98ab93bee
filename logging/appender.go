package logging

import (
	"io"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewWriterAppender returns a core writing colored console lines to w.
func NewWriterAppender(w io.Writer) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(NewLoggerConfig().EncoderConfig)
	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
}

// NewFileAppender returns a core writing uncolored console lines to filename, rotated once it
// grows past 100 megabytes. Close the returned closer when done logging.
func NewFileAppender(filename string) (zapcore.Core, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 2,
		Compress:   true,
	}
	encoderCfg := NewLoggerConfig().EncoderConfig
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(rotator), zapcore.DebugLevel)
	return core, rotator
}
