// Package logger 结构化日志
// 对外暴露log/slog接口，底层由zap编码输出
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	Service   string
	Level     string // debug | info | warn | error
	Format    string // console | json
	Output    string // stdout | stderr | 文件路径
	AddSource bool
}

// New 创建Logger并设置为slog默认Logger
// 返回的closer负责刷新缓冲并关闭日志文件
func New(opts Options) (*slog.Logger, func() error, error) {
	w, closeOutput, err := openOutput(opts.Output)
	if err != nil {
		return nil, nil, err
	}

	core := newCore(zapcore.AddSync(w), opts)
	base := slog.New(zapslog.NewHandler(core, zapslog.WithCaller(opts.AddSource)))
	if opts.Service != "" {
		base = base.With("service", opts.Service)
	}

	slog.SetDefault(base)

	closer := func() error {
		_ = core.Sync()
		return closeOutput()
	}
	return base, closer, nil
}

// NewHandler 按格式创建Handler
func NewHandler(w io.Writer, opts Options) slog.Handler {
	return zapslog.NewHandler(newCore(zapcore.AddSync(w), opts), zapslog.WithCaller(opts.AddSource))
}

func newCore(ws zapcore.WriteSyncer, opts Options) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(toZapLevel(ParseLevel(opts.Level))))
}

// ParseLevel 解析日志级别，未知值按info处理
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func toZapLevel(l slog.Level) zapcore.Level {
	switch {
	case l >= slog.LevelError:
		return zapcore.ErrorLevel
	case l >= slog.LevelWarn:
		return zapcore.WarnLevel
	case l >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Discard 丢弃所有输出（测试使用）
func Discard() *slog.Logger {
	return slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(output) {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, f.Close, nil
}
