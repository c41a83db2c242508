package logs

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ArmsDealer/internal/shared/simconfig"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// Init 构建进程级 logger：控制台彩色输出，配置了 file_dir 时再 tee 一路 JSON 文件（lumberjack 切割）。
func Init(appName string, cfg simconfig.LogConfig) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			lvl = zapcore.InfoLevel
		}
	}
	level := zap.NewAtomicLevelAt(lvl)

	// 2026-01-28T10:00:00 INFO  warsim  turn processed  orchestrator.go:88
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level),
	}

	// 文件里不要 ANSI 颜色
	if cfg.FileDir != "" {
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		rotate := &lumberjack.Logger{
			Filename:   cfg.FileDir,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotate), level))
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	l := zap.New(zapcore.NewTee(cores...), opts...).Named(appName)

	if old := current.Swap(l); old != nil {
		_ = old.Sync()
	}
	return l, nil
}

// Logger 当前进程 logger，未 Init 时是 Nop。
func Logger() *zap.Logger {
	return current.Load()
}

func Sync() error {
	return current.Load().Sync()
}

func Debug(msg string, fields ...zap.Field) {
	current.Load().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	current.Load().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	current.Load().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	current.Load().Error(msg, fields...)
}

// Fatal 打印后 os.Exit(1)。
func Fatal(msg string, fields ...zap.Field) {
	current.Load().Fatal(msg, fields...)
}
