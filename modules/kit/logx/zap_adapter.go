package logx

import (
	"context"

	"ArmsDealer/modules/kit/tracex"

	"go.uber.org/zap"
)

// ZapLogger 实现 Logger。WithContext 把 ctx 里的追踪信息和战争维度写成字段。
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{logger: l}
}

// ContextFields 按 trace_id、span_id、turn、war_id 的顺序取出 ctx 里已有的字段。
func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	var fields []zap.Field
	if tid, ok := tracex.TraceIDFrom(ctx); ok {
		fields = append(fields, zap.String("trace_id", tid))
	}
	if sid, ok := tracex.SpanIDFrom(ctx); ok {
		fields = append(fields, zap.String("span_id", sid))
	}
	if turn, ok := tracex.TurnFrom(ctx); ok {
		fields = append(fields, zap.Int("turn", turn))
	}
	if war, ok := tracex.WarIDFrom(ctx); ok {
		fields = append(fields, zap.String("war_id", war))
	}
	return fields
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{logger: z.logger.With(fields...)}
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) { z.logger.Debug(msg, fields...) }
func (z *ZapLogger) Info(msg string, fields ...zap.Field)  { z.logger.Info(msg, fields...) }
func (z *ZapLogger) Warn(msg string, fields ...zap.Field)  { z.logger.Warn(msg, fields...) }
func (z *ZapLogger) Error(msg string, fields ...zap.Field) { z.logger.Error(msg, fields...) }
