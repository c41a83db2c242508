package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ArmsDealer/modules/kit/logx"
	"ArmsDealer/modules/kit/tracex"
)

// WarScope 一次请求涉及的国家、编队、战争和回合，写进访问日志便于按战争检索。
type WarScope struct {
	Country string
	Unit    string
	War     string
	Turn    int
}

func (s WarScope) fields() []zap.Field {
	var out []zap.Field
	if s.Country != "" {
		out = append(out, zap.String("country", s.Country))
	}
	if s.Unit != "" {
		out = append(out, zap.String("unit", s.Unit))
	}
	if s.War != "" {
		out = append(out, zap.String("war_id", s.War))
	}
	if s.Turn > 0 {
		out = append(out, zap.Int("turn", s.Turn))
	}
	return out
}

// merge 只覆盖 o 中的非零字段。
func (s *WarScope) merge(o WarScope) {
	if o.Country != "" {
		s.Country = o.Country
	}
	if o.Unit != "" {
		s.Unit = o.Unit
	}
	if o.War != "" {
		s.War = o.War
	}
	if o.Turn > 0 {
		s.Turn = o.Turn
	}
}

// AccessLog 请求级日志上下文。BizCode 默认 SystemError，中间件在响应后改写。
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	Scope       WarScope
	route       string
	started     time.Time
}

type accessLogKey struct{}

// NewRequestContext 生成 trace_id 并挂上 AccessLog，保留 parent 的取消信号。
func NewRequestContext(parent context.Context, route string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if route == "" {
		route = "unknown"
	}
	ctx := tracex.WithSpanID(tracex.WithTraceID(parent, tracex.NewTraceID()), "http")
	return context.WithValue(ctx, accessLogKey{}, &AccessLog{
		BizCode: SystemError,
		route:   route,
		started: time.Now(),
	})
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

func SetErrorReason(ctx context.Context, reason string) {
	if al := FromContext(ctx); al != nil && reason != "" {
		al.ErrorReason = reason
	}
}

// SetWarScope 处理器拿到结果后补充战争维度，例如新开战的 war_id 或推进后的回合号。
func SetWarScope(ctx context.Context, scope WarScope) {
	if al := FromContext(ctx); al != nil {
		al.Scope.merge(scope)
	}
}

// WriteAccessLog 在中间件里 c.Next() 之后调用。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}
	result := "success"
	if al.BizCode != OK {
		result = "failure"
	}
	fields := append([]zap.Field{
		zap.Duration("latency", time.Since(al.started)),
		zap.String("result", result),
	}, al.Scope.fields()...)
	if al.ErrorReason != "" && al.BizCode != OK {
		fields = append(fields, zap.String("error_reason", al.ErrorReason))
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.route, int(al.BizCode), fields...)
}
