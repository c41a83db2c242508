package logx

import (
	"context"
	"errors"
	"testing"

	"ArmsDealer/modules/kit/errx"
	"ArmsDealer/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	e := errx.NewSys("SYS_INTERNAL", "report store down").
		WithData("turn", 12).
		WithCause(errors.New("db down"))

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code == "" || meta.Msg == "" {
		t.Fatalf("期望 Error/Code/Msg 非空, meta=%+v", meta)
	}
	if meta.Data == nil || meta.Data["turn"] != 12 {
		t.Fatalf("期望 meta.Data 包含 turn=12, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 meta.CauseChain 非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望带栈 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestReportTurn_带上ctx里的turn字段(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZapLogger(zap.New(core))

	ctx := tracex.WithTurn(context.Background(), 4)
	ReportTurnWithLoggerContext(ctx, l, TurnLog{Turn: 4, Battles: 2, Concluded: 1})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条日志, got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["battles"] != int64(2) || fields["concluded"] != int64(1) {
		t.Fatalf("字段不符: %v", fields)
	}
	if fields["log_type"] != "turn" {
		t.Fatalf("log_type=%v", fields["log_type"])
	}
}

func TestReportAccess_按业务码分级(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	ReportAccessWithLoggerContext(context.Background(), l, "GET /api/wars", 0)
	ReportAccessWithLoggerContext(context.Background(), l, "GET /api/wars", 404)
	ReportAccessWithLoggerContext(context.Background(), l, "GET /api/wars", 500)

	got := logs.All()
	if len(got) != 3 {
		t.Fatalf("期望 3 条, got=%d", len(got))
	}
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range got {
		if e.Level != want[i] {
			t.Fatalf("第 %d 条级别=%v, want=%v", i, e.Level, want[i])
		}
	}
}

func TestReportSysError_nil错误不输出(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ReportSysErrorWithLoggerContext(context.Background(), NewZapLogger(zap.New(core)), NewSysLog("flush", nil))
	if logs.Len() != 0 {
		t.Fatalf("nil 错误不应输出日志")
	}
}

func TestWithContext_带上战争维度(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZapLogger(zap.New(core))

	ctx := tracex.WithTraceID(context.Background(), "t-1")
	ctx = tracex.WithWarID(tracex.WithTurn(ctx, 6), "RUS-UKR-1")
	l.WithContext(ctx).Info("war concluded")

	fields := logs.All()[0].ContextMap()
	if fields["trace_id"] != "t-1" || fields["turn"] != int64(6) || fields["war_id"] != "RUS-UKR-1" {
		t.Fatalf("字段不符: %v", fields)
	}
	if _, ok := fields["span_id"]; ok {
		t.Fatalf("未设置的 span_id 不应出现: %v", fields)
	}
	if got := ContextFields(nil); got != nil {
		t.Fatalf("nil ctx fields = %v", got)
	}
}
