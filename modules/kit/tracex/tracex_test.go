package tracex

import (
	"context"
	"testing"
)

func TestTrace_写入后可读出(t *testing.T) {
	ctx := WithSpanID(WithTraceID(context.Background(), "abc"), "turn")
	ctx = WithTurn(ctx, 7)

	if tid, ok := TraceIDFrom(ctx); !ok || tid != "abc" {
		t.Fatalf("trace_id=%q ok=%v", tid, ok)
	}
	if sid, ok := SpanIDFrom(ctx); !ok || sid != "turn" {
		t.Fatalf("span_id=%q ok=%v", sid, ok)
	}
	if n, ok := TurnFrom(ctx); !ok || n != 7 {
		t.Fatalf("turn=%d ok=%v", n, ok)
	}
}

func TestTrace_空值视为不存在(t *testing.T) {
	ctx := WithTraceID(context.Background(), "")
	if _, ok := TraceIDFrom(ctx); ok {
		t.Fatalf("空 trace_id 不应视为存在")
	}
	if _, ok := TurnFrom(context.Background()); ok {
		t.Fatalf("未设置 turn 不应存在")
	}
}

func TestNewTraceID_长度为32(t *testing.T) {
	if got := NewTraceID(); len(got) != 32 {
		t.Fatalf("len=%d", len(got))
	}
}
