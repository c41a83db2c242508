package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ArmsDealer/internal/shared/transport"
	"ArmsDealer/modules/kit/logx"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(Options{Addr: ":0"}, gin.New(), logx.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("cors header missing")
	}
}

func TestNewHttpServer_未就绪返回503(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(Options{Ready: func(context.Context) error { return errors.New("offline") }}, nil, nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/healthz", nil))
	if w.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusServiceUnavailable)
	}
}

func TestNewHttpServer_预检请求(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(Options{}, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodOptions, "/api/wars", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusNoContent)
	}
}

func TestAccessLog_记录战争维度(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	s := NewHttpServer(Options{}, nil, logx.NewZapLogger(zap.New(core)))
	s.Engine().GET("/api/turns/:turn", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, transport.Response{Code: transport.NotFound, Msg: "not found"})
	})
	s.Engine().POST("/api/wars", func(c *gin.Context) {
		transport.SetWarScope(c.Request.Context(), transport.WarScope{War: "RUS-UKR-3", Turn: 3})
		c.JSON(nethttp.StatusOK, transport.Response{Code: transport.OK, Msg: "ok"})
	})

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(nethttp.MethodGet, "/api/turns/7", nil))
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(nethttp.MethodPost, "/api/wars", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("期望 2 条访问日志, got=%d", len(entries))
	}
	first := entries[0].ContextMap()
	if entries[0].Level != zapcore.WarnLevel || first["biz_code"] != int64(404) || first["turn"] != int64(7) {
		t.Fatalf("第 1 条: level=%v fields=%v", entries[0].Level, first)
	}
	if first["action"] != "GET /api/turns/:turn" || first["result"] != "failure" {
		t.Fatalf("第 1 条: fields=%v", first)
	}
	second := entries[1].ContextMap()
	if second["war_id"] != "RUS-UKR-3" || second["turn"] != int64(3) || second["result"] != "success" {
		t.Fatalf("第 2 条: fields=%v", second)
	}
}
