package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ArmsDealer/internal/shared/transport"
	"ArmsDealer/modules/kit/logx"
)

// bodyCaptureWriter 留一份响应体，业务码在 {code,msg,data} 的 code 里。
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 每个请求一条访问日志。路由参数里的 country、unit、id、turn 记为战争维度。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.NewRequestContext(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)
		transport.SetWarScope(ctx, scopeFromParams(c))

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		transport.SetBizCode(ctx, resolveBizCode(c.Writer.Status(), bw.body.Bytes()))
		transport.WriteAccessLog(ctx, log)
	}
}

func scopeFromParams(c *gin.Context) transport.WarScope {
	s := transport.WarScope{
		Country: c.Param("country"),
		Unit:    c.Param("unit"),
		War:     c.Param("id"),
	}
	if turn, err := strconv.Atoi(c.Param("turn")); err == nil {
		s.Turn = turn
	}
	return s
}

// resolveBizCode 响应体带 code 时以它为准，否则按 HTTP 状态判断。
func resolveBizCode(status int, body []byte) transport.BizCode {
	var payload struct {
		Code *int `json:"code"`
	}
	if len(body) != 0 && json.Unmarshal(body, &payload) == nil && payload.Code != nil {
		return transport.BizCode(*payload.Code)
	}
	if status >= http.StatusBadRequest {
		return transport.SystemError
	}
	return transport.OK
}
