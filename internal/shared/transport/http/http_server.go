package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ArmsDealer/internal/shared/transport/http/middleware"
	"ArmsDealer/modules/kit/logx"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	readyTimeout        = time.Second
)

// Options 零值字段取默认。
type Options struct {
	Addr string
	// 推进 100 回合的请求也要在写超时内返回
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Ready 为 nil 时 /healthz 恒为 ok；返回错误时 503，例如战争 actor 初始化失败。
	Ready func(ctx context.Context) error
}

type Server struct {
	engine *gin.Engine
	srv    *nethttp.Server
}

// NewHttpServer engine 为 nil 时新建一个带 Recovery 的。
func NewHttpServer(opts Options, engine *gin.Engine, logger logx.Logger) *Server {
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	engine.Use(middleware.Cors(), middleware.AccessLog(logger))
	engine.GET("/healthz", healthz(opts.Ready))

	return &Server{
		engine: engine,
		srv: &nethttp.Server{
			Addr:              opts.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
	}
}

func healthz(ready func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
			defer cancel()
			if err := ready(ctx); err != nil {
				c.JSON(nethttp.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	}
}

// Start 阻塞；Shutdown 之后返回 net/http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) Handler() nethttp.Handler { return s.engine }
