package http

import (
	"context"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ArmsDealer/internal/shared/actor/messages"
	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/transport"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
	"ArmsDealer/modules/kit/logx"
	"ArmsDealer/modules/kit/tracex"
)

const maxTurnsPerRequest = 100

// WarRuntime 战争 actor 的调用面，*actor.Runtime 实现它。
type WarRuntime interface {
	AdvanceTurn(ctx context.Context, turns int) (*messages.AdvanceTurnReply, error)
	Wars(ctx context.Context, activeOnly bool) (*messages.WarsReply, error)
	AttackLines(ctx context.Context, country geo.CountryCode) (*messages.AttackLinesReply, error)
	Borders(ctx context.Context, country geo.CountryCode, dir geo.Direction) (*messages.BordersReply, error)
	Report(ctx context.Context, turn int) (*messages.ReportReply, error)
	DeclareWar(ctx context.Context, attacker, defender geo.CountryCode) (*messages.WarReply, error)
	NegotiatePeace(ctx context.Context, id entity.WarID) (*messages.WarReply, error)
	AssignTarget(ctx context.Context, attacker geo.CountryCode, unit entity.UnitID, defender geo.CountryCode) (*messages.AssignTargetReply, error)
}

type HttpHandler struct {
	rt  WarRuntime
	log logx.Logger
}

func NewHttpHandler(rt WarRuntime, log logx.Logger) *HttpHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &HttpHandler{rt: rt, log: log}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/geo/:country/borders/:direction", h.Borders)
	group.GET("/countries/:country/attack-lines", h.AttackLines)
	group.POST("/countries/:country/units/:unit/target", h.AssignTarget)

	wars := group.Group("/wars")
	wars.GET("", h.ListWars)
	wars.POST("", h.DeclareWar)
	wars.POST("/:id/peace", h.NegotiatePeace)

	turns := group.Group("/turns")
	turns.POST("", h.AdvanceTurn)
	turns.GET("/:turn", h.Report)
}

type declareWarReq struct {
	Attacker string `json:"attacker" binding:"required"`
	Defender string `json:"defender" binding:"required"`
}

type assignTargetReq struct {
	Defender string `json:"defender" binding:"required"`
}

type advanceTurnReq struct {
	Turns int `json:"turns"`
}

func (h *HttpHandler) Borders(c *gin.Context) {
	ctx := c.Request.Context()
	dir, err := geo.ParseDirection(c.Param("direction"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	res, err := h.rt.Borders(ctx, countryParam(c), dir)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, res.Cities)
}

func (h *HttpHandler) AttackLines(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.rt.AttackLines(ctx, countryParam(c))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, res.Lines)
}

func (h *HttpHandler) ListWars(c *gin.Context) {
	ctx := c.Request.Context()
	activeOnly, _ := strconv.ParseBool(c.Query("active"))
	res, err := h.rt.Wars(ctx, activeOnly)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, gin.H{"turn": res.Turn, "wars": res.Wars})
}

func (h *HttpHandler) DeclareWar(c *gin.Context) {
	ctx := c.Request.Context()

	var req declareWarReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.BadRequest, "参数有误")
		return
	}
	res, err := h.rt.DeclareWar(ctx, normalizeCountry(req.Attacker), normalizeCountry(req.Defender))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	transport.SetWarScope(ctx, transport.WarScope{War: string(res.War.ID), Turn: res.War.StartedTurn})
	h.ok(c, res.War)
}

func (h *HttpHandler) NegotiatePeace(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.rt.NegotiatePeace(ctx, entity.WarID(c.Param("id")))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, res.War)
}

// AssignTarget 进攻编队改派目标，开战后要先分配才会参战。
func (h *HttpHandler) AssignTarget(c *gin.Context) {
	ctx := c.Request.Context()

	var req assignTargetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.BadRequest, "参数有误")
		return
	}
	res, err := h.rt.AssignTarget(ctx, countryParam(c), entity.UnitID(c.Param("unit")), normalizeCountry(req.Defender))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	transport.SetWarScope(ctx, transport.WarScope{Country: string(res.Defender)})
	h.ok(c, gin.H{"unit": res.Unit, "defender": res.Defender, "front": res.Front})
}

// AdvanceTurn 请求体可省略，默认推进一回合。
func (h *HttpHandler) AdvanceTurn(c *gin.Context) {
	ctx := c.Request.Context()

	req := advanceTurnReq{Turns: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, transport.BadRequest, "参数有误")
			return
		}
	}
	if req.Turns <= 0 || req.Turns > maxTurnsPerRequest {
		h.error(ctx, c, errx.ErrReqParamERR.WithData("turns", req.Turns))
		return
	}
	res, err := h.rt.AdvanceTurn(tracedContext(ctx), req.Turns)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	transport.SetWarScope(ctx, transport.WarScope{Turn: res.Turn})
	h.ok(c, gin.H{"turn": res.Turn, "reports": res.Reports})
}

func (h *HttpHandler) Report(c *gin.Context) {
	ctx := c.Request.Context()
	turn, err := strconv.Atoi(c.Param("turn"))
	if err != nil || turn <= 0 {
		h.fail(c, transport.BadRequest, "参数有误")
		return
	}
	res, err := h.rt.Report(ctx, turn)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, res.Report)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, transport.Response{Code: transport.OK, Msg: "ok", Data: data})
}

func (h *HttpHandler) fail(c *gin.Context, code transport.BizCode, msg string) {
	c.JSON(nethttp.StatusOK, transport.Response{Code: code, Msg: msg})
}

// error 业务拒绝记 INFO，系统错误记 ERROR 并带栈。
func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := HandleError(ctx, err)
	action := c.Request.Method + " " + c.FullPath()
	if e, ok := bizError(err); ok {
		logx.ReportBizWithLoggerContext(ctx, h.log, logx.NewBizLog(action, string(e.Code()), msg))
	} else {
		logx.ReportSysErrorWithLoggerContext(ctx, h.log, logx.NewSysLog(action, err))
	}
	h.fail(c, code, msg)
}

func countryParam(c *gin.Context) geo.CountryCode {
	return normalizeCountry(c.Param("country"))
}

func normalizeCountry(s string) geo.CountryCode {
	return geo.CountryCode(strings.ToUpper(strings.TrimSpace(s)))
}

// tracedContext 访问日志中间件已经生成 trace_id，这里兜底。
func tracedContext(ctx context.Context) context.Context {
	if _, ok := tracex.TraceIDFrom(ctx); ok {
		return ctx
	}
	return tracex.WithTraceID(ctx, tracex.NewTraceID())
}
