package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"ArmsDealer/internal/shared/actor/messages"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/dc"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/internal/war/service"
	"ArmsDealer/modules/kit/errx"
	"ArmsDealer/modules/kit/logx"
	"ArmsDealer/modules/kit/tracex"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// Deps 战争 actor 的构造参数。World 由调用方装好剧本后交给 actor，之后只在 actor 内部读写。
type Deps struct {
	World     *entity.World
	Tuning    simconfig.SimConfig
	Repo      port.ReportRepository
	Log       logx.Logger
	TickEvery time.Duration
}

type WarActor struct {
	state        State
	deps         Deps
	log          logx.Logger
	dc           *dc.ReportDC
	orchestrator *service.Orchestrator
	dispatcher   *Dispatcher
	initErr      error
	tickStop     chan struct{}
}

const defaultQueryTimeout = 2 * time.Second

type turnTick struct{}

func (turnTick) NotInfluenceReceiveTimeout() {}

func NewWarActor(deps Deps) *WarActor {
	log := deps.Log
	if log == nil {
		log = logx.Nop()
	}
	return &WarActor{
		state:      None,
		deps:       deps,
		log:        log,
		dispatcher: NewDispatcher(),
	}
}

func (p *WarActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopTurnLoop()
		p.closeDC()
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopTurnLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		// 重启后 Started 会新建 DC，旧的先排空
		p.stopTurnLoop()
		p.closeDC()
		p.state = Init
		return
	case turnTick:
		if p.state != Online {
			return
		}
		if _, err := p.advance(context.Background(), 1); err != nil {
			logx.ReportSysErrorWithLoggerContext(context.Background(), p.log, logx.NewSysLog("auto_advance_turn", err))
		}
		return
	case messages.WarMessage:
		if p.state != Online {
			err := p.initErr
			if err == nil {
				err = errx.ErrUnavailable.WithData("reason", "war actor not online")
			}
			ctx.Respond(messages.Fail(err))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *WarActor) init(ctx actor.Context) {
	if p.deps.World == nil {
		p.fail(errx.ErrInvalidConfig.WithData("reason", "world is nil"))
		return
	}
	if p.deps.Repo != nil {
		p.dc = dc.NewReportDC(p.deps.Repo, p.log)
	}
	var sink service.ReportSink
	if p.dc != nil {
		sink = p.dc
	}
	orch, err := service.NewOrchestrator(p.deps.World, p.deps.Tuning, sink, p.log)
	if err != nil {
		p.fail(err)
		return
	}
	p.orchestrator = orch
	p.state = Online
	p.startTurnLoop(ctx)
}

// fail 初始化失败后不退出，之后的请求都回这个错误。
func (p *WarActor) fail(err error) {
	p.initErr = err
	p.state = Offline
	p.closeDC()
	logx.ReportSysErrorWithLoggerContext(context.Background(), p.log, logx.NewSysLog("war_actor_init", err))
}

func (p *WarActor) closeDC() {
	if p.dc == nil {
		return
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := p.dc.Close(closeCtx); err != nil {
		p.log.Error("report dc close failed", zap.Error(err), zap.Int("pending", p.dc.Pending()))
	}
	p.dc = nil
}

// advance 连续推进 n 个回合，中途出错返回已完成的报告。
func (p *WarActor) advance(ctx context.Context, n int) ([]*entity.TurnReport, error) {
	if n <= 0 {
		n = 1
	}
	reports := make([]*entity.TurnReport, 0, n)
	for i := 0; i < n; i++ {
		r, err := p.orchestrator.ProcessTurn(ctx)
		if r != nil {
			reports = append(reports, r)
		}
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (p *WarActor) Orchestrator() *service.Orchestrator {
	return p.orchestrator
}

func (p *WarActor) World() *entity.World {
	return p.deps.World
}

func (p *WarActor) DC() *dc.ReportDC {
	return p.dc
}

func (p *WarActor) State() State {
	return p.state
}

func requestContext(req messages.WarMessage) context.Context {
	ctx := context.Background()
	if id := req.TraceID(); id != "" {
		ctx = tracex.WithTraceID(ctx, id)
	}
	return ctx
}

func (p *WarActor) startTurnLoop(ctx actor.Context) {
	if p.tickStop != nil {
		return
	}
	interval := p.deps.TickEvery
	if interval <= 0 {
		return
	}
	p.tickStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, turnTick{})
			case <-stop:
				return
			}
		}
	}(p.tickStop, interval)
}

func (p *WarActor) stopTurnLoop() {
	if p.tickStop == nil {
		return
	}
	close(p.tickStop)
	p.tickStop = nil
}
