package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"ArmsDealer/internal/shared/actor/messages"
	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/shared/transport"
	"ArmsDealer/internal/war/actors"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
	"ArmsDealer/modules/kit/tracex"
)

const defaultAskTimeout = 3 * time.Second

// RuntimeError actor 通信层面的失败（超时、未初始化、回包类型不对）。业务拒绝不包成 RuntimeError，原样返回 errx 错误。
type RuntimeError struct {
	Code    transport.BizCode
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(deps actors.Deps, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(deps)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

// Shutdown 等 manager 连同战争 actor 停下（报告队列在此期间写完）再关闭 actor system。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) AdvanceTurn(ctx context.Context, turns int) (*messages.AdvanceTurnReply, error) {
	return ask[*messages.AdvanceTurnReply](r, ctx, &messages.AdvanceTurn{WarBaseMessage: base(ctx), Turns: turns})
}

func (r *Runtime) Wars(ctx context.Context, activeOnly bool) (*messages.WarsReply, error) {
	return ask[*messages.WarsReply](r, ctx, &messages.QueryWars{WarBaseMessage: base(ctx), ActiveOnly: activeOnly})
}

func (r *Runtime) AttackLines(ctx context.Context, country geo.CountryCode) (*messages.AttackLinesReply, error) {
	return ask[*messages.AttackLinesReply](r, ctx, &messages.QueryAttackLines{WarBaseMessage: base(ctx), Country: country})
}

func (r *Runtime) Borders(ctx context.Context, country geo.CountryCode, dir geo.Direction) (*messages.BordersReply, error) {
	return ask[*messages.BordersReply](r, ctx, &messages.QueryBorders{WarBaseMessage: base(ctx), Country: country, Direction: dir})
}

func (r *Runtime) Report(ctx context.Context, turn int) (*messages.ReportReply, error) {
	return ask[*messages.ReportReply](r, ctx, &messages.QueryReport{WarBaseMessage: base(ctx), Turn: turn})
}

func (r *Runtime) DeclareWar(ctx context.Context, attacker, defender geo.CountryCode) (*messages.WarReply, error) {
	return ask[*messages.WarReply](r, ctx, &messages.DeclareWar{WarBaseMessage: base(ctx), Attacker: attacker, Defender: defender})
}

func (r *Runtime) NegotiatePeace(ctx context.Context, id entity.WarID) (*messages.WarReply, error) {
	return ask[*messages.WarReply](r, ctx, &messages.NegotiatePeace{WarBaseMessage: base(ctx), WarID: id})
}

func (r *Runtime) AssignTarget(ctx context.Context, attacker geo.CountryCode, unit entity.UnitID, defender geo.CountryCode) (*messages.AssignTargetReply, error) {
	return ask[*messages.AssignTargetReply](r, ctx, &messages.AssignTarget{WarBaseMessage: base(ctx), Attacker: attacker, Unit: unit, Defender: defender})
}

func (r *Runtime) ApplyTuning(ctx context.Context, sim simconfig.SimConfig) (*messages.TuningReply, error) {
	return ask[*messages.TuningReply](r, ctx, &messages.ApplyTuning{WarBaseMessage: base(ctx), Sim: sim})
}

func base(ctx context.Context) messages.WarBaseMessage {
	id, _ := tracex.TraceIDFrom(ctx)
	return messages.WarBaseMessage{TraceId: id}
}

// ask 发请求并按类型取回包；FailResp 解开成里面的 errx 错误。
func ask[T any](r *Runtime, ctx context.Context, msg any) (T, error) {
	var zero T
	if r == nil {
		return zero, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return zero, err
	}
	switch v := res.(type) {
	case *messages.FailResp:
		if v.Err != nil {
			return zero, v.Err
		}
		return zero, errx.ErrInternal.WithData("message", v.Message)
	case T:
		return v, nil
	default:
		return zero, &RuntimeError{Code: transport.SystemError, Message: "actor 回包类型不匹配"}
	}
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空"}
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		code := transport.SystemError
		if errors.Is(err, protoactor.ErrTimeout) {
			code = transport.RequestLimit
		}
		return nil, &RuntimeError{
			Code:    code,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func CodeFromError(err error) transport.BizCode {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
