package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"ArmsDealer/internal/shared/actor/messages"
	"ArmsDealer/modules/kit/errx"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, WH.HandleAdvanceTurn)
	register(d, WH.HandleQueryWars)
	register(d, WH.HandleQueryAttackLines)
	register(d, WH.HandleQueryBorders)
	register(d, WH.HandleQueryReport)
	register(d, WH.HandleDeclareWar)
	register(d, WH.HandleNegotiatePeace)
	register(d, WH.HandleAssignTarget)
	register(d, WH.HandleApplyTuning)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *WarActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *WarActor, req messages.WarMessage) {
	if req == nil {
		ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("reason", "nil request")))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("reason", "no handler for "+bodyType.String())))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
