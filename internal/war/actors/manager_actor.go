package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"ArmsDealer/internal/shared/actor/messages"
	"ArmsDealer/modules/kit/errx"
)

// ManagerActor 持有唯一的战争 actor，转发所有 WarMessage。战争 actor 作为子 actor，随 manager 一起停止。
type ManagerActor struct {
	deps     Deps
	warActor *actor.PID
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{deps: deps}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		m.getOrSpawn(ctx)
	case messages.WarMessage:
		if msg == nil {
			ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("reason", "nil request")))
			return
		}
		ctx.Forward(m.getOrSpawn(ctx))
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context) *actor.PID {
	if m.warActor != nil {
		return m.warActor
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewWarActor(m.deps)
	})
	m.warActor = ctx.Spawn(props)
	return m.warActor
}
