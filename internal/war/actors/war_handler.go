package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"

	"ArmsDealer/internal/shared/actor/messages"
	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
)

type WarHandler struct{}

var WH = &WarHandler{}

func (h *WarHandler) HandleAdvanceTurn(ctx actor.Context, p *WarActor, req *messages.AdvanceTurn) {
	reports, err := p.advance(requestContext(req), req.Turns)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.AdvanceTurnReply{
		Turn:    p.World().Turn(),
		Reports: reports,
	})
}

func (h *WarHandler) HandleQueryWars(ctx actor.Context, p *WarActor, req *messages.QueryWars) {
	wars := p.World().Wars()
	if req.ActiveOnly {
		wars = p.World().ActiveWars()
	}
	out := make([]entity.WarSnapshot, 0, len(wars))
	for _, w := range wars {
		out = append(out, w.Snapshot())
	}
	ctx.Respond(&messages.WarsReply{
		Turn: p.World().Turn(),
		Wars: out,
	})
}

func (h *WarHandler) HandleQueryAttackLines(ctx actor.Context, p *WarActor, req *messages.QueryAttackLines) {
	lines, err := p.World().AttackLines(req.Country)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.AttackLinesReply{
		Country: req.Country,
		Lines:   lines,
	})
}

func (h *WarHandler) HandleQueryBorders(ctx actor.Context, p *WarActor, req *messages.QueryBorders) {
	atlas := p.World().Atlas()
	if _, ok := atlas.Country(req.Country); !ok {
		ctx.Respond(messages.Fail(entity.ErrUnknownCountry.WithData("country", req.Country)))
		return
	}
	if !req.Direction.Valid() {
		ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("direction", req.Direction)))
		return
	}
	ctx.Respond(&messages.BordersReply{
		Country:   req.Country,
		Direction: req.Direction,
		Cities:    atlas.BorderCitiesForDirection(req.Country, req.Direction),
	})
}

func (h *WarHandler) HandleQueryReport(ctx actor.Context, p *WarActor, req *messages.QueryReport) {
	if p.DC() == nil {
		ctx.Respond(messages.Fail(port.ErrReportNotFound.WithData("turn", req.Turn)))
		return
	}
	// 查仓库最多等 defaultQueryTimeout
	rctx, cancel := context.WithTimeout(requestContext(req), defaultQueryTimeout)
	defer cancel()
	r, err := p.DC().LoadTurn(rctx, req.Turn)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.ReportReply{Report: r})
}

func (h *WarHandler) HandleDeclareWar(ctx actor.Context, p *WarActor, req *messages.DeclareWar) {
	w, err := p.World().DeclareWar(req.Attacker, req.Defender)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.WarReply{War: w.Snapshot()})
}

func (h *WarHandler) HandleNegotiatePeace(ctx actor.Context, p *WarActor, req *messages.NegotiatePeace) {
	if err := p.World().NegotiatePeace(req.WarID); err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	w, _ := p.World().War(req.WarID)
	ctx.Respond(&messages.WarReply{War: w.Snapshot()})
}

func (h *WarHandler) HandleAssignTarget(ctx actor.Context, p *WarActor, req *messages.AssignTarget) {
	front, err := p.World().AssignTarget(req.Attacker, req.Unit, req.Defender)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.AssignTargetReply{
		Unit:     req.Unit,
		Defender: req.Defender,
		Front:    front,
	})
}

func (h *WarHandler) HandleApplyTuning(ctx actor.Context, p *WarActor, req *messages.ApplyTuning) {
	if err := p.Orchestrator().ApplyTuning(req.Sim); err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.TuningReply{Sim: p.Orchestrator().Tuning()})
}
