package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/actors"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/internal/war/infra/persistence/memory"
	"ArmsDealer/modules/kit/errx"
)

func newRuntime(t *testing.T) (*Runtime, *memory.ReportRepository, entity.WarID) {
	t.Helper()
	atlas, err := geo.Default()
	if err != nil {
		t.Fatalf("atlas: %v", err)
	}
	world := entity.NewWorld(atlas)
	war, err := world.DeclareWar("RUS", "UKR")
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	rus, _ := world.Country("RUS")
	u := entity.NewAssaultUnit(entity.UnitSpec{
		ID:          "rus-1",
		Country:     "RUS",
		Branch:      entity.BranchArmy,
		MaxStrength: 100,
		Equipment:   3,
	}, "")
	if err := rus.AddAssault(u); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := rus.AssignTarget(u.ID(), "UKR", "UKR-EAST"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	repo := memory.NewReportRepository()
	rt := NewRuntime(actors.Deps{
		World:  world,
		Tuning: simconfig.Default().Sim,
		Repo:   repo,
	}, time.Second)
	return rt, repo, war.ID()
}

func TestRuntime_推进回合并查询(t *testing.T) {
	rt, repo, _ := newRuntime(t)
	ctx := context.Background()

	adv, err := rt.AdvanceTurn(ctx, 2)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(adv.Reports) != 2 || adv.Turn != 3 {
		t.Fatalf("reports=%d turn=%d", len(adv.Reports), adv.Turn)
	}
	if adv.Reports[0].Turn != 1 || adv.Reports[1].Turn != 2 {
		t.Fatalf("report turns %d,%d", adv.Reports[0].Turn, adv.Reports[1].Turn)
	}

	rep, err := rt.Report(ctx, 1)
	if err != nil || rep.Report.Turn != 1 {
		t.Fatalf("report 1: %+v err=%v", rep, err)
	}

	wars, err := rt.Wars(ctx, false)
	if err != nil || len(wars.Wars) != 1 || wars.Turn != 3 {
		t.Fatalf("wars: %+v err=%v", wars, err)
	}

	borders, err := rt.Borders(ctx, "UKR", geo.East)
	if err != nil || len(borders.Cities) != 3 {
		t.Fatalf("borders: %+v err=%v", borders, err)
	}

	rt.Shutdown()
	if turns := repo.Turns(); len(turns) != 2 {
		t.Fatalf("reports not flushed on shutdown: %v", turns)
	}
}

func TestRuntime_业务错误原样返回(t *testing.T) {
	rt, _, warID := newRuntime(t)
	defer rt.Shutdown()
	ctx := context.Background()

	if _, err := rt.Borders(ctx, "XXX", geo.East); !errors.Is(err, entity.ErrUnknownCountry) {
		t.Fatalf("want ErrUnknownCountry, got %v", err)
	}
	if _, err := rt.DeclareWar(ctx, "UKR", "UKR"); !errors.Is(err, entity.ErrSelfTarget) {
		t.Fatalf("want ErrSelfTarget, got %v", err)
	}
	if _, err := rt.DeclareWar(ctx, "RUS", "UKR"); !errors.Is(err, entity.ErrAlreadyActive) {
		t.Fatalf("want ErrAlreadyActive, got %v", err)
	}
	if _, err := rt.Report(ctx, 99); err == nil {
		t.Fatalf("want not found for unknown turn")
	}

	bad := simconfig.Default().Sim
	bad.Rules = []simconfig.ConclusionRule{{Name: "broken", When: "Stalemates >"}}
	if _, err := rt.ApplyTuning(ctx, bad); !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}

	peace, err := rt.NegotiatePeace(ctx, warID)
	if err != nil {
		t.Fatalf("peace: %v", err)
	}
	if peace.War.State != entity.WarConcluded || peace.War.Reason != entity.ReasonNegotiatedPeace {
		t.Fatalf("peace result %+v", peace.War)
	}
	if CodeFromError(err) != 0 {
		t.Fatalf("nil error code = %d", CodeFromError(err))
	}
}

func TestRuntime_未初始化(t *testing.T) {
	var rt *Runtime
	_, err := rt.Wars(context.Background(), false)
	var re *RuntimeError
	if !errors.As(err, &re) || CodeFromError(err) != 500 {
		t.Fatalf("want RuntimeError 500, got %v", err)
	}
}

func TestRuntime_World为空时请求返回初始化错误(t *testing.T) {
	rt := NewRuntime(actors.Deps{}, time.Second)
	defer rt.Shutdown()
	if _, err := rt.Wars(context.Background(), false); !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
}

func TestRuntime_议和后重新开战需要分配目标(t *testing.T) {
	rt, _, warID := newRuntime(t)
	defer rt.Shutdown()
	ctx := context.Background()

	if _, err := rt.NegotiatePeace(ctx, warID); err != nil {
		t.Fatalf("peace: %v", err)
	}
	again, err := rt.DeclareWar(ctx, "RUS", "UKR")
	if err != nil {
		t.Fatalf("redeclare: %v", err)
	}

	adv, err := rt.AdvanceTurn(ctx, 1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if b := adv.Reports[0].Battles; len(b) != 1 || b[0].Concluded {
		t.Fatalf("war without assignments should stay active: %+v", b)
	}

	assigned, err := rt.AssignTarget(ctx, "RUS", "rus-1", "UKR")
	if err != nil || assigned.Front != "UKR-EAST" {
		t.Fatalf("assign: %+v err=%v", assigned, err)
	}
	if _, err := rt.AssignTarget(ctx, "RUS", "ghost", "UKR"); !errors.Is(err, entity.ErrUnitNotFound) {
		t.Fatalf("want ErrUnitNotFound, got %v", err)
	}

	adv, err = rt.AdvanceTurn(ctx, 1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	b := adv.Reports[0].Battles[0]
	if b.WarID != again.War.ID || b.AttackerUnits != 1 || b.Outcome == entity.OutcomeNone {
		t.Fatalf("battle = %+v", b)
	}
}
