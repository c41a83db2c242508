package memory

import (
	"context"
	"errors"
	"testing"

	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
)

func TestReportRepository_保存后读取是拷贝(t *testing.T) {
	repo := NewReportRepository()
	rep := &entity.TurnReport{
		Turn:      3,
		Battles:   []entity.BattleReport{{WarID: "RUS-UKR-1", Outcome: entity.OutcomeAdvance}},
		Destroyed: []entity.UnitID{"u1"},
	}
	if err := repo.Save(context.Background(), rep); err != nil {
		t.Fatalf("save: %v", err)
	}
	rep.Battles[0].Outcome = entity.OutcomeRepulse
	rep.Destroyed[0] = "changed"

	got, err := repo.LoadTurn(context.Background(), 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Battles[0].Outcome != entity.OutcomeAdvance || got.Destroyed[0] != "u1" {
		t.Fatalf("stored report mutated by caller: %+v", got)
	}
	got.Battles[0].Outcome = entity.OutcomeStalemate
	again, _ := repo.LoadTurn(context.Background(), 3)
	if again.Battles[0].Outcome != entity.OutcomeAdvance {
		t.Fatalf("stored report mutated by reader")
	}
}

func TestReportRepository_同回合覆盖_缺失返回NotFound(t *testing.T) {
	repo := NewReportRepository()
	ctx := context.Background()
	_ = repo.Save(ctx, &entity.TurnReport{Turn: 1, Processed: 1})
	_ = repo.Save(ctx, &entity.TurnReport{Turn: 1, Processed: 2})
	_ = repo.Save(ctx, &entity.TurnReport{Turn: 4})

	got, err := repo.LoadTurn(ctx, 1)
	if err != nil || got.Processed != 2 {
		t.Fatalf("want overwritten report, got %+v err=%v", got, err)
	}
	if turns := repo.Turns(); len(turns) != 2 || turns[0] != 1 || turns[1] != 4 {
		t.Fatalf("turns=%v", turns)
	}
	if _, err := repo.LoadTurn(ctx, 2); !errors.Is(err, port.ErrReportNotFound) {
		t.Fatalf("want ErrReportNotFound, got %v", err)
	}
}
