package main

import (
	"bytes"
	"strings"
	"testing"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/entity"
)

func TestRenderTurn_包含战斗与歼灭单位(t *testing.T) {
	var buf bytes.Buffer
	renderTurn(&buf, &entity.TurnReport{
		Turn: 2,
		Battles: []entity.BattleReport{{
			WarID:     "RUS-UKR-1",
			FrontCity: "ukr.kharkiv",
			Outcome:   entity.OutcomeAdvance,
			Captured:  "ukr.kharkiv",
		}},
		Processed: 5,
		Destroyed: []entity.UnitID{"u-1"},
	})
	out := buf.String()
	for _, want := range []string{"Turn 2", "RUS-UKR-1", "ukr.kharkiv", "destroyed: u-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadAtlas_无覆盖时使用内置数据(t *testing.T) {
	a, err := loadAtlas(simconfig.GeoConfig{})
	if err != nil {
		t.Fatalf("loadAtlas: %v", err)
	}
	def, _ := geo.Default()
	if a != def {
		t.Fatalf("want shared default atlas")
	}

	b, err := loadAtlas(simconfig.GeoConfig{AttackDistance: 2000})
	if err != nil {
		t.Fatalf("loadAtlas override: %v", err)
	}
	if b.AttackDistance() != 2000 || b.AttackOrigin(geo.East).X != 2000 {
		t.Fatalf("override not applied: %v", b.AttackDistance())
	}
}

func TestNewRootCmd_子命令齐全(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"run", "serve", "geo"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("missing subcommand %s: %v", name, err)
		}
	}
	if c, _, err := root.Find([]string{"geo", "borders"}); err != nil || c.Name() != "borders" {
		t.Fatalf("missing geo borders: %v", err)
	}
}
