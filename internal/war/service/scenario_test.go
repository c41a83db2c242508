package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
)

type seqIDs struct{ n int }

func (s *seqIDs) NextString(prefix string) string {
	s.n++
	return prefix + string(rune('a'+s.n-1))
}

func TestLoadScenario_编入部队并开战(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "scenario.yml"))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	w := newWorld(t)
	if err := sc.Apply(w, &seqIDs{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if w.Turn() != 3 || len(w.ActiveWars()) != 1 {
		t.Fatalf("turn = %d wars = %d", w.Turn(), len(w.ActiveWars()))
	}
	ukr, _ := w.Country(geo.Ukraine)
	garrisons := ukr.GarrisonsIn("ukr.kharkiv")
	if len(garrisons) != 2 || garrisons[0].ID() != "ukr-a" || garrisons[1].ID() != "ukr-b" {
		t.Fatalf("garrisons = %v", garrisons)
	}
	if garrisons[0].Attributes().Supplies != 60 || garrisons[0].Attributes().Training != entity.DefaultTraining {
		t.Fatalf("attrs = %+v", garrisons[0].Attributes())
	}
	rus, _ := w.Country(geo.Russia)
	targeting := rus.AssaultUnitsTargeting(geo.Ukraine)
	if len(targeting) != 1 {
		t.Fatalf("targeting = %v", targeting)
	}
	guards := targeting[0]
	if guards.ID() != "rus-guards" || guards.Morale() != 90 || guards.Branch() != entity.BranchDrones || guards.FrontID() != "UKR-EAST" {
		t.Fatalf("guards = id %s morale %v branch %s front %s", guards.ID(), guards.Morale(), guards.Branch(), guards.FrontID())
	}
}

func TestScenario_非法城市(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	body := "units:\n  - kind: regular\n    country: UKR\n    city: rus.kursk\n    max_strength: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if err := sc.Apply(newWorld(t), nil); !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
}

func TestScenario_非法战争(t *testing.T) {
	sc := &Scenario{Wars: []ScenarioWar{{Attacker: geo.Syria, Defender: geo.Ukraine}}}
	if err := sc.Apply(newWorld(t), nil); !errors.Is(err, entity.ErrNotAdjacent) {
		t.Fatalf("err = %v", err)
	}
}
