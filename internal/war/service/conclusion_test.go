package service

import (
	"testing"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/entity"
)

func TestBuildEnv_聚合指标(t *testing.T) {
	w := newWorld(t)
	war, _ := w.DeclareWar(geo.Russia, geo.Ukraine)
	attackers := addAssaults(t, w, geo.Russia, geo.Ukraine, 2)
	attackers[0].Restore(40, 0)
	attackers[1].Restore(80, 0)
	garrisons := addGarrisons(t, w, geo.Ukraine, "ukr.kyiv", 2)
	garrisons[0].TakeDamage(50)
	war.Capture("ukr.kharkiv")

	env := buildEnv(w, war)
	if env.AttackerUnits != 2 || env.AttackerStrength != 200 || env.AttackerMorale != 60 {
		t.Fatalf("attacker env = %+v", env)
	}
	if env.DefenderUnits != 2 || env.DefenderStrength != 150 || env.DefenderStrengthRatio != 0.75 {
		t.Fatalf("defender env = %+v", env)
	}
	if env.FrontCities != 3 || env.FallenCities != 1 || env.TurnsActive != 1 {
		t.Fatalf("front env = %+v", env)
	}
	if env.DefenderEffectiveness <= 0 || env.DefenderEffectiveness >= env.AttackerEffectiveness {
		t.Fatalf("effectiveness = %v/%v", env.DefenderEffectiveness, env.AttackerEffectiveness)
	}

	rules, err := compileRules([]simconfig.ConclusionRule{
		{Name: "capitulation", When: "FallenRatio >= 0.3 && DefenderStrengthRatio < 0.8"},
	})
	if err != nil {
		t.Fatalf("compileRules: %v", err)
	}
	matched, err := runRule(rules[0].program, env)
	if err != nil || !matched {
		t.Fatalf("rule = %v, %v", matched, err)
	}
}

func TestBuiltinReason_优先于配置规则(t *testing.T) {
	w := newWorld(t)
	war, _ := w.DeclareWar(geo.Syria, geo.Turkey)
	if got := builtinReason(w, war); got != "" {
		t.Fatalf("reason = %q, want none before engagement", got)
	}
	units := addAssaults(t, w, geo.Syria, geo.Turkey, 1)
	war.Engage()
	if got := builtinReason(w, war); got != "" {
		t.Fatalf("reason = %q, want none", got)
	}
	syr, _ := w.Country(geo.Syria)
	units[0].TakeDamage(1000)
	syr.RemoveDestroyed()
	if got := builtinReason(w, war); got != entity.ReasonAttackerExhausted {
		t.Fatalf("reason = %q", got)
	}
	for _, bc := range war.Front() {
		war.Capture(bc.CityID)
	}
	if got := builtinReason(w, war); got != entity.ReasonFrontierCollapse {
		t.Fatalf("reason = %q", got)
	}
}
