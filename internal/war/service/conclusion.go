package service

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
)

// WarEnv 结束条件表达式可以引用的指标。
type WarEnv struct {
	Turn        int
	TurnsActive int

	AttackerUnits         int
	AttackerStrength      float64
	AttackerStrengthRatio float64
	AttackerEffectiveness float64
	AttackerMorale        float64

	DefenderUnits         int
	DefenderStrength      float64
	DefenderStrengthRatio float64
	DefenderEffectiveness float64

	FrontCities  int
	FallenCities int
	FallenRatio  float64
	Stalemates   int
	LastOutcome  string
}

type conclusionRule struct {
	name    string
	src     string
	program *vm.Program
}

func compileRules(rules []simconfig.ConclusionRule) ([]conclusionRule, error) {
	out := make([]conclusionRule, 0, len(rules))
	for _, r := range rules {
		if r.Name == "" {
			return nil, errx.ErrInvalidConfig.WithData("field", "sim.rules.name").WithData("when", r.When)
		}
		prog, err := expr.Compile(r.When, expr.Env(WarEnv{}), expr.AsBool())
		if err != nil {
			return nil, errx.ErrInvalidConfig.WithData("rule", r.Name).WithCause(err)
		}
		out = append(out, conclusionRule{name: r.Name, src: r.When, program: prog})
	}
	return out, nil
}

// buildEnv 进攻方只算正在进攻这个防守方的编队，防守方算全部驻防。
func buildEnv(world *entity.World, war *entity.War) WarEnv {
	atk, _ := world.Country(war.Attacker())
	def, _ := world.Country(war.Defender())

	env := WarEnv{
		Turn:         world.Turn(),
		TurnsActive:  world.Turn() - war.StartedTurn() + 1,
		FrontCities:  len(war.Front()),
		FallenCities: len(war.FallenCities()),
		FallenRatio:  war.FallenRatio(),
		Stalemates:   war.Stalemates(),
		LastOutcome:  string(war.LastOutcome()),
	}

	attackers := atk.AssaultUnitsTargeting(war.Defender())
	var morale float64
	units := make([]*entity.Unit, 0, len(attackers))
	for _, u := range attackers {
		units = append(units, u.Base())
		morale += u.Morale()
	}
	env.AttackerUnits = len(units)
	env.AttackerStrength, env.AttackerStrengthRatio, env.AttackerEffectiveness = aggregate(units)
	if len(attackers) > 0 {
		env.AttackerMorale = morale / float64(len(attackers))
	}

	defenders := def.Regulars()
	units = units[:0]
	for _, u := range defenders {
		units = append(units, u.Base())
	}
	env.DefenderUnits = len(units)
	env.DefenderStrength, env.DefenderStrengthRatio, env.DefenderEffectiveness = aggregate(units)
	return env
}

// aggregate 总兵力、兵力/满编、按兵力加权的平均战斗力。
func aggregate(units []*entity.Unit) (strength, ratio, effectiveness float64) {
	var maxStrength, weighted float64
	for _, u := range units {
		strength += u.Strength()
		maxStrength += u.MaxStrength()
		weighted += u.Strength() * float64(u.CombatEffectiveness())
	}
	if maxStrength > 0 {
		ratio = strength / maxStrength
	}
	if strength > 0 {
		effectiveness = weighted / strength
	}
	return
}

// builtinReason 内置结束条件：边境全部陷落，或者已经交战过的进攻方没有可用编队。
// 刚开战还没分配目标的战争保持进行中。
func builtinReason(world *entity.World, war *entity.War) string {
	if war.FrontierCollapsed() {
		return entity.ReasonFrontierCollapse
	}
	atk, _ := world.Country(war.Attacker())
	if war.Engaged() && len(atk.AssaultUnitsTargeting(war.Defender())) == 0 {
		return entity.ReasonAttackerExhausted
	}
	return ""
}
