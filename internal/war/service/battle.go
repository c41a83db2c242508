package service

import (
	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/entity"
)

type unitDamage struct {
	unit   *entity.Unit
	amount float64
}

// battlePlan 只读阶段的计算结果，apply 阶段才修改状态。
type battlePlan struct {
	war       *entity.War
	front     geo.BorderCity
	hasFront  bool
	attackers []*entity.AssaultUnit
	defenders []*entity.RegularUnit
	damage    []unitDamage
	report    entity.BattleReport
}

func combatPower(u *entity.Unit, bonus float64) float64 {
	return u.Strength() * float64(u.CombatEffectiveness()) / 100 * bonus
}

// planBattle 读取双方当前状态，算出战力、伤害分摊和结果。
func planBattle(world *entity.World, war *entity.War, tuning simconfig.SimConfig) *battlePlan {
	atk, _ := world.Country(war.Attacker())
	def, _ := world.Country(war.Defender())

	p := &battlePlan{
		war: war,
		report: entity.BattleReport{
			WarID:     war.ID(),
			Attacker:  war.Attacker(),
			Defender:  war.Defender(),
			Direction: war.Direction(),
		},
	}
	for _, u := range atk.AssaultUnitsTargeting(war.Defender()) {
		if !u.Destroyed() {
			p.attackers = append(p.attackers, u)
		}
	}
	p.front, p.hasFront = war.FrontCity()
	if p.hasFront {
		p.report.FrontCity = p.front.CityID
		for _, u := range def.GarrisonsIn(p.front.CityID) {
			if !u.Destroyed() {
				p.defenders = append(p.defenders, u)
			}
		}
	}
	p.report.AttackerUnits = len(p.attackers)
	p.report.DefenderUnits = len(p.defenders)
	if len(p.attackers) == 0 {
		return p
	}

	var attackPower, defensePower float64
	attackerUnits := make([]*entity.Unit, 0, len(p.attackers))
	for _, u := range p.attackers {
		attackPower += combatPower(u.Base(), u.AttackBonus())
		attackerUnits = append(attackerUnits, u.Base())
	}
	defenderUnits := make([]*entity.Unit, 0, len(p.defenders))
	for _, u := range p.defenders {
		defensePower += combatPower(u.Base(), u.DefenseBonus())
		defenderUnits = append(defenderUnits, u.Base())
	}
	defensePower += tuning.MilitiaDefense

	p.report.AttackPower = attackPower
	p.report.DefensePower = defensePower
	p.report.AttackerDamage = defensePower * tuning.DamageScale
	p.report.DefenderDamage = attackPower * tuning.DamageScale
	p.damage = append(p.damage, splitDamage(attackerUnits, p.report.AttackerDamage)...)
	// 没有守军时伤害由民兵吸收
	p.damage = append(p.damage, splitDamage(defenderUnits, p.report.DefenderDamage)...)

	switch {
	case attackPower > defensePower*tuning.CaptureRatio:
		p.report.Outcome = entity.OutcomeAdvance
	case defensePower > attackPower*tuning.CaptureRatio:
		p.report.Outcome = entity.OutcomeRepulse
	default:
		p.report.Outcome = entity.OutcomeStalemate
	}
	return p
}

// splitDamage 按兵力占比分摊。
func splitDamage(units []*entity.Unit, total float64) []unitDamage {
	var sum float64
	for _, u := range units {
		sum += u.Strength()
	}
	if sum <= 0 || total <= 0 {
		return nil
	}
	out := make([]unitDamage, 0, len(units))
	for _, u := range units {
		out = append(out, unitDamage{unit: u, amount: total * u.Strength() / sum})
	}
	return out
}

// apply 提交本回合战斗结果。
func (p *battlePlan) apply(tuning simconfig.SimConfig) {
	if len(p.attackers) == 0 {
		return
	}
	p.war.Engage()
	for _, d := range p.damage {
		d.unit.TakeDamage(d.amount)
	}

	switch p.report.Outcome {
	case entity.OutcomeAdvance:
		for _, u := range p.attackers {
			u.AddVictoryMomentum(tuning.VictoryMomentum)
		}
		if p.hasFront {
			next, hasNext := p.war.NextFrontCity()
			if p.war.Capture(p.front.CityID) {
				p.report.Captured = p.front.CityID
			}
			// 守军撤往下一座边境城市；没有下一座就原地坚守
			if hasNext {
				for _, u := range p.defenders {
					u.Relocate(next.CityID)
				}
			}
		}
	case entity.OutcomeRepulse:
		for _, u := range p.attackers {
			u.SufferDefeat(tuning.DefeatSeverity)
		}
	}
	p.war.Record(p.report.Outcome)
}
