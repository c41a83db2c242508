package entity

import "math"

const (
	DefaultMorale          = 70
	DefaultVictoryMomentum = 10
	DefaultDefeatSeverity  = 10
)

// AssaultUnit 进攻编队，士气和动量影响攻击加成。
type AssaultUnit struct {
	Unit
	frontID  string
	morale   float64
	momentum float64
}

func NewAssaultUnit(spec UnitSpec, front string) *AssaultUnit {
	return &AssaultUnit{
		Unit:    newUnit(spec, KindAssault),
		frontID: front,
		morale:  DefaultMorale,
	}
}

func (a *AssaultUnit) Base() *Unit       { return &a.Unit }
func (a *AssaultUnit) FrontID() string   { return a.frontID }
func (a *AssaultUnit) Location() string  { return a.frontID }
func (a *AssaultUnit) Morale() float64   { return a.morale }
func (a *AssaultUnit) Momentum() float64 { return a.momentum }
func (*AssaultUnit) formation()          {}

// Restore 装载存档或剧本时直接设置士气、动量，结果夹到 [0,100]。
func (a *AssaultUnit) Restore(morale, momentum float64) {
	a.morale = clamp(morale, 0, MaxAttribute)
	a.momentum = clamp(momentum, 0, MaxAttribute)
}

func (a *AssaultUnit) moveTo(front string) {
	a.frontID = front
}

func (a *AssaultUnit) ProcessTurn() {
	a.ConsumeSupplies(3)
	if a.attrs.Supplies < 30 {
		a.morale = math.Max(0, a.morale-5)
	}
	if a.attrs.Organization > 50 {
		a.attrs.Organization = math.Max(50, a.attrs.Organization-1)
	}
	a.momentum = math.Max(0, a.momentum-1)
	if a.attrs.Training < 90 {
		a.Train(0.3)
	}
}

func (a *AssaultUnit) AttackBonus() float64 {
	return 1.3 * (1 + a.morale/MaxAttribute*0.4) * (1 + a.momentum/MaxAttribute*0.3) * (1 + a.attrs.Training/MaxAttribute*0.2)
}

func (a *AssaultUnit) AddVictoryMomentum(v float64) {
	v = nonNegative(v)
	a.momentum = math.Min(MaxAttribute, a.momentum+v)
	a.morale = math.Min(MaxAttribute, a.morale+v*0.5)
}

// SufferDefeat 组织度下限 20：战败后会被整编到至少 20。
func (a *AssaultUnit) SufferDefeat(s float64) {
	s = nonNegative(s)
	a.morale = math.Max(0, a.morale-s)
	a.momentum = math.Max(0, a.momentum-s*2)
	a.attrs.Organization = math.Max(20, a.attrs.Organization-s)
}
