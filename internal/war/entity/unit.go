package entity

import (
	"math"

	"ArmsDealer/internal/shared/gameconfig/geo"
)

type UnitID string

// Branch 兵种。
type Branch string

const (
	BranchArmy          Branch = "army"
	BranchNavy          Branch = "navy"
	BranchAirforce      Branch = "airforce"
	BranchSpecialForces Branch = "special-forces"
	BranchDrones        Branch = "drones"
)

func (b Branch) Valid() bool {
	switch b {
	case BranchArmy, BranchNavy, BranchAirforce, BranchSpecialForces, BranchDrones:
		return true
	}
	return false
}

// Kind 只有两种：驻防 regular、进攻 assault。
type Kind string

const (
	KindRegular Kind = "regular"
	KindAssault Kind = "assault"
)

const (
	MinEquipment = 1
	MaxEquipment = 5
	MaxAttribute = 100

	DefaultSupplies     = 80
	DefaultOrganization = 70
	DefaultTraining     = 60

	DefaultConsumeSupplies = 2
	DefaultTrain           = 1
	DefaultReorganize      = 5
)

// Attributes 三项属性都在 [0,100]。
type Attributes struct {
	Supplies     float64 `json:"supplies"`
	Organization float64 `json:"organization"`
	Training     float64 `json:"training"`
}

func DefaultAttributes() Attributes {
	return Attributes{
		Supplies:     DefaultSupplies,
		Organization: DefaultOrganization,
		Training:     DefaultTraining,
	}
}

func (a Attributes) clamped() Attributes {
	return Attributes{
		Supplies:     clamp(a.Supplies, 0, MaxAttribute),
		Organization: clamp(a.Organization, 0, MaxAttribute),
		Training:     clamp(a.Training, 0, MaxAttribute),
	}
}

// UnitSpec 征兵/开战方提供的初始参数。Strength、Attributes 为空时取满编和默认属性。
type UnitSpec struct {
	ID          UnitID
	Country     geo.CountryCode
	Branch      Branch
	MaxStrength float64
	Equipment   int
	Strength    *float64
	Attributes  *Attributes
}

// Unit 两种编队共享的状态。所有修改方法都是全函数：负数入参按 0 处理，结果夹到合法区间。
type Unit struct {
	id          UnitID
	country     geo.CountryCode
	branch      Branch
	kind        Kind
	strength    float64
	maxStrength float64
	equipment   int
	attrs       Attributes
}

func newUnit(spec UnitSpec, kind Kind) Unit {
	maxStrength := math.Max(0, spec.MaxStrength)
	u := Unit{
		id:          spec.ID,
		country:     spec.Country,
		branch:      spec.Branch,
		kind:        kind,
		strength:    maxStrength,
		maxStrength: maxStrength,
		equipment:   int(clamp(float64(spec.Equipment), MinEquipment, MaxEquipment)),
		attrs:       DefaultAttributes(),
	}
	if spec.Strength != nil {
		u.strength = clamp(*spec.Strength, 0, maxStrength)
	}
	if spec.Attributes != nil {
		u.attrs = spec.Attributes.clamped()
	}
	return u
}

func (u *Unit) ID() UnitID               { return u.id }
func (u *Unit) Country() geo.CountryCode { return u.country }
func (u *Unit) Branch() Branch           { return u.branch }
func (u *Unit) Kind() Kind               { return u.kind }
func (u *Unit) Strength() float64        { return u.strength }
func (u *Unit) MaxStrength() float64     { return u.maxStrength }
func (u *Unit) Equipment() int           { return u.equipment }
func (u *Unit) Attributes() Attributes   { return u.attrs }

// Destroyed 兵力归零，回合末由 Country.RemoveDestroyed 清理。
func (u *Unit) Destroyed() bool {
	return u.strength <= 0
}

// TakeDamage 战斗伤害同时削弱组织度（d*0.5）。
func (u *Unit) TakeDamage(d float64) {
	d = nonNegative(d)
	u.strength = math.Max(0, u.strength-d)
	u.attrs.Organization = math.Max(0, u.attrs.Organization-d*0.5)
}

func (u *Unit) ConsumeSupplies(a float64) {
	u.attrs.Supplies = clamp(u.attrs.Supplies-nonNegative(a), 0, MaxAttribute)
}

func (u *Unit) Resupply(a float64) {
	u.attrs.Supplies = clamp(u.attrs.Supplies+nonNegative(a), 0, MaxAttribute)
}

func (u *Unit) Train(a float64) {
	u.attrs.Training = clamp(u.attrs.Training+nonNegative(a), 0, MaxAttribute)
}

func (u *Unit) Reorganize(a float64) {
	u.attrs.Organization = clamp(u.attrs.Organization+nonNegative(a), 0, MaxAttribute)
}

// regain 只给驻防部队的回合恢复用。
func (u *Unit) regain(a float64) {
	u.strength = clamp(u.strength+nonNegative(a), 0, u.maxStrength)
}

// factors 每项归一化到 [0,1]。
func (u *Unit) factors() (strength, equipment, supplies, organization, training float64) {
	if u.maxStrength > 0 {
		strength = u.strength / u.maxStrength
	}
	equipment = float64(u.equipment) / MaxEquipment
	supplies = u.attrs.Supplies / MaxAttribute
	organization = u.attrs.Organization / MaxAttribute
	training = u.attrs.Training / MaxAttribute
	return
}

// CombatEffectiveness 0~100。
func (u *Unit) CombatEffectiveness() int {
	s, e, sp, o, t := u.factors()
	return percent(s*0.30 + e*0.25 + sp*0.15 + o*0.15 + t*0.15)
}

// EfficiencyBreakdown 各项归一化后的百分比。
type EfficiencyBreakdown struct {
	Strength     int `json:"strength"`
	Equipment    int `json:"equipment"`
	Supplies     int `json:"supplies"`
	Organization int `json:"organization"`
	Training     int `json:"training"`
}

type Efficiency struct {
	Overall     int                 `json:"overall"`
	Combat      int                 `json:"combat"`
	Operational int                 `json:"operational"`
	Logistical  int                 `json:"logistical"`
	Breakdown   EfficiencyBreakdown `json:"breakdown"`
}

func (u *Unit) Efficiency() Efficiency {
	s, e, sp, o, t := u.factors()
	combat := s*0.4 + e*0.35 + t*0.25
	operational := o*0.6 + t*0.4
	logistical := sp*0.7 + o*0.3
	return Efficiency{
		Overall:     percent(combat*0.5 + operational*0.3 + logistical*0.2),
		Combat:      percent(combat),
		Operational: percent(operational),
		Logistical:  percent(logistical),
		Breakdown: EfficiencyBreakdown{
			Strength:     percent(s),
			Equipment:    percent(e),
			Supplies:     percent(sp),
			Organization: percent(o),
			Training:     percent(t),
		},
	}
}

// Formation 编队的封闭变体集合，只有 *RegularUnit 和 *AssaultUnit 实现。
type Formation interface {
	Base() *Unit
	Location() string
	ProcessTurn()
	formation()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func percent(f float64) int {
	return int(clamp(math.Round(f*100), 0, 100))
}
