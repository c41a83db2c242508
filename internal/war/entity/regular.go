package entity

import "ArmsDealer/internal/shared/gameconfig/geo"

// RegularUnit 驻防在城市里，每回合按补给和组织度缓慢恢复兵力。
type RegularUnit struct {
	Unit
	cityID geo.CityID
}

func NewRegularUnit(spec UnitSpec, city geo.CityID) *RegularUnit {
	return &RegularUnit{Unit: newUnit(spec, KindRegular), cityID: city}
}

func (r *RegularUnit) Base() *Unit        { return &r.Unit }
func (r *RegularUnit) CityID() geo.CityID { return r.cityID }
func (r *RegularUnit) Location() string   { return string(r.cityID) }
func (*RegularUnit) formation()           {}

// Relocate 撤到另一座城市。
func (r *RegularUnit) Relocate(city geo.CityID) {
	r.cityID = city
}

func (r *RegularUnit) ProcessTurn() {
	if r.strength < r.maxStrength && r.attrs.Supplies > 50 {
		r.regain(2 * (r.attrs.Supplies / MaxAttribute) * (r.attrs.Organization / MaxAttribute))
	}
	r.ConsumeSupplies(1)
	if r.attrs.Organization < MaxAttribute {
		r.Reorganize(2)
	}
	if r.attrs.Training < 80 {
		r.Train(0.5)
	}
}

func (r *RegularUnit) DefenseBonus() float64 {
	return 1.5 * (1 + r.attrs.Training/MaxAttribute*0.3) * (1 + r.attrs.Organization/MaxAttribute*0.2)
}
