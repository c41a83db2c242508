package entity

import (
	"slices"

	"ArmsDealer/internal/shared/gameconfig/geo"
)

// Country 战争相关的国家聚合：驻防、进攻编队、交战关系、进攻目标分配。
type Country struct {
	code      geo.CountryCode
	regulars  []*RegularUnit
	assaults  []*AssaultUnit
	index     map[UnitID]Formation
	attackers map[geo.CountryCode]bool
	targets   map[geo.CountryCode]bool
	// 进攻编队 -> 它正在进攻的国家
	targeting map[UnitID]geo.CountryCode
}

func NewCountry(code geo.CountryCode) *Country {
	return &Country{
		code:      code,
		index:     make(map[UnitID]Formation),
		attackers: make(map[geo.CountryCode]bool),
		targets:   make(map[geo.CountryCode]bool),
		targeting: make(map[UnitID]geo.CountryCode),
	}
}

func (c *Country) Code() geo.CountryCode { return c.code }

func (c *Country) checkOwner(u *Unit) error {
	if u.Country() != c.code {
		return ErrUnitCountryMismatch.WithData("unit", u.ID()).WithData("unit_country", u.Country()).WithData("country", c.code)
	}
	return nil
}

// AddRegular 同 id 重复加入时替换旧编队。
func (c *Country) AddRegular(u *RegularUnit) error {
	if err := c.checkOwner(&u.Unit); err != nil {
		return err
	}
	c.remove(u.ID())
	c.regulars = append(c.regulars, u)
	c.index[u.ID()] = u
	return nil
}

func (c *Country) AddAssault(u *AssaultUnit) error {
	if err := c.checkOwner(&u.Unit); err != nil {
		return err
	}
	c.remove(u.ID())
	c.assaults = append(c.assaults, u)
	c.index[u.ID()] = u
	return nil
}

func (c *Country) remove(id UnitID) {
	if _, ok := c.index[id]; !ok {
		return
	}
	delete(c.index, id)
	delete(c.targeting, id)
	c.regulars = slices.DeleteFunc(c.regulars, func(u *RegularUnit) bool { return u.ID() == id })
	c.assaults = slices.DeleteFunc(c.assaults, func(u *AssaultUnit) bool { return u.ID() == id })
}

func (c *Country) Unit(id UnitID) (Formation, bool) {
	u, ok := c.index[id]
	return u, ok
}

func (c *Country) Regulars() []*RegularUnit { return slices.Clone(c.regulars) }
func (c *Country) Assaults() []*AssaultUnit { return slices.Clone(c.assaults) }

// AssignTarget 把进攻编队派往 defender，front 是战线标识。
func (c *Country) AssignTarget(id UnitID, defender geo.CountryCode, front string) error {
	u, ok := c.index[id].(*AssaultUnit)
	if !ok {
		return ErrUnitNotFound.WithData("unit", id).WithData("country", c.code)
	}
	if defender == c.code {
		return ErrSelfTarget.WithData("country", c.code)
	}
	c.targeting[id] = defender
	u.moveTo(front)
	return nil
}

// ClearTargets 撤回所有指向 defender 的进攻编队。
func (c *Country) ClearTargets(defender geo.CountryCode) {
	for id, target := range c.targeting {
		if target != defender {
			continue
		}
		delete(c.targeting, id)
		if u, ok := c.index[id].(*AssaultUnit); ok {
			u.moveTo("")
		}
	}
}

// TargetOf 编队当前目标，没有分配时返回 false。
func (c *Country) TargetOf(id UnitID) (geo.CountryCode, bool) {
	t, ok := c.targeting[id]
	return t, ok
}

// AssaultUnitsTargeting 按加入顺序。
func (c *Country) AssaultUnitsTargeting(defender geo.CountryCode) []*AssaultUnit {
	var out []*AssaultUnit
	for _, u := range c.assaults {
		if c.targeting[u.ID()] == defender {
			out = append(out, u)
		}
	}
	return out
}

// GarrisonsIn 驻扎在 city 的编队。
func (c *Country) GarrisonsIn(city geo.CityID) []*RegularUnit {
	var out []*RegularUnit
	for _, u := range c.regulars {
		if u.CityID() == city {
			out = append(out, u)
		}
	}
	return out
}

func (c *Country) IsAtWar() bool {
	return len(c.targets) > 0 || len(c.attackers) > 0
}

func (c *Country) IsAttacking() bool {
	return len(c.targets) > 0
}

func (c *Country) IsDefending() bool {
	return len(c.attackers) > 0
}

// WarsWith 双方任一方向在交战即为 true。
func (c *Country) WarsWith(other geo.CountryCode) bool {
	return c.targets[other] || c.attackers[other]
}

func (c *Country) Attackers() []geo.CountryCode {
	return sortedCodes(c.attackers)
}

func (c *Country) Targets() []geo.CountryCode {
	return sortedCodes(c.targets)
}

// RemoveDestroyed 清理兵力为 0 的编队，返回被清理的 id。
func (c *Country) RemoveDestroyed() []UnitID {
	var gone []UnitID
	for _, u := range c.regulars {
		if u.Destroyed() {
			gone = append(gone, u.ID())
		}
	}
	for _, u := range c.assaults {
		if u.Destroyed() {
			gone = append(gone, u.ID())
		}
	}
	for _, id := range gone {
		c.remove(id)
	}
	return gone
}

func (c *Country) startAttack(defender geo.CountryCode)  { c.targets[defender] = true }
func (c *Country) startDefense(attacker geo.CountryCode) { c.attackers[attacker] = true }

func (c *Country) endAttack(defender geo.CountryCode) {
	delete(c.targets, defender)
	c.ClearTargets(defender)
}

func (c *Country) endDefense(attacker geo.CountryCode) { delete(c.attackers, attacker) }

func sortedCodes(set map[geo.CountryCode]bool) []geo.CountryCode {
	out := make([]geo.CountryCode, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}
