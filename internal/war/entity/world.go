package entity

import (
	"cmp"
	"fmt"
	"slices"

	"ArmsDealer/internal/shared/gameconfig/geo"
)

// World 显式构造的世界注册表：回合计数、国家聚合、战争。由回合编排器独占修改。
type World struct {
	atlas     *geo.Atlas
	turn      int
	countries map[geo.CountryCode]*Country
	wars      map[WarID]*War
}

// NewWorld 为 atlas 里的每个国家建一个空聚合；回合从 1 开始。
func NewWorld(atlas *geo.Atlas) *World {
	w := &World{
		atlas:     atlas,
		turn:      1,
		countries: make(map[geo.CountryCode]*Country),
		wars:      make(map[WarID]*War),
	}
	for _, code := range atlas.Countries() {
		w.countries[code] = NewCountry(code)
	}
	return w
}

func (w *World) Atlas() *geo.Atlas { return w.atlas }
func (w *World) Turn() int         { return w.turn }

// AdvanceTurn 返回新的回合号。
func (w *World) AdvanceTurn() int {
	w.turn++
	return w.turn
}

// SetTurn 读档用，小于 1 的值按 1 处理。
func (w *World) SetTurn(turn int) {
	w.turn = max(1, turn)
}

func (w *World) Country(code geo.CountryCode) (*Country, bool) {
	c, ok := w.countries[code]
	return c, ok
}

// Countries 按国家代码排序。
func (w *World) Countries() []*Country {
	out := make([]*Country, 0, len(w.countries))
	for _, c := range w.countries {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Country) int {
		return cmp.Compare(a.code, b.code)
	})
	return out
}

// DeclareWar attacker 对 defender 开战。方向取 defender 对 attacker 的邻接声明。
func (w *World) DeclareWar(attacker, defender geo.CountryCode) (*War, error) {
	atk, ok := w.countries[attacker]
	if !ok {
		return nil, ErrUnknownCountry.WithData("country", attacker)
	}
	def, ok := w.countries[defender]
	if !ok {
		return nil, ErrUnknownCountry.WithData("country", defender)
	}
	if attacker == defender {
		return nil, ErrSelfTarget.WithData("country", attacker)
	}
	dir, ok := w.atlas.NeighborDirection(defender, attacker)
	if !ok {
		return nil, ErrNotAdjacent.WithData("attacker", attacker).WithData("defender", defender)
	}
	if active := w.activeBetween(attacker, defender); active != nil {
		return nil, ErrAlreadyActive.WithData("war", active.id)
	}

	war := newWar(attacker, defender, dir, w.atlas.BorderCitiesForDirection(defender, dir), w.turn)
	// 同一回合议和后再开战
	for n := 2; w.wars[war.id] != nil; n++ {
		war.id = WarID(fmt.Sprintf("%s.%d", NewWarID(attacker, defender, w.turn), n))
	}
	w.wars[war.id] = war
	atk.startAttack(defender)
	def.startDefense(attacker)
	return war, nil
}

func (w *World) activeBetween(attacker, defender geo.CountryCode) *War {
	for _, war := range w.wars {
		if war.IsActive() && war.attacker == attacker && war.defender == defender {
			return war
		}
	}
	return nil
}

// NegotiatePeace 双方议和结束战争。
func (w *World) NegotiatePeace(id WarID) error {
	return w.Conclude(id, ReasonNegotiatedPeace)
}

// Conclude 结束战争并撤销双方的交战标记；已结束的战争重复调用无副作用。
func (w *World) Conclude(id WarID, reason string) error {
	war, ok := w.wars[id]
	if !ok {
		return ErrWarNotFound.WithData("war", id)
	}
	if !war.conclude(w.turn, reason) {
		return nil
	}
	w.countries[war.attacker].endAttack(war.defender)
	w.countries[war.defender].endDefense(war.attacker)
	return nil
}

// AssignTarget 把 attacker 的进攻编队派往 defender 面向 attacker 的战线。
func (w *World) AssignTarget(attacker geo.CountryCode, unit UnitID, defender geo.CountryCode) (string, error) {
	atk, ok := w.countries[attacker]
	if !ok {
		return "", ErrUnknownCountry.WithData("country", attacker)
	}
	if _, ok := w.countries[defender]; !ok {
		return "", ErrUnknownCountry.WithData("country", defender)
	}
	front := w.FrontID(attacker, defender)
	if err := atk.AssignTarget(unit, defender, front); err != nil {
		return "", err
	}
	return front, nil
}

// FrontID 战线标识：防守方 + 防守方面向进攻方的方向，例如 "UKR-EAST"。不相邻时只有防守方。
func (w *World) FrontID(attacker, defender geo.CountryCode) string {
	dir, ok := w.atlas.NeighborDirection(defender, attacker)
	if !ok {
		return string(defender)
	}
	return fmt.Sprintf("%s-%s", defender, dir)
}

func (w *World) War(id WarID) (*War, bool) {
	war, ok := w.wars[id]
	return war, ok
}

// ActiveWars 按 id 排序，保证结算顺序稳定。
func (w *World) ActiveWars() []*War {
	var out []*War
	for _, war := range w.wars {
		if war.IsActive() {
			out = append(out, war)
		}
	}
	sortWars(out)
	return out
}

// Wars 包括已结束的。
func (w *World) Wars() []*War {
	out := make([]*War, 0, len(w.wars))
	for _, war := range w.wars {
		out = append(out, war)
	}
	sortWars(out)
	return out
}

// AttackLines 所有正在进攻 defender 的攻击线，渲染端只读使用。
func (w *World) AttackLines(defender geo.CountryCode) ([]geo.AttackLine, error) {
	if _, ok := w.countries[defender]; !ok {
		return nil, ErrUnknownCountry.WithData("country", defender)
	}
	var lines []geo.AttackLine
	for _, war := range w.ActiveWars() {
		if war.defender != defender {
			continue
		}
		if line, ok := w.atlas.AttackLine(defender, war.attacker, war.fallen); ok {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func sortWars(wars []*War) {
	slices.SortFunc(wars, func(a, b *War) int {
		return cmp.Compare(a.id, b.id)
	})
}
