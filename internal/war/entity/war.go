package entity

import (
	"fmt"
	"slices"

	"ArmsDealer/internal/shared/gameconfig/geo"
)

type WarID string

func NewWarID(attacker, defender geo.CountryCode, turn int) WarID {
	return WarID(fmt.Sprintf("%s-%s-%d", attacker, defender, turn))
}

// WarState ACTIVE -> CONCLUDED，只能单向。
type WarState string

const (
	WarActive    WarState = "ACTIVE"
	WarConcluded WarState = "CONCLUDED"
)

const (
	ReasonFrontierCollapse  = "frontier_collapse"
	ReasonAttackerExhausted = "attacker_exhausted"
	ReasonNegotiatedPeace   = "negotiated_peace"
)

// Outcome 单回合战斗结果。
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeAdvance   Outcome = "advance"
	OutcomeRepulse   Outcome = "repulse"
	OutcomeStalemate Outcome = "stalemate"
)

// War 一组进攻方/防守方。front 是防守方面向进攻方那一侧的有序边境城市。
type War struct {
	id            WarID
	attacker      geo.CountryCode
	defender      geo.CountryCode
	direction     geo.Direction
	front         []geo.BorderCity
	fallen        map[geo.CityID]bool
	fallenOrder   []geo.CityID
	state         WarState
	reason        string
	startedTurn   int
	concludedTurn int
	stalemates    int
	lastOutcome   Outcome
	engaged       bool
}

func newWar(attacker, defender geo.CountryCode, dir geo.Direction, front []geo.BorderCity, turn int) *War {
	return &War{
		id:          NewWarID(attacker, defender, turn),
		attacker:    attacker,
		defender:    defender,
		direction:   dir,
		front:       front,
		fallen:      make(map[geo.CityID]bool),
		state:       WarActive,
		startedTurn: turn,
	}
}

func (w *War) ID() WarID                 { return w.id }
func (w *War) Attacker() geo.CountryCode { return w.attacker }
func (w *War) Defender() geo.CountryCode { return w.defender }
func (w *War) Direction() geo.Direction  { return w.direction }
func (w *War) State() WarState           { return w.state }
func (w *War) Reason() string            { return w.reason }
func (w *War) StartedTurn() int          { return w.startedTurn }
func (w *War) ConcludedTurn() int        { return w.concludedTurn }
func (w *War) Stalemates() int           { return w.stalemates }
func (w *War) LastOutcome() Outcome      { return w.lastOutcome }
func (w *War) IsActive() bool            { return w.state == WarActive }

// Engaged 至少打过一回合，进攻方编队耗尽才算 attacker_exhausted。
func (w *War) Engaged() bool { return w.engaged }

// Engage 有进攻编队参战的回合调用。
func (w *War) Engage() { w.engaged = true }

// Front 全部边境城市，含已陷落的。
func (w *War) Front() []geo.BorderCity {
	return slices.Clone(w.front)
}

// FrontCity 第一座未陷落的边境城市。front 为空或全部陷落时返回 false。
func (w *War) FrontCity() (geo.BorderCity, bool) {
	for _, bc := range w.front {
		if !w.fallen[bc.CityID] {
			return bc, true
		}
	}
	return geo.BorderCity{}, false
}

// NextFrontCity 当前前线之后的下一座城市，用于守军撤退。
func (w *War) NextFrontCity() (geo.BorderCity, bool) {
	skipped := false
	for _, bc := range w.front {
		if w.fallen[bc.CityID] {
			continue
		}
		if !skipped {
			skipped = true
			continue
		}
		return bc, true
	}
	return geo.BorderCity{}, false
}

func (w *War) FallenCities() []geo.CityID {
	return slices.Clone(w.fallenOrder)
}

// Fallen 供 geo.Atlas.AttackLine 使用，返回副本。
func (w *War) Fallen() map[geo.CityID]bool {
	out := make(map[geo.CityID]bool, len(w.fallen))
	for k, v := range w.fallen {
		out[k] = v
	}
	return out
}

// FallenRatio 没有边境城市时为 0。
func (w *War) FallenRatio() float64 {
	if len(w.front) == 0 {
		return 0
	}
	return float64(len(w.fallenOrder)) / float64(len(w.front))
}

// FrontierCollapsed 至少有一座边境城市并且全部陷落。
func (w *War) FrontierCollapsed() bool {
	return len(w.front) > 0 && len(w.fallenOrder) == len(w.front)
}

// Capture 不在 front 中或已陷落时忽略。
func (w *War) Capture(city geo.CityID) bool {
	if w.fallen[city] || !slices.ContainsFunc(w.front, func(bc geo.BorderCity) bool { return bc.CityID == city }) {
		return false
	}
	w.fallen[city] = true
	w.fallenOrder = append(w.fallenOrder, city)
	return true
}

// Record 记录本回合结果；僵持累加，其余清零。
func (w *War) Record(o Outcome) {
	w.lastOutcome = o
	if o == OutcomeStalemate {
		w.stalemates++
		return
	}
	w.stalemates = 0
}

func (w *War) conclude(turn int, reason string) bool {
	if w.state != WarActive {
		return false
	}
	w.state = WarConcluded
	w.reason = reason
	w.concludedTurn = turn
	return true
}

// WarSnapshot 只读视图，给渲染端和报告用。
type WarSnapshot struct {
	ID            WarID           `json:"id"`
	Attacker      geo.CountryCode `json:"attacker"`
	Defender      geo.CountryCode `json:"defender"`
	Direction     geo.Direction   `json:"direction"`
	State         WarState        `json:"state"`
	Reason        string          `json:"reason,omitempty"`
	Front         []geo.CityID    `json:"front"`
	Fallen        []geo.CityID    `json:"fallen"`
	FrontCity     geo.CityID      `json:"front_city,omitempty"`
	StartedTurn   int             `json:"started_turn"`
	ConcludedTurn int             `json:"concluded_turn,omitempty"`
	Stalemates    int             `json:"stalemates"`
	LastOutcome   Outcome         `json:"last_outcome,omitempty"`
	Engaged       bool            `json:"engaged"`
}

func (w *War) Snapshot() WarSnapshot {
	s := WarSnapshot{
		ID:            w.id,
		Attacker:      w.attacker,
		Defender:      w.defender,
		Direction:     w.direction,
		State:         w.state,
		Reason:        w.reason,
		Front:         make([]geo.CityID, 0, len(w.front)),
		Fallen:        append([]geo.CityID{}, w.fallenOrder...),
		StartedTurn:   w.startedTurn,
		ConcludedTurn: w.concludedTurn,
		Stalemates:    w.stalemates,
		LastOutcome:   w.lastOutcome,
		Engaged:       w.engaged,
	}
	for _, bc := range w.front {
		s.Front = append(s.Front, bc.CityID)
	}
	if bc, ok := w.FrontCity(); ok {
		s.FrontCity = bc.CityID
	}
	return s
}
