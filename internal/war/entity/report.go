package entity

import (
	"time"

	"ArmsDealer/internal/shared/gameconfig/geo"
)

// BattleReport 一场战争在一个回合内的结算结果。
type BattleReport struct {
	WarID          WarID           `json:"war_id"`
	Attacker       geo.CountryCode `json:"attacker"`
	Defender       geo.CountryCode `json:"defender"`
	Direction      geo.Direction   `json:"direction"`
	FrontCity      geo.CityID      `json:"front_city,omitempty"`
	AttackPower    float64         `json:"attack_power"`
	DefensePower   float64         `json:"defense_power"`
	AttackerDamage float64         `json:"attacker_damage"`
	DefenderDamage float64         `json:"defender_damage"`
	AttackerUnits  int             `json:"attacker_units"`
	DefenderUnits  int             `json:"defender_units"`
	Outcome        Outcome         `json:"outcome"`
	Captured       geo.CityID      `json:"captured,omitempty"`
	Concluded      bool            `json:"concluded"`
	Reason         string          `json:"reason,omitempty"`
}

// TurnReport 一个回合的对外输出，由报告仓库持久化。
type TurnReport struct {
	Turn      int            `json:"turn"`
	Battles   []BattleReport `json:"battles"`
	Processed int            `json:"processed"`
	Destroyed []UnitID       `json:"destroyed"`
	Concluded []WarID        `json:"concluded"`
	CreatedAt time.Time      `json:"created_at"`
}
