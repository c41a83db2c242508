package model

import (
	"time"
)

// TurnReportDoc mongodb 里一个回合一份文档，_id 即回合数。
type TurnReportDoc struct {
	Turn      int         `bson:"_id"`
	Battles   []BattleDoc `bson:"battles"`
	Processed int         `bson:"processed"`
	Destroyed []string    `bson:"destroyed"`
	Concluded []string    `bson:"concluded"`
	CreatedAt time.Time   `bson:"created_at"`
}

type BattleDoc struct {
	WarID          string  `bson:"war_id"`
	Attacker       string  `bson:"attacker"`
	Defender       string  `bson:"defender"`
	Direction      string  `bson:"direction"`
	FrontCity      string  `bson:"front_city,omitempty"`
	AttackPower    float64 `bson:"attack_power"`
	DefensePower   float64 `bson:"defense_power"`
	AttackerDamage float64 `bson:"attacker_damage"`
	DefenderDamage float64 `bson:"defender_damage"`
	AttackerUnits  int     `bson:"attacker_units"`
	DefenderUnits  int     `bson:"defender_units"`
	Outcome        string  `bson:"outcome"`
	Captured       string  `bson:"captured,omitempty"`
	Concluded      bool    `bson:"concluded"`
	Reason         string  `bson:"reason,omitempty"`
}
