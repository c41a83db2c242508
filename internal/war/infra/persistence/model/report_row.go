package model

import (
	"time"
)

type TurnRow struct {
	Turn      int       `gorm:"column:turn;type:int UNSIGNED;comment:回合;primaryKey;not null;" json:"turn"`
	Processed int       `gorm:"column:processed;type:int UNSIGNED;comment:结算的战争数;not null;default:0;" json:"processed"`
	Destroyed string    `gorm:"column:destroyed;type:text;comment:本回合被歼灭的单位,逗号分隔;" json:"destroyed"`
	Concluded string    `gorm:"column:concluded;type:text;comment:本回合结束的战争,逗号分隔;" json:"concluded"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
}

func (m *TurnRow) TableName() string {
	return "war_turn_report"
}

type BattleRow struct {
	Id             int     `gorm:"column:id;type:int UNSIGNED;primaryKey;autoIncrement;not null;" json:"id"`
	Turn           int     `gorm:"column:turn;type:int UNSIGNED;comment:回合;index:idx_turn;not null;" json:"turn"`
	Seq            int     `gorm:"column:seq;type:int UNSIGNED;comment:回合内顺序;not null;" json:"seq"`
	WarID          string  `gorm:"column:war_id;type:varchar(64);comment:战争id;not null;" json:"war_id"`
	Attacker       string  `gorm:"column:attacker;type:varchar(8);not null;" json:"attacker"`
	Defender       string  `gorm:"column:defender;type:varchar(8);not null;" json:"defender"`
	Direction      string  `gorm:"column:direction;type:varchar(8);comment:进攻方向;not null;" json:"direction"`
	FrontCity      string  `gorm:"column:front_city;type:varchar(64);comment:前线城市;" json:"front_city"`
	AttackPower    float64 `gorm:"column:attack_power;type:double;not null;default:0;" json:"attack_power"`
	DefensePower   float64 `gorm:"column:defense_power;type:double;not null;default:0;" json:"defense_power"`
	AttackerDamage float64 `gorm:"column:attacker_damage;type:double;not null;default:0;" json:"attacker_damage"`
	DefenderDamage float64 `gorm:"column:defender_damage;type:double;not null;default:0;" json:"defender_damage"`
	AttackerUnits  int     `gorm:"column:attacker_units;type:int UNSIGNED;not null;default:0;" json:"attacker_units"`
	DefenderUnits  int     `gorm:"column:defender_units;type:int UNSIGNED;not null;default:0;" json:"defender_units"`
	Outcome        string  `gorm:"column:outcome;type:varchar(16);comment:战果;not null;" json:"outcome"`
	Captured       string  `gorm:"column:captured;type:varchar(64);comment:攻陷的城市;" json:"captured"`
	Concluded      bool    `gorm:"column:concluded;type:tinyint(1);comment:是否结束;not null;default:0;" json:"concluded"`
	Reason         string  `gorm:"column:reason;type:varchar(64);comment:结束原因;" json:"reason"`
}

func (m *BattleRow) TableName() string {
	return "war_battle_report"
}
