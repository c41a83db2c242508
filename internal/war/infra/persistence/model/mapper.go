package model

import (
	"strings"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/war/entity"
)

func TurnReportToDoc(r *entity.TurnReport) TurnReportDoc {
	doc := TurnReportDoc{
		Turn:      r.Turn,
		Battles:   make([]BattleDoc, 0, len(r.Battles)),
		Processed: r.Processed,
		Destroyed: unitIDsToStrings(r.Destroyed),
		Concluded: warIDsToStrings(r.Concluded),
		CreatedAt: r.CreatedAt,
	}
	for _, b := range r.Battles {
		doc.Battles = append(doc.Battles, BattleDoc{
			WarID:          string(b.WarID),
			Attacker:       string(b.Attacker),
			Defender:       string(b.Defender),
			Direction:      b.Direction.String(),
			FrontCity:      string(b.FrontCity),
			AttackPower:    b.AttackPower,
			DefensePower:   b.DefensePower,
			AttackerDamage: b.AttackerDamage,
			DefenderDamage: b.DefenderDamage,
			AttackerUnits:  b.AttackerUnits,
			DefenderUnits:  b.DefenderUnits,
			Outcome:        string(b.Outcome),
			Captured:       string(b.Captured),
			Concluded:      b.Concluded,
			Reason:         b.Reason,
		})
	}
	return doc
}

func TurnReportDocToEntity(doc TurnReportDoc) *entity.TurnReport {
	r := &entity.TurnReport{
		Turn:      doc.Turn,
		Battles:   make([]entity.BattleReport, 0, len(doc.Battles)),
		Processed: doc.Processed,
		Destroyed: stringsToUnitIDs(doc.Destroyed),
		Concluded: stringsToWarIDs(doc.Concluded),
		CreatedAt: doc.CreatedAt,
	}
	for _, b := range doc.Battles {
		r.Battles = append(r.Battles, entity.BattleReport{
			WarID:          entity.WarID(b.WarID),
			Attacker:       geo.CountryCode(b.Attacker),
			Defender:       geo.CountryCode(b.Defender),
			Direction:      geo.Direction(b.Direction),
			FrontCity:      geo.CityID(b.FrontCity),
			AttackPower:    b.AttackPower,
			DefensePower:   b.DefensePower,
			AttackerDamage: b.AttackerDamage,
			DefenderDamage: b.DefenderDamage,
			AttackerUnits:  b.AttackerUnits,
			DefenderUnits:  b.DefenderUnits,
			Outcome:        entity.Outcome(b.Outcome),
			Captured:       geo.CityID(b.Captured),
			Concluded:      b.Concluded,
			Reason:         b.Reason,
		})
	}
	return r
}

// TurnReportToRows 拆成一行回合加若干行战斗，Seq 保留报告里的顺序。
func TurnReportToRows(r *entity.TurnReport) (*TurnRow, []BattleRow) {
	turn := &TurnRow{
		Turn:      r.Turn,
		Processed: r.Processed,
		Destroyed: strings.Join(unitIDsToStrings(r.Destroyed), ","),
		Concluded: strings.Join(warIDsToStrings(r.Concluded), ","),
		CreatedAt: r.CreatedAt,
	}
	battles := make([]BattleRow, 0, len(r.Battles))
	for i, b := range r.Battles {
		battles = append(battles, BattleRow{
			Turn:           r.Turn,
			Seq:            i,
			WarID:          string(b.WarID),
			Attacker:       string(b.Attacker),
			Defender:       string(b.Defender),
			Direction:      b.Direction.String(),
			FrontCity:      string(b.FrontCity),
			AttackPower:    b.AttackPower,
			DefensePower:   b.DefensePower,
			AttackerDamage: b.AttackerDamage,
			DefenderDamage: b.DefenderDamage,
			AttackerUnits:  b.AttackerUnits,
			DefenderUnits:  b.DefenderUnits,
			Outcome:        string(b.Outcome),
			Captured:       string(b.Captured),
			Concluded:      b.Concluded,
			Reason:         b.Reason,
		})
	}
	return turn, battles
}

// RowsToTurnReport battles 需已按 seq 排序。
func RowsToTurnReport(turn *TurnRow, battles []BattleRow) *entity.TurnReport {
	r := &entity.TurnReport{
		Turn:      turn.Turn,
		Battles:   make([]entity.BattleReport, 0, len(battles)),
		Processed: turn.Processed,
		Destroyed: stringsToUnitIDs(splitList(turn.Destroyed)),
		Concluded: stringsToWarIDs(splitList(turn.Concluded)),
		CreatedAt: turn.CreatedAt,
	}
	for _, b := range battles {
		r.Battles = append(r.Battles, entity.BattleReport{
			WarID:          entity.WarID(b.WarID),
			Attacker:       geo.CountryCode(b.Attacker),
			Defender:       geo.CountryCode(b.Defender),
			Direction:      geo.Direction(b.Direction),
			FrontCity:      geo.CityID(b.FrontCity),
			AttackPower:    b.AttackPower,
			DefensePower:   b.DefensePower,
			AttackerDamage: b.AttackerDamage,
			DefenderDamage: b.DefenderDamage,
			AttackerUnits:  b.AttackerUnits,
			DefenderUnits:  b.DefenderUnits,
			Outcome:        entity.Outcome(b.Outcome),
			Captured:       geo.CityID(b.Captured),
			Concluded:      b.Concluded,
			Reason:         b.Reason,
		})
	}
	return r
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func unitIDsToStrings(ids []entity.UnitID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

func warIDsToStrings(ids []entity.WarID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

func stringsToUnitIDs(in []string) []entity.UnitID {
	out := make([]entity.UnitID, 0, len(in))
	for _, s := range in {
		out = append(out, entity.UnitID(s))
	}
	return out
}

func stringsToWarIDs(in []string) []entity.WarID {
	out := make([]entity.WarID, 0, len(in))
	for _, s := range in {
		out = append(out, entity.WarID(s))
	}
	return out
}
