package messages

import (
	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/entity"
)

// WarMessage 发往战争 actor 的请求。
type WarMessage interface {
	TraceID() string
}

type WarBaseMessage struct {
	TraceId string
}

func (w WarBaseMessage) TraceID() string {
	return w.TraceId
}

// AdvanceTurn 连续结算 Turns 个回合，<=0 按 1 处理。
type AdvanceTurn struct {
	WarBaseMessage
	Turns int
}

type AdvanceTurnReply struct {
	Turn    int
	Reports []*entity.TurnReport
}

type QueryWars struct {
	WarBaseMessage
	ActiveOnly bool
}

type WarsReply struct {
	Turn int
	Wars []entity.WarSnapshot
}

type QueryAttackLines struct {
	WarBaseMessage
	Country geo.CountryCode
}

type AttackLinesReply struct {
	Country geo.CountryCode
	Lines   []geo.AttackLine
}

type QueryBorders struct {
	WarBaseMessage
	Country   geo.CountryCode
	Direction geo.Direction
}

type BordersReply struct {
	Country   geo.CountryCode
	Direction geo.Direction
	Cities    []geo.BorderCity
}

type QueryReport struct {
	WarBaseMessage
	Turn int
}

type ReportReply struct {
	Report *entity.TurnReport
}

type DeclareWar struct {
	WarBaseMessage
	Attacker geo.CountryCode
	Defender geo.CountryCode
}

type NegotiatePeace struct {
	WarBaseMessage
	WarID entity.WarID
}

type WarReply struct {
	War entity.WarSnapshot
}

// AssignTarget 把 Attacker 的进攻编队派往 Defender。
type AssignTarget struct {
	WarBaseMessage
	Attacker geo.CountryCode
	Unit     entity.UnitID
	Defender geo.CountryCode
}

type AssignTargetReply struct {
	Unit     entity.UnitID
	Defender geo.CountryCode
	Front    string
}

// ApplyTuning 热更新结算参数，规则编译失败时保留旧参数。
type ApplyTuning struct {
	WarBaseMessage
	Sim simconfig.SimConfig
}

type TuningReply struct {
	Sim simconfig.SimConfig
}
