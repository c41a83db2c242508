package service

import (
	"context"
	"time"

	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/logx"
	"ArmsDealer/modules/kit/tracex"
)

// ReportSink 回合报告的下游，dc.ReportDC 实现它。
type ReportSink interface {
	Publish(ctx context.Context, r *entity.TurnReport) error
}

// Orchestrator 每个全局回合调用一次 ProcessTurn。不是并发安全的，由 WarActor 串行调用。
type Orchestrator struct {
	world  *entity.World
	tuning simconfig.SimConfig
	rules  []conclusionRule
	sink   ReportSink
	log    logx.Logger
	now    func() time.Time
}

// NewOrchestrator sink 可以为 nil（只计算不落库）。
func NewOrchestrator(world *entity.World, tuning simconfig.SimConfig, sink ReportSink, log logx.Logger) (*Orchestrator, error) {
	if log == nil {
		log = logx.Nop()
	}
	o := &Orchestrator{world: world, sink: sink, log: log, now: time.Now}
	if err := o.ApplyTuning(tuning); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) World() *entity.World { return o.world }

func (o *Orchestrator) Tuning() simconfig.SimConfig { return o.tuning }

// ApplyTuning 热更新结算参数；规则编译失败时保留旧参数。
func (o *Orchestrator) ApplyTuning(tuning simconfig.SimConfig) error {
	rules, err := compileRules(tuning.Rules)
	if err != nil {
		return err
	}
	o.tuning = tuning
	o.rules = rules
	return nil
}

// ProcessTurn 推进一个回合：
//  1. 只读规划所有战争的战斗
//  2. 提交伤害、占领和胜败
//  3. 每个参战编队执行一次回合更新
//  4. 清理被消灭的编队
//  5. 判定战争结束
//  6. 输出回合报告，回合号 +1
//
// 报告下发失败时世界状态已经推进，错误原样返回。
func (o *Orchestrator) ProcessTurn(ctx context.Context) (*entity.TurnReport, error) {
	turn := o.world.Turn()
	ctx = tracex.WithTurn(ctx, turn)

	wars := o.world.ActiveWars()
	plans := make([]*battlePlan, 0, len(wars))
	for _, war := range wars {
		plans = append(plans, planBattle(o.world, war, o.tuning))
	}

	for _, p := range plans {
		p.apply(o.tuning)
	}

	processed := o.upkeep(plans)

	var destroyed []entity.UnitID
	for _, c := range o.world.Countries() {
		destroyed = append(destroyed, c.RemoveDestroyed()...)
	}

	var concluded []entity.WarID
	for _, p := range plans {
		wctx := tracex.WithWarID(ctx, string(p.war.ID()))
		reason := o.conclusionReason(wctx, p.war)
		if reason == "" {
			continue
		}
		if err := o.world.Conclude(p.war.ID(), reason); err != nil {
			logx.ReportSysErrorWithLoggerContext(wctx, o.log, logx.NewSysLog("conclude_war", err))
			continue
		}
		p.report.Concluded = true
		p.report.Reason = reason
		concluded = append(concluded, p.war.ID())
		o.log.WithContext(wctx).Info("war concluded", zap.String("reason", reason))
	}

	report := &entity.TurnReport{
		Turn:      turn,
		Battles:   make([]entity.BattleReport, 0, len(plans)),
		Processed: processed,
		Destroyed: destroyed,
		Concluded: concluded,
		CreatedAt: o.now(),
	}
	for _, p := range plans {
		report.Battles = append(report.Battles, p.report)
	}
	o.world.AdvanceTurn()

	logx.ReportTurnWithLoggerContext(ctx, o.log, logx.TurnLog{
		Turn:      turn,
		Battles:   len(report.Battles),
		Concluded: len(concluded),
		Destroyed: len(destroyed),
	})

	if o.sink != nil {
		if err := o.sink.Publish(ctx, report); err != nil {
			logx.ReportSysErrorWithLoggerContext(ctx, o.log, logx.NewSysLog("publish_turn_report", err))
			return report, err
		}
	}
	return report, nil
}

// upkeep 防守方全部驻防 + 进攻方参战编队，各更新一次。
func (o *Orchestrator) upkeep(plans []*battlePlan) int {
	seen := make(map[entity.UnitID]bool)
	run := func(f entity.Formation) {
		id := f.Base().ID()
		if seen[id] || f.Base().Destroyed() {
			return
		}
		seen[id] = true
		f.ProcessTurn()
	}
	for _, p := range plans {
		def, _ := o.world.Country(p.war.Defender())
		for _, u := range def.Regulars() {
			run(u)
		}
		for _, u := range p.attackers {
			run(u)
		}
	}
	return len(seen)
}

func (o *Orchestrator) conclusionReason(ctx context.Context, war *entity.War) string {
	if reason := builtinReason(o.world, war); reason != "" {
		return reason
	}
	if len(o.rules) == 0 {
		return ""
	}
	env := buildEnv(o.world, war)
	for _, r := range o.rules {
		matched, err := runRule(r.program, env)
		if err != nil {
			logx.ReportSysErrorWithLoggerContext(ctx, o.log, logx.NewSysLog("conclusion_rule", err), zap.String("rule", r.name))
			continue
		}
		if matched {
			return r.name
		}
	}
	return ""
}

func runRule(program *vm.Program, env WarEnv) (bool, error) {
	out, err := vm.Run(program, env)
	if err != nil {
		return false, err
	}
	matched, _ := out.(bool)
	return matched, nil
}
