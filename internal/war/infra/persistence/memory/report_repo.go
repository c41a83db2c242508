package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
)

// ReportRepository 进程内报告仓库，单机跑模拟和测试用。存取都做拷贝。
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[int]*entity.TurnReport
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[int]*entity.TurnReport)}
}

func (r *ReportRepository) Save(ctx context.Context, rep *entity.TurnReport) error {
	_ = ctx
	if rep == nil {
		return nil
	}
	r.mu.Lock()
	r.reports[rep.Turn] = cloneReport(rep)
	r.mu.Unlock()
	return nil
}

func (r *ReportRepository) LoadTurn(ctx context.Context, turn int) (*entity.TurnReport, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[turn]
	if !ok {
		return nil, port.ErrReportNotFound.WithData("turn", turn)
	}
	return cloneReport(rep), nil
}

// Turns 已保存的回合，升序。
func (r *ReportRepository) Turns() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.reports))
	for t := range r.reports {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

func cloneReport(in *entity.TurnReport) *entity.TurnReport {
	out := *in
	out.Battles = slices.Clone(in.Battles)
	out.Destroyed = slices.Clone(in.Destroyed)
	out.Concluded = slices.Clone(in.Concluded)
	return &out
}
