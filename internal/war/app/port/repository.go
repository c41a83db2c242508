package port

import (
	"context"

	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
)

const CodeReportNotFound errx.Code = "WAR_REPORT_NOT_FOUND"

var ErrReportNotFound = errx.NewBiz(CodeReportNotFound, "turn report not found")

// ReportRepository 回合报告的持久化。同一回合重复 Save 覆盖旧值。
type ReportRepository interface {
	Save(ctx context.Context, r *entity.TurnReport) error
	LoadTurn(ctx context.Context, turn int) (*entity.TurnReport, error)
}
