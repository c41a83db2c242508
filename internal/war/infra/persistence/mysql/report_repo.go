package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/internal/war/infra/persistence/model"
	"ArmsDealer/modules/kit/errx"
)

const (
	OpSaveReport = "repo.report.Save"
	OpLoadTurn   = "repo.report.LoadTurn"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) WithTx(tx *gorm.DB) *ReportRepository {
	return &ReportRepository{
		db: tx,
	}
}

// Migrate 建表，serve/run 启动时调用一次。
func (r *ReportRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.TurnRow{}, &model.BattleRow{}); err != nil {
		return errx.ErrUnavailable.WithData("op", "repo.report.Migrate").WithCause(err)
	}
	return nil
}

// Save 回合行 upsert，战斗行先删后插，整体在一个事务里。
func (r *ReportRepository) Save(ctx context.Context, rep *entity.TurnReport) error {
	if rep == nil {
		return nil
	}
	turn, battles := model.TurnReportToRows(rep)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "turn"}},
			DoUpdates: clause.AssignmentColumns([]string{"processed", "destroyed", "concluded", "created_at"}),
		}).Create(turn).Error
		if err != nil {
			return err
		}
		if err := tx.Where("turn = ?", rep.Turn).Delete(&model.BattleRow{}).Error; err != nil {
			return err
		}
		if len(battles) == 0 {
			return nil
		}
		return tx.Create(&battles).Error
	})
	if err != nil {
		return errx.ErrUnavailable.WithData("op", OpSaveReport).WithData("turn", rep.Turn).WithCause(err)
	}
	return nil
}

func (r *ReportRepository) LoadTurn(ctx context.Context, turn int) (*entity.TurnReport, error) {
	var row model.TurnRow
	err := r.db.WithContext(ctx).Where("turn = ?", turn).First(&row).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, port.ErrReportNotFound.WithData("turn", turn)
	default:
		return nil, errx.ErrUnavailable.WithData("op", OpLoadTurn).WithData("turn", turn).WithCause(err)
	}

	var battles []model.BattleRow
	if err := r.db.WithContext(ctx).Where("turn = ?", turn).Order("seq").Find(&battles).Error; err != nil {
		return nil, errx.ErrUnavailable.WithData("op", OpLoadTurn).WithData("turn", turn).WithCause(err)
	}
	return model.RowsToTurnReport(&row, battles), nil
}
