package main

import (
	"context"

	"go.uber.org/zap"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/infrastructure/db"
	sharedmongo "ArmsDealer/internal/shared/infrastructure/mongo"
	"ArmsDealer/internal/shared/logs"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/internal/shared/utils"
	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/internal/war/infra/persistence/memory"
	warmongo "ArmsDealer/internal/war/infra/persistence/mongodb"
	warmysql "ArmsDealer/internal/war/infra/persistence/mysql"
	"ArmsDealer/internal/war/service"
	"ArmsDealer/modules/kit/errx"
	"ArmsDealer/modules/kit/logx"
)

// app 一次命令执行共用的依赖。
type app struct {
	cfg   simconfig.Config
	log   logx.Logger
	atlas *geo.Atlas
}

func bootstrap(appName string, opts *rootOptions) (*app, error) {
	cfg, err := simconfig.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	zl, err := logs.Init(appName, cfg.Log)
	if err != nil {
		return nil, err
	}
	logs.Info("conf", zap.Any("sim", cfg.Sim), zap.String("storage", cfg.Storage.Driver))

	atlas, err := loadAtlas(cfg.Geo)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:   cfg,
		log:   logx.NewZapLogger(zl),
		atlas: atlas,
	}, nil
}

func loadAtlas(cfg simconfig.GeoConfig) (*geo.Atlas, error) {
	if cfg.AtlasPath == "" && cfg.AttackDistance <= 0 && cfg.FrontierTolerance <= 0 {
		return geo.Default()
	}
	return geo.Load(geo.Options{
		Path:              cfg.AtlasPath,
		AttackDistance:    cfg.AttackDistance,
		FrontierTolerance: cfg.FrontierTolerance,
	})
}

// buildWorld 新建世界并套用剧本，scenarioPath 为空时得到没有战争的空世界。
func (a *app) buildWorld(scenarioPath string) (*entity.World, error) {
	world := entity.NewWorld(a.atlas)
	if scenarioPath == "" {
		return world, nil
	}
	sc, err := service.LoadScenario(scenarioPath)
	if err != nil {
		return nil, err
	}
	ids, err := utils.NewSnowflake(int64(a.cfg.Logic.ServerID))
	if err != nil {
		return nil, err
	}
	if err := sc.Apply(world, ids); err != nil {
		return nil, err
	}
	logs.Info("scenario applied",
		zap.String("name", sc.Name),
		zap.Int("turn", world.Turn()),
		zap.Int("wars", len(world.ActiveWars())),
	)
	return world, nil
}

// openRepository 按 storage.driver 选仓库，返回的 closer 负责断开连接。
func (a *app) openRepository(ctx context.Context) (port.ReportRepository, func(), error) {
	noop := func() {}
	switch a.cfg.Storage.Driver {
	case "", simconfig.DriverMemory:
		return memory.NewReportRepository(), noop, nil
	case simconfig.DriverMongoDB:
		client, err := sharedmongo.Open(a.cfg.Storage.MongoDB, logs.Logger())
		if err != nil {
			return nil, noop, err
		}
		repo := warmongo.NewReportRepository(client.Database(a.cfg.Storage.MongoDB.Database), a.cfg.Storage.MongoDB.Collection)
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	case simconfig.DriverMySQL:
		gdb, err := db.Open(a.cfg.Storage.MySQL)
		if err != nil {
			return nil, noop, err
		}
		closer := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		repo := warmysql.NewReportRepository(gdb)
		if err := migrateOrClose(ctx, repo, closer); err != nil {
			return nil, noop, err
		}
		return repo, closer, nil
	default:
		return nil, noop, errx.ErrInvalidConfig.WithData("field", "storage.driver").WithData("value", a.cfg.Storage.Driver)
	}
}

type migrator interface {
	Migrate(ctx context.Context) error
}

// migrateOrClose 建表失败时先断开连接再返回错误。
func migrateOrClose(ctx context.Context, m migrator, closer func()) error {
	if err := m.Migrate(ctx); err != nil {
		closer()
		return err
	}
	return nil
}
