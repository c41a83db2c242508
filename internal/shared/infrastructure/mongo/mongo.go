package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/modules/kit/errx"
)

const defaultConnTimeout = 3 * time.Second

// Open 建立连接并 ping 一次，失败时断开。
func Open(cfg simconfig.MongoDBConfig, l *zap.Logger) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errx.ErrInvalidConfig.WithData("field", "storage.mongodb.uri")
	}
	if l == nil {
		l = zap.NewNop()
	}
	timeout := cfg.ConnTimeout
	if timeout <= 0 {
		timeout = defaultConnTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errx.ErrUnavailable.WithData("store", "mongodb").WithCause(err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errx.ErrUnavailable.WithData("store", "mongodb").WithCause(err)
	}

	l.Info("open mongodb success",
		zap.String("database", cfg.Database),
		zap.Duration("timeout", timeout),
	)
	return client, nil
}
