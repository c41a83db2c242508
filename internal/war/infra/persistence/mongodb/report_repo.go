package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/internal/war/infra/persistence/model"
	"ArmsDealer/modules/kit/errx"
)

const defaultCollectionName = "turn_reports"

type ReportRepository struct {
	coll *mongo.Collection
}

// NewReportRepository collection 为空时用 turn_reports。
func NewReportRepository(db *mongo.Database, collection string) *ReportRepository {
	if collection == "" {
		collection = defaultCollectionName
	}
	return &ReportRepository{
		coll: db.Collection(collection),
	}
}

func (r *ReportRepository) Save(ctx context.Context, rep *entity.TurnReport) error {
	if rep == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithData("store", "mongodb").WithData("reason", "collection is nil")
	}

	doc := model.TurnReportToDoc(rep)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.Turn},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrUnavailable.WithData("store", "mongodb").WithData("turn", rep.Turn).WithCause(err)
	}
	return nil
}

func (r *ReportRepository) LoadTurn(ctx context.Context, turn int) (*entity.TurnReport, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithData("store", "mongodb").WithData("reason", "collection is nil")
	}

	var doc model.TurnReportDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": turn}).Decode(&doc)
	switch {
	case err == nil:
		return model.TurnReportDocToEntity(doc), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, port.ErrReportNotFound.WithData("turn", turn)
	default:
		return nil, errx.ErrUnavailable.WithData("store", "mongodb").WithData("turn", turn).WithCause(err)
	}
}
