package repository

import (
	"context"

	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// FoldCollation compares names ignoring case. The unique index on
// consumers.name is built with the same collation.
var FoldCollation = &options.Collation{Locale: "en", Strength: 2}

type ConsumerRepository struct {
	ColConsumers *mongo.Collection
}

func NewConsumerRepository(db *mongo.Database) *ConsumerRepository {
	return &ConsumerRepository{ColConsumers: db.Collection(ColConsumers)}
}

func (r *ConsumerRepository) Create(ctx context.Context, c *models.Consumer) error {
	c.ID = bson.NewObjectID()
	_, err := r.ColConsumers.InsertOne(ctx, c)
	return mapErr(err)
}

// FindByName matches the exact spelling; the collection keeps the default
// binary collation.
func (r *ConsumerRepository) FindByName(ctx context.Context, name string) (*models.Consumer, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *ConsumerRepository) FindByNameFold(ctx context.Context, name string) (*models.Consumer, error) {
	opts := options.FindOne().SetCollation(FoldCollation)
	return r.findOne(ctx, bson.M{"name": name}, opts)
}

func (r *ConsumerRepository) findOne(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOneOptions]) (*models.Consumer, error) {
	var c models.Consumer
	if err := r.ColConsumers.FindOne(ctx, filter, opts...).Decode(&c); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}
