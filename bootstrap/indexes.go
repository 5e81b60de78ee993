package bootstrap

import (
	"context"
	"fmt"

	"igram/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Indexes lists every index the service relies on, per collection.
func Indexes() map[string][]mongo.IndexModel {
	newestFirst := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

	return map[string][]mongo.IndexModel{
		repository.ColUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_username"),
			},
		},
		// case variants of a name collide here as well as in the service check
		repository.ColConsumers: {
			{
				Keys: bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_name_ci").
					SetCollation(repository.FoldCollation),
			},
		},
		repository.ColPosts: {
			{
				Keys:    newestFirst,
				Options: options.Index().SetName("created_desc"),
			},
		},
		repository.ColComments: {
			{
				Keys: bson.D{
					{Key: "post", Value: 1},
					{Key: "created_at", Value: -1},
					{Key: "_id", Value: -1},
				},
				Options: options.Index().SetName("post_created_desc"),
			},
		},
	}
}

// EnsureIndexes creates any missing index. Existing ones are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for col, models := range Indexes() {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", col, err)
		}
	}
	return nil
}
