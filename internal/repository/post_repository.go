package repository

import (
	"context"

	"igram/internal/common"
	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PostRepository struct {
	ColPosts *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{ColPosts: db.Collection(ColPosts)}
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	p.ID = bson.NewObjectID()
	_, err := r.ColPosts.InsertOne(ctx, p)
	return mapErr(err)
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.ColPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *PostRepository) FindAllNewestFirst(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.ColPosts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.ColPosts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostRepository) PushComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	res, err := r.ColPosts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": commentID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostRepository) PullComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	res, err := r.ColPosts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"comments": commentID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ToggleUserLike removes userID from likes when present and appends it
// otherwise, in one server-side update.
func (r *PostRepository) ToggleUserLike(ctx context.Context, postID, userID bson.ObjectID) (*models.Post, error) {
	return r.toggle(ctx, postID, userLikeToggle(userID))
}

// ToggleConsumerLike is ToggleUserLike keyed by consumer name.
func (r *PostRepository) ToggleConsumerLike(ctx context.Context, postID bson.ObjectID, name string) (*models.Post, error) {
	return r.toggle(ctx, postID, consumerLikeToggle(name))
}

func userLikeToggle(userID bson.ObjectID) mongo.Pipeline {
	likes := ifEmpty("$likes")
	return mongo.Pipeline{
		doc("$set", doc("likes", doc("$cond", bson.A{
			doc("$in", bson.A{userID, likes}),
			doc("$filter", bson.D{
				{Key: "input", Value: likes},
				{Key: "cond", Value: doc("$ne", bson.A{"$$this", userID})},
			}),
			doc("$concatArrays", bson.A{likes, bson.A{userID}}),
		}))),
	}
}

// consumerLikeToggle matches names exactly. The name is wrapped in $literal
// so a leading "$" is never read as a field path.
func consumerLikeToggle(name string) mongo.Pipeline {
	likes := ifEmpty("$consumer_likes")
	lit := doc("$literal", name)
	return mongo.Pipeline{
		doc("$set", doc("consumer_likes", doc("$cond", bson.A{
			doc("$in", bson.A{lit, ifEmpty("$consumer_likes.consumer_name")}),
			doc("$filter", bson.D{
				{Key: "input", Value: likes},
				{Key: "cond", Value: doc("$ne", bson.A{"$$this.consumer_name", lit})},
			}),
			doc("$concatArrays", bson.A{likes, bson.A{doc("consumer_name", lit)}}),
		}))),
	}
}

func (r *PostRepository) toggle(ctx context.Context, postID bson.ObjectID, update mongo.Pipeline) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	if err := r.ColPosts.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func doc(key string, value any) bson.D {
	return bson.D{{Key: key, Value: value}}
}

func ifEmpty(path string) bson.D {
	return doc("$ifNull", bson.A{path, bson.A{}})
}
