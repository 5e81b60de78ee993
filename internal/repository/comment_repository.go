package repository

import (
	"context"

	"igram/internal/common"
	"igram/internal/cursor"
	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CommentRepository struct {
	ColComments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{ColComments: db.Collection(ColComments)}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	c.ID = bson.NewObjectID()
	_, err := r.ColComments.InsertOne(ctx, c)
	return mapErr(err)
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := r.ColComments.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *CommentRepository) FindByPosts(ctx context.Context, postIDs []bson.ObjectID) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return []models.Comment{}, nil
	}
	return r.find(ctx, bson.M{"post": bson.M{"$in": postIDs}}, newestFirst())
}

// ListByPostNewestFirst pages a post's comments newest first. With limit <= 0
// every comment is returned and next is nil.
func (r *CommentRepository) ListByPostNewestFirst(
	ctx context.Context,
	postID bson.ObjectID,
	cursorStr string,
	limit int64,
) (items []models.Comment, next *string, err error) {
	filter, err := commentPageFilter(postID, cursorStr)
	if err != nil {
		return nil, nil, err
	}

	opts := newestFirst()
	if limit > 0 {
		opts.SetLimit(limit + 1)
	}

	all, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, nil, err
	}

	if limit > 0 && int64(len(all)) > limit {
		items = all[:limit]
		last := items[len(items)-1]
		s := cursor.EncodeCommentCursor(last.CreatedAt, last.ID)
		return items, &s, nil
	}
	return all, nil, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.ColComments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	res, err := r.ColComments.DeleteMany(ctx, bson.M{"post": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *CommentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]models.Comment, error) {
	cur, err := r.ColComments.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func newestFirst() *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

// commentPageFilter selects the post's comments strictly older than the
// cursor position, ties on created_at broken by _id.
func commentPageFilter(postID bson.ObjectID, cursorStr string) (bson.M, error) {
	filter := bson.M{"post": postID}
	if cursorStr == "" {
		return filter, nil
	}
	t, oid, err := cursor.DecodeCommentCursor(cursorStr)
	if err != nil {
		return nil, err
	}
	filter["$or"] = []bson.M{
		{"created_at": bson.M{"$lt": t}},
		{"created_at": t, "_id": bson.M{"$lt": oid}},
	}
	return filter, nil
}
