package services

import (
	"context"

	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// The store interfaces are satisfied by the MongoDB repositories and by the
// in-memory memstore. Lookups that miss return common.ErrNotFound; unique key
// violations return common.ErrConflict.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindOneByRole(ctx context.Context, role string) (*models.User, error)
	DeleteByRole(ctx context.Context, role string) (int64, error)
}

type ConsumerStore interface {
	Create(ctx context.Context, c *models.Consumer) error
	// FindByName matches exactly (case-sensitive).
	FindByName(ctx context.Context, name string) (*models.Consumer, error)
	// FindByNameFold matches ignoring case.
	FindByNameFold(ctx context.Context, name string) (*models.Consumer, error)
}

type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	FindAllNewestFirst(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	PushComment(ctx context.Context, postID, commentID bson.ObjectID) error
	PullComment(ctx context.Context, postID, commentID bson.ObjectID) error
	// ToggleUserLike and ToggleConsumerLike flip membership atomically and
	// return the post as it is after the update.
	ToggleUserLike(ctx context.Context, postID, userID bson.ObjectID) (*models.Post, error)
	ToggleConsumerLike(ctx context.Context, postID bson.ObjectID, name string) (*models.Post, error)
}

type CommentStore interface {
	Create(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
	FindByPosts(ctx context.Context, postIDs []bson.ObjectID) ([]models.Comment, error)
	ListByPostNewestFirst(ctx context.Context, postID bson.ObjectID, cursor string, limit int64) ([]models.Comment, *string, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
}

type TokenIssuer interface {
	Issue(uid, role string) (string, error)
}
