package repository

import (
	"context"
	"strings"

	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserRepository struct {
	ColUsers *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{ColUsers: db.Collection(ColUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	u.ID = bson.NewObjectID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.ColUsers.InsertOne(ctx, u)
	return mapErr(err)
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) FindOneByRole(ctx context.Context, role string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"role": role})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cur, err := r.ColUsers.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) DeleteByRole(ctx context.Context, role string) (int64, error) {
	res, err := r.ColUsers.DeleteMany(ctx, bson.M{"role": role})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.ColUsers.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
