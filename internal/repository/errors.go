package repository

import (
	"errors"

	"igram/internal/common"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	ColUsers     = "users"
	ColConsumers = "consumers"
	ColPosts     = "posts"
	ColComments  = "comments"
)

func isDuplicate(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return true
	}
	return mongo.IsDuplicateKeyError(err)
}

// mapErr folds driver errors into the common kinds.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrNotFound
	case isDuplicate(err):
		return common.ErrConflict
	default:
		return err
	}
}
