package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// commentCursor points just past the last comment of a page (createdAt + _id).
type commentCursor struct {
	CreatedAt int64  `json:"createdAt"`
	ID        string `json:"id"`
}

func EncodeCommentCursor(t time.Time, id bson.ObjectID) string {
	b, _ := json.Marshal(commentCursor{
		CreatedAt: t.UnixMilli(),
		ID:        id.Hex(),
	})
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeCommentCursor(s string) (time.Time, bson.ObjectID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return time.Time{}, bson.NilObjectID, ErrInvalidCursor
	}

	var p commentCursor
	if err := json.Unmarshal(raw, &p); err != nil {
		return time.Time{}, bson.NilObjectID, ErrInvalidCursor
	}

	oid, err := bson.ObjectIDFromHex(p.ID)
	if err != nil {
		return time.Time{}, bson.NilObjectID, ErrInvalidCursor
	}

	return time.UnixMilli(p.CreatedAt).UTC(), oid, nil
}
