package dto

import (
	"time"

	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CreatorView is the creator identity joined into a post.
type CreatorView struct {
	ID       bson.ObjectID `json:"_id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
}

type PostView struct {
	ID            bson.ObjectID         `json:"_id"`
	Creator       *CreatorView          `json:"creator"`
	ImageURL      string                `json:"imageUrl"`
	ThumbnailURL  string                `json:"thumbnailUrl,omitempty"`
	MediaType     string                `json:"mediaType"`
	Title         string                `json:"title"`
	Caption       string                `json:"caption"`
	Location      string                `json:"location"`
	People        []string              `json:"people"`
	Likes         []bson.ObjectID       `json:"likes"`
	ConsumerLikes []models.ConsumerLike `json:"consumerLikes"`
	LikesCount    int                   `json:"likesCount"`
	Comments      []CommentView         `json:"comments"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// CreatePostReq is the JSON form of a text-only post. Media uploads use
// multipart/form-data with the same field names plus an "image" file.
type CreatePostReq struct {
	Title    string `json:"title" form:"title"`
	Caption  string `json:"caption" form:"caption"`
	Location string `json:"location" form:"location"`
	People   string `json:"people" form:"people"`
}
