package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MediaNone  = ""
	MediaImage = "image"
	MediaVideo = "video"
)

type Post struct {
	ID            bson.ObjectID   `bson:"_id,omitempty"`
	CreatorID     bson.ObjectID   `bson:"creator"`
	ImageURL      string          `bson:"image_url"`
	ThumbnailURL  string          `bson:"thumbnail_url,omitempty"`
	MediaType     string          `bson:"media_type"`
	Title         string          `bson:"title"`
	Caption       string          `bson:"caption"`
	Location      string          `bson:"location"`
	People        []string        `bson:"people"`
	Likes         []bson.ObjectID `bson:"likes"`
	ConsumerLikes []ConsumerLike  `bson:"consumer_likes"`
	Comments      []bson.ObjectID `bson:"comments"`
	CreatedAt     time.Time       `bson:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at"`
}

type ConsumerLike struct {
	ConsumerName string `bson:"consumer_name" json:"consumerName"`
}

// LikesCount is the total over authenticated and anonymous likes.
func (p *Post) LikesCount() int {
	return len(p.Likes) + len(p.ConsumerLikes)
}

func (p *Post) LikedBy(userID bson.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

func (p *Post) LikedByConsumer(name string) bool {
	for _, l := range p.ConsumerLikes {
		if l.ConsumerName == name {
			return true
		}
	}
	return false
}
