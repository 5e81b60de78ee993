package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is authored by exactly one of UserID or ConsumerName.
type Comment struct {
	ID           bson.ObjectID  `bson:"_id,omitempty"`
	PostID       bson.ObjectID  `bson:"post"`
	UserID       *bson.ObjectID `bson:"user,omitempty"`
	ConsumerName string         `bson:"consumer_name,omitempty"`
	Text         string         `bson:"text"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
}

func (c *Comment) ByConsumer() bool { return c.UserID == nil && c.ConsumerName != "" }
