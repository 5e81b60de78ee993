package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Consumer is an anonymous display-name identity. It has no credentials.
type Consumer struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string        `bson:"name" json:"name"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}
