package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateCommentReq struct {
	PostID       string `json:"postId"`
	Text         string `json:"text"`
	ConsumerName string `json:"consumerName,omitempty"`
}

type ConsumerNameReq struct {
	ConsumerName string `json:"consumerName"`
}

// AuthorView is the authenticated author joined into a comment.
type AuthorView struct {
	ID       bson.ObjectID `json:"_id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Role     string        `json:"role"`
}

type CommentView struct {
	ID           bson.ObjectID `json:"_id"`
	PostID       bson.ObjectID `json:"post"`
	User         *AuthorView   `json:"user,omitempty"`
	ConsumerName string        `json:"consumerName,omitempty"`
	Text         string        `json:"text"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// CommentPage is one page of a post's comments, newest first.
type CommentPage struct {
	Comments   []CommentView
	NextCursor *string
}
