package services

import (
	"errors"
	"strings"

	"igram/dto"
	"igram/internal/common"
	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// parseID treats a malformed id like an unknown one.
func parseID(hex, notFoundMsg string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return bson.NilObjectID, common.NotFound(notFoundMsg)
	}
	return id, nil
}

// withMessage replaces a bare store ErrNotFound with a client-facing one.
func withMessage(err error, notFoundMsg string) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NotFound(notFoundMsg)
	}
	return err
}

func ToUserView(u *models.User) dto.UserView {
	return dto.UserView{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
	}
}

type userIndex map[bson.ObjectID]*models.User

func indexUsers(users []models.User) userIndex {
	idx := make(userIndex, len(users))
	for i := range users {
		idx[users[i].ID] = &users[i]
	}
	return idx
}

func (idx userIndex) creator(id bson.ObjectID) *dto.CreatorView {
	u, ok := idx[id]
	if !ok {
		return nil
	}
	return &dto.CreatorView{ID: u.ID, Username: u.Username, Name: u.Name}
}

func (idx userIndex) author(id *bson.ObjectID) *dto.AuthorView {
	if id == nil {
		return nil
	}
	u, ok := idx[*id]
	if !ok {
		return nil
	}
	return &dto.AuthorView{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
}

func (idx userIndex) comment(c models.Comment) dto.CommentView {
	return dto.CommentView{
		ID:           c.ID,
		PostID:       c.PostID,
		User:         idx.author(c.UserID),
		ConsumerName: c.ConsumerName,
		Text:         c.Text,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (idx userIndex) post(p models.Post, comments []dto.CommentView) dto.PostView {
	v := dto.PostView{
		ID:            p.ID,
		Creator:       idx.creator(p.CreatorID),
		ImageURL:      p.ImageURL,
		ThumbnailURL:  p.ThumbnailURL,
		MediaType:     p.MediaType,
		Title:         p.Title,
		Caption:       p.Caption,
		Location:      p.Location,
		People:        p.People,
		Likes:         p.Likes,
		ConsumerLikes: p.ConsumerLikes,
		LikesCount:    p.LikesCount(),
		Comments:      comments,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if v.People == nil {
		v.People = []string{}
	}
	if v.Likes == nil {
		v.Likes = []bson.ObjectID{}
	}
	if v.ConsumerLikes == nil {
		v.ConsumerLikes = []models.ConsumerLike{}
	}
	if v.Comments == nil {
		v.Comments = []dto.CommentView{}
	}
	return v
}

// SplitPeople turns the comma-joined form field into an ordered list,
// dropping blanks.
func SplitPeople(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
