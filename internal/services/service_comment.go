package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"igram/dto"
	"igram/internal/accessctx"
	"igram/internal/common"
	"igram/internal/cursor"
	"igram/internal/logging"
	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CommentService struct {
	comments CommentStore
	posts    PostStore
	users    UserStore
	log      logging.Logger
	now      func() time.Time
}

func NewCommentService(comments CommentStore, posts PostStore, users UserStore, log logging.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
		log:      log,
		now:      time.Now,
	}
}

func (s *CommentService) Create(ctx context.Context, actor accessctx.Actor, postID, text string) (dto.CommentView, error) {
	text = strings.TrimSpace(text)
	postID = strings.TrimSpace(postID)

	c := &models.Comment{Text: text}
	switch a := actor.(type) {
	case accessctx.AuthenticatedActor:
		if postID == "" || text == "" {
			return dto.CommentView{}, common.Validation("Post ID and text are required")
		}
		uid := a.ID
		c.UserID = &uid
	case accessctx.NamedActor:
		if postID == "" || text == "" || a.Name == "" {
			return dto.CommentView{}, common.Validation("Post ID, text, and consumer name are required")
		}
		c.ConsumerName = a.Name
	default:
		return dto.CommentView{}, common.Unauthenticated("Authentication required")
	}

	oid, err := parseID(postID, "Post not found")
	if err != nil {
		return dto.CommentView{}, err
	}
	if _, err := s.posts.FindByID(ctx, oid); err != nil {
		return dto.CommentView{}, withMessage(err, "Post not found")
	}

	now := s.now().UTC()
	c.PostID = oid
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.comments.Create(ctx, c); err != nil {
		return dto.CommentView{}, err
	}

	if err := s.posts.PushComment(ctx, oid, c.ID); err != nil {
		// post vanished between lookup and push
		if derr := s.comments.Delete(ctx, c.ID); derr != nil {
			s.log.Warn(ctx, "orphan comment cleanup failed", "comment_id", c.ID.Hex(), "error", derr)
		}
		return dto.CommentView{}, withMessage(err, "Post not found")
	}

	var idx userIndex
	if c.UserID != nil {
		users, err := s.users.FindByIDs(ctx, []bson.ObjectID{*c.UserID})
		if err != nil {
			return dto.CommentView{}, err
		}
		idx = indexUsers(users)
	}
	s.log.Debug(ctx, "comment created", "comment_id", c.ID.Hex(), "post_id", oid.Hex())
	return idx.comment(*c), nil
}

// ListForPost returns a post's comments newest first. limit <= 0 returns all
// of them; otherwise NextCursor is set when more remain.
func (s *CommentService) ListForPost(ctx context.Context, postID, cur string, limit int64) (dto.CommentPage, error) {
	oid, err := parseID(postID, "Post not found")
	if err != nil {
		return dto.CommentPage{}, err
	}
	if limit <= 0 {
		cur = ""
	}

	comments, next, err := s.comments.ListByPostNewestFirst(ctx, oid, cur, limit)
	if err != nil {
		if errors.Is(err, cursor.ErrInvalidCursor) {
			return dto.CommentPage{}, common.Validation("Invalid cursor")
		}
		return dto.CommentPage{}, err
	}

	var userIDs []bson.ObjectID
	for _, c := range comments {
		if c.UserID != nil {
			userIDs = append(userIDs, *c.UserID)
		}
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return dto.CommentPage{}, err
	}
	idx := indexUsers(users)

	page := dto.CommentPage{Comments: make([]dto.CommentView, 0, len(comments)), NextCursor: next}
	for _, c := range comments {
		page.Comments = append(page.Comments, idx.comment(c))
	}
	return page, nil
}

func (s *CommentService) Delete(ctx context.Context, actor accessctx.Actor, id string) error {
	if a, ok := actor.(accessctx.NamedActor); ok && a.Name == "" {
		return common.Validation("Consumer name is required")
	}
	oid, err := parseID(id, "Comment not found")
	if err != nil {
		return err
	}
	c, err := s.comments.FindByID(ctx, oid)
	if err != nil {
		return withMessage(err, "Comment not found")
	}
	if err := accessctx.CanDeleteComment(actor, c); err != nil {
		return err
	}

	if err := s.posts.PullComment(ctx, c.PostID, c.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	if err := s.comments.Delete(ctx, c.ID); err != nil {
		return withMessage(err, "Comment not found")
	}
	s.log.Debug(ctx, "comment deleted", "comment_id", c.ID.Hex())
	return nil
}
