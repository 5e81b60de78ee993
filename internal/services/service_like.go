package services

import (
	"context"

	"igram/dto"
	"igram/internal/accessctx"
	"igram/internal/common"
	"igram/internal/logging"
	"igram/internal/models"
)

type LikeService struct {
	posts PostStore
	log   logging.Logger
}

func NewLikeService(posts PostStore, log logging.Logger) *LikeService {
	return &LikeService{posts: posts, log: log}
}

// Toggle flips the actor's like on a post in a single store update, so
// concurrent toggles by different actors never lose each other's likes.
func (s *LikeService) Toggle(ctx context.Context, actor accessctx.Actor, postID string) (dto.LikeResponse, error) {
	oid, err := parseID(postID, "Post not found")
	if err != nil {
		return dto.LikeResponse{}, err
	}

	var (
		p     *models.Post
		liked bool
	)
	switch a := actor.(type) {
	case accessctx.AuthenticatedActor:
		p, err = s.posts.ToggleUserLike(ctx, oid, a.ID)
		if err == nil {
			liked = p.LikedBy(a.ID)
		}
	case accessctx.NamedActor:
		if a.Name == "" {
			return dto.LikeResponse{}, common.Validation("Consumer name is required")
		}
		p, err = s.posts.ToggleConsumerLike(ctx, oid, a.Name)
		if err == nil {
			liked = p.LikedByConsumer(a.Name)
		}
	default:
		return dto.LikeResponse{}, common.Unauthenticated("Authentication required")
	}
	if err != nil {
		return dto.LikeResponse{}, withMessage(err, "Post not found")
	}

	msg := "Post unliked"
	if liked {
		msg = "Post liked"
	}
	return dto.LikeResponse{Message: msg, LikesCount: p.LikesCount(), IsLiked: liked}, nil
}

func (s *LikeService) Status(ctx context.Context, actor accessctx.AuthenticatedActor, postID string) (dto.LikeResponse, error) {
	oid, err := parseID(postID, "Post not found")
	if err != nil {
		return dto.LikeResponse{}, err
	}
	p, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return dto.LikeResponse{}, withMessage(err, "Post not found")
	}
	return dto.LikeResponse{LikesCount: p.LikesCount(), IsLiked: p.LikedBy(actor.ID)}, nil
}
