package services

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"igram/dto"
	"igram/internal/accessctx"
	"igram/internal/common"
	"igram/internal/logging"
	"igram/internal/models"
	"igram/internal/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MediaUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type NewPost struct {
	Title    string
	Caption  string
	Location string
	People   []string
	Media    *MediaUpload
}

type PostService struct {
	posts    PostStore
	comments CommentStore
	users    UserStore
	media    storage.MediaSink
	log      logging.Logger
	now      func() time.Time
}

func NewPostService(posts PostStore, comments CommentStore, users UserStore, media storage.MediaSink, log logging.Logger) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		users:    users,
		media:    media,
		log:      log,
		now:      time.Now,
	}
}

func (s *PostService) Create(ctx context.Context, actor accessctx.Actor, in NewPost) (dto.PostView, error) {
	if err := accessctx.CanPublish(actor); err != nil {
		return dto.PostView{}, err
	}
	creator := actor.(accessctx.AuthenticatedActor)

	in.Title = strings.TrimSpace(in.Title)
	in.Caption = strings.TrimSpace(in.Caption)
	in.Location = strings.TrimSpace(in.Location)
	if in.Caption == "" && in.Media == nil {
		return dto.PostView{}, common.Validation("Either caption or media file is required")
	}

	now := s.now().UTC()
	p := &models.Post{
		CreatorID:     creator.ID,
		MediaType:     models.MediaNone,
		Title:         in.Title,
		Caption:       in.Caption,
		Location:      in.Location,
		People:        in.People,
		Likes:         []bson.ObjectID{},
		ConsumerLikes: []models.ConsumerLike{},
		Comments:      []bson.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.People == nil {
		p.People = []string{}
	}

	if in.Media != nil {
		if err := s.storeMedia(ctx, p, in.Media, now); err != nil {
			return dto.PostView{}, err
		}
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return dto.PostView{}, err
	}
	s.log.Info(ctx, "post created", "post_id", p.ID.Hex(), "media_type", p.MediaType)

	users, err := s.users.FindByIDs(ctx, []bson.ObjectID{creator.ID})
	if err != nil {
		return dto.PostView{}, err
	}
	return indexUsers(users).post(*p, nil), nil
}

func (s *PostService) storeMedia(ctx context.Context, p *models.Post, m *MediaUpload, now time.Time) error {
	kind, ok := storage.MediaKind(m.ContentType)
	if !ok {
		return common.Validation("Only image and video files are allowed")
	}
	if len(m.Data) == 0 {
		return common.Validation("Uploaded file is empty")
	}

	key := storage.ObjectKey(m.Filename, now)
	url, err := s.media.Put(ctx, key, m.ContentType, m.Data)
	if err != nil {
		return common.NewError(common.ErrUpstream, fmt.Sprintf("Failed to upload media: %v", err))
	}
	p.ImageURL = url
	p.MediaType = kind

	thumb, ok, err := storage.Thumbnail(m.ContentType, m.Data)
	switch {
	case err != nil:
		s.log.Warn(ctx, "thumbnail skipped", "key", key, "error", err)
	case ok:
		turl, err := s.media.Put(ctx, storage.ThumbnailKey(key), "image/jpeg", thumb)
		if err != nil {
			s.log.Warn(ctx, "thumbnail upload failed", "key", key, "error", err)
			break
		}
		p.ThumbnailURL = turl
	}
	return nil
}

// List returns every post, newest first, with creator, comments and
// comment authors joined.
func (s *PostService) List(ctx context.Context) ([]dto.PostView, error) {
	posts, err := s.posts.FindAllNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

func (s *PostService) Get(ctx context.Context, id string) (dto.PostView, error) {
	oid, err := parseID(id, "Post not found")
	if err != nil {
		return dto.PostView{}, err
	}
	p, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return dto.PostView{}, withMessage(err, "Post not found")
	}
	views, err := s.assemble(ctx, []models.Post{*p})
	if err != nil {
		return dto.PostView{}, err
	}
	return views[0], nil
}

func (s *PostService) Delete(ctx context.Context, actor accessctx.Actor, id string) error {
	if u, ok := actor.(accessctx.AuthenticatedActor); !ok || !u.IsCreator() {
		return common.Forbidden("Only creator can delete posts")
	}
	oid, err := parseID(id, "Post not found")
	if err != nil {
		return err
	}
	p, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return withMessage(err, "Post not found")
	}
	if err := accessctx.CanDeletePost(actor, p); err != nil {
		return err
	}

	for _, url := range []string{p.ImageURL, p.ThumbnailURL} {
		if url == "" {
			continue
		}
		if err := s.media.DeleteIfExists(ctx, url); err != nil {
			s.log.Warn(ctx, "media delete failed", "post_id", p.ID.Hex(), "url", url, "error", err)
		}
	}

	n, err := s.comments.DeleteByPost(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, p.ID); err != nil {
		return withMessage(err, "Post not found")
	}
	s.log.Info(ctx, "post deleted", "post_id", p.ID.Hex(), "comments_deleted", n)
	return nil
}

func (s *PostService) assemble(ctx context.Context, posts []models.Post) ([]dto.PostView, error) {
	sortPostsNewestFirst(posts)

	postIDs := make([]bson.ObjectID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	comments, err := s.comments.FindByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	sortCommentsNewestFirst(comments)

	seen := map[bson.ObjectID]bool{}
	var userIDs []bson.ObjectID
	addUser := func(id bson.ObjectID) {
		if !seen[id] {
			seen[id] = true
			userIDs = append(userIDs, id)
		}
	}
	for _, p := range posts {
		addUser(p.CreatorID)
	}
	for _, c := range comments {
		if c.UserID != nil {
			addUser(*c.UserID)
		}
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	idx := indexUsers(users)

	byPost := make(map[bson.ObjectID][]dto.CommentView, len(posts))
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], idx.comment(c))
	}

	out := make([]dto.PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, idx.post(p, byPost[p.ID]))
	}
	return out, nil
}

// newestFirst orders by creation time, later ids first on ties.
func newestFirst(at, bt time.Time, aid, bid bson.ObjectID) int {
	if c := bt.Compare(at); c != 0 {
		return c
	}
	return bytes.Compare(bid[:], aid[:])
}

func sortPostsNewestFirst(posts []models.Post) {
	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

func sortCommentsNewestFirst(comments []models.Comment) {
	slices.SortStableFunc(comments, func(a, b models.Comment) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}
