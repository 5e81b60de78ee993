// Package memstore keeps every store in process memory. It backs the
// service and handler tests and mirrors the MongoDB repositories'
// observable behaviour: millisecond timestamps, newest-first ordering,
// unique keys and atomic like toggles.
package memstore

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"igram/internal/common"
	"igram/internal/cursor"
	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Store struct {
	mu        sync.RWMutex
	users     map[bson.ObjectID]models.User
	consumers map[bson.ObjectID]models.Consumer
	posts     map[bson.ObjectID]models.Post
	comments  map[bson.ObjectID]models.Comment
}

func New() *Store {
	return &Store{
		users:     map[bson.ObjectID]models.User{},
		consumers: map[bson.ObjectID]models.Consumer{},
		posts:     map[bson.ObjectID]models.Post{},
		comments:  map[bson.ObjectID]models.Comment{},
	}
}

func (s *Store) Users() *Users         { return &Users{s} }
func (s *Store) Consumers() *Consumers { return &Consumers{s} }
func (s *Store) Posts() *Posts         { return &Posts{s} }
func (s *Store) Comments() *Comments   { return &Comments{s} }

// BSON datetimes keep milliseconds only.
func ms(t time.Time) time.Time { return t.Truncate(time.Millisecond) }

func newestFirst(at, bt time.Time, aid, bid bson.ObjectID) int {
	if c := bt.Compare(at); c != 0 {
		return c
	}
	return bytes.Compare(bid[:], aid[:])
}

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, e := range r.s.users {
		if e.Email == u.Email || e.Username == u.Username {
			return common.ErrConflict
		}
	}
	u.ID = bson.NewObjectID()
	u.CreatedAt, u.UpdatedAt = ms(u.CreatedAt), ms(u.UpdatedAt)
	r.s.users[u.ID] = *u
	return nil
}

func (r *Users) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *Users) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.first(func(u models.User) bool { return u.Email == email })
}

func (r *Users) FindOneByRole(_ context.Context, role string) (*models.User, error) {
	return r.first(func(u models.User) bool { return u.Role == role })
}

func (r *Users) DeleteByRole(_ context.Context, role string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, u := range r.s.users {
		if u.Role == role {
			delete(r.s.users, id)
			n++
		}
	}
	return n, nil
}

func (r *Users) first(match func(models.User) bool) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

type Consumers struct{ s *Store }

// Create rejects names that collide ignoring case, like the unique
// collated index does.
func (r *Consumers) Create(_ context.Context, c *models.Consumer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.consumers {
		if strings.EqualFold(e.Name, c.Name) {
			return common.ErrConflict
		}
	}
	c.ID = bson.NewObjectID()
	c.CreatedAt, c.UpdatedAt = ms(c.CreatedAt), ms(c.UpdatedAt)
	r.s.consumers[c.ID] = *c
	return nil
}

func (r *Consumers) FindByName(_ context.Context, name string) (*models.Consumer, error) {
	return r.first(func(c models.Consumer) bool { return c.Name == name })
}

func (r *Consumers) FindByNameFold(_ context.Context, name string) (*models.Consumer, error) {
	return r.first(func(c models.Consumer) bool { return strings.EqualFold(c.Name, name) })
}

func (r *Consumers) first(match func(models.Consumer) bool) (*models.Consumer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.consumers {
		if match(c) {
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

type Posts struct{ s *Store }

func clonePost(p models.Post) models.Post {
	p.People = slices.Clone(p.People)
	p.Likes = slices.Clone(p.Likes)
	p.ConsumerLikes = slices.Clone(p.ConsumerLikes)
	p.Comments = slices.Clone(p.Comments)
	return p
}

func (r *Posts) Create(_ context.Context, p *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = bson.NewObjectID()
	p.CreatedAt, p.UpdatedAt = ms(p.CreatedAt), ms(p.UpdatedAt)
	r.s.posts[p.ID] = clonePost(*p)
	return nil
}

func (r *Posts) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (r *Posts) FindAllNewestFirst(_ context.Context) ([]models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, clonePost(p))
	}
	slices.SortFunc(out, func(a, b models.Post) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out, nil
}

func (r *Posts) Delete(_ context.Context, id bson.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *Posts) PushComment(_ context.Context, postID, commentID bson.ObjectID) error {
	return r.update(postID, func(p *models.Post) {
		p.Comments = append(p.Comments, commentID)
	})
}

func (r *Posts) PullComment(_ context.Context, postID, commentID bson.ObjectID) error {
	return r.update(postID, func(p *models.Post) {
		p.Comments = slices.DeleteFunc(p.Comments, func(id bson.ObjectID) bool { return id == commentID })
	})
}

func (r *Posts) ToggleUserLike(_ context.Context, postID, userID bson.ObjectID) (*models.Post, error) {
	var out models.Post
	err := r.update(postID, func(p *models.Post) {
		if slices.Contains(p.Likes, userID) {
			p.Likes = slices.DeleteFunc(p.Likes, func(id bson.ObjectID) bool { return id == userID })
		} else {
			p.Likes = append(p.Likes, userID)
		}
		out = clonePost(*p)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Posts) ToggleConsumerLike(_ context.Context, postID bson.ObjectID, name string) (*models.Post, error) {
	var out models.Post
	err := r.update(postID, func(p *models.Post) {
		if p.LikedByConsumer(name) {
			p.ConsumerLikes = slices.DeleteFunc(p.ConsumerLikes, func(l models.ConsumerLike) bool { return l.ConsumerName == name })
		} else {
			p.ConsumerLikes = append(p.ConsumerLikes, models.ConsumerLike{ConsumerName: name})
		}
		out = clonePost(*p)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Posts) update(id bson.ObjectID, fn func(p *models.Post)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return common.ErrNotFound
	}
	fn(&p)
	r.s.posts[id] = p
	return nil
}

type Comments struct{ s *Store }

func (r *Comments) Create(_ context.Context, c *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = bson.NewObjectID()
	c.CreatedAt, c.UpdatedAt = ms(c.CreatedAt), ms(c.UpdatedAt)
	r.s.comments[c.ID] = *c
	return nil
}

func (r *Comments) FindByID(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &c, nil
}

func (r *Comments) FindByPosts(_ context.Context, postIDs []bson.ObjectID) ([]models.Comment, error) {
	return r.sorted(func(c models.Comment) bool { return slices.Contains(postIDs, c.PostID) }), nil
}

func (r *Comments) ListByPostNewestFirst(_ context.Context, postID bson.ObjectID, cur string, limit int64) ([]models.Comment, *string, error) {
	match := func(c models.Comment) bool { return c.PostID == postID }
	if cur != "" {
		t, oid, err := cursor.DecodeCommentCursor(cur)
		if err != nil {
			return nil, nil, err
		}
		match = func(c models.Comment) bool {
			return c.PostID == postID && newestFirst(t, c.CreatedAt, oid, c.ID) < 0
		}
	}

	all := r.sorted(match)
	if limit > 0 && int64(len(all)) > limit {
		items := all[:limit]
		last := items[len(items)-1]
		next := cursor.EncodeCommentCursor(last.CreatedAt, last.ID)
		return items, &next, nil
	}
	return all, nil, nil
}

func (r *Comments) Delete(_ context.Context, id bson.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *Comments) DeleteByPost(_ context.Context, postID bson.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, c := range r.s.comments {
		if c.PostID == postID {
			delete(r.s.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *Comments) sorted(match func(models.Comment) bool) []models.Comment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Comment{}
	for _, c := range r.s.comments {
		if match(c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Comment) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}
