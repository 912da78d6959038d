// Package memory keeps blog data in process memory. It follows the same
// contracts as the gorm repositories, including delete cascades, and backs
// the use case tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/repo/persistent"

	"github.com/google/uuid"
)

var (
	_ persistent.PostRepository     = (*PostRepo)(nil)
	_ persistent.CommentRepository  = (*CommentRepo)(nil)
	_ persistent.CategoryRepository = (*CategoryRepo)(nil)
	_ persistent.LocationRepository = (*LocationRepo)(nil)
	_ persistent.UserRepository     = (*UserRepo)(nil)
)

type Store struct {
	mu         sync.RWMutex
	users      map[string]entity.User
	categories map[string]entity.Category
	locations  map[string]entity.Location
	posts      map[string]entity.Post
	comments   map[string]entity.Comment
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		categories: make(map[string]entity.Category),
		locations:  make(map[string]entity.Location),
		posts:      make(map[string]entity.Post),
		comments:   make(map[string]entity.Comment),
	}
}

func (s *Store) Posts() *PostRepo { return &PostRepo{s: s} }
func (s *Store) Comments() *CommentRepo { return &CommentRepo{s: s} }
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// AddUser registers an account. Users are owned by the auth service, so the
// blog repositories only read them.
func (s *Store) AddUser(user entity.User) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users[user.ID] = user
	return user
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// hydrate returns a copy of post with its relations and comment count filled.
// Callers must hold the lock.
func (s *Store) hydrate(post entity.Post) *entity.Post {
	if u, ok := s.users[post.AuthorID]; ok {
		post.Author = &u
	}
	post.Category = nil
	if post.CategoryID != nil {
		if c, ok := s.categories[*post.CategoryID]; ok {
			post.Category = &c
		}
	}
	post.Location = nil
	if post.LocationID != nil {
		if l, ok := s.locations[*post.LocationID]; ok {
			post.Location = &l
		}
	}

	var count int64
	for _, c := range s.comments {
		if c.PostID == post.ID {
			count++
		}
	}
	post.CommentCount = count
	return &post
}

// PostRepo implements persistent.PostRepository.
type PostRepo struct {
	s *Store
}

func (r *PostRepo) Create(post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	post.ID = newID(post.ID)
	post.CreatedAt = now
	post.UpdatedAt = now

	stored := *post
	stored.CategoryID = copyID(post.CategoryID)
	stored.LocationID = copyID(post.LocationID)
	stored.Author, stored.Category, stored.Location, stored.CommentCount = nil, nil, nil, 0
	r.s.posts[post.ID] = stored
	return nil
}

func (r *PostRepo) GetByID(id string) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	post, ok := r.s.posts[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return r.s.hydrate(post), nil
}

func (r *PostRepo) matching(q entity.PostQuery) []*entity.Post {
	var out []*entity.Post
	for _, p := range r.s.posts {
		if q.AuthorID != "" && p.AuthorID != q.AuthorID {
			continue
		}
		if q.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != q.CategoryID) {
			continue
		}
		post := r.s.hydrate(p)
		if q.LiveAt != nil && !policy.IsLive(post, *q.LiveAt) {
			continue
		}
		out = append(out, post)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PubDate.Equal(out[j].PubDate) {
			return out[i].PubDate.After(out[j].PubDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *PostRepo) List(q entity.PostQuery) ([]*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := r.matching(q)
	if q.Limit <= 0 {
		return posts, nil
	}
	if q.Offset >= len(posts) {
		return []*entity.Post{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[q.Offset:end], nil
}

func (r *PostRepo) Count(q entity.PostQuery) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matching(q))), nil
}

func (r *PostRepo) Update(post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok {
		return entity.ErrNotFound
	}
	stored.Title = post.Title
	stored.Text = post.Text
	stored.PubDate = post.PubDate
	stored.IsPublished = post.IsPublished
	stored.ImageURL = post.ImageURL
	stored.CategoryID = copyID(post.CategoryID)
	stored.LocationID = copyID(post.LocationID)
	stored.UpdatedAt = time.Now().UTC()
	r.s.posts[post.ID] = stored

	post.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *PostRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return entity.ErrNotFound
	}
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.posts, id)
	return nil
}

// CommentRepo implements persistent.CommentRepository.
type CommentRepo struct {
	s *Store
}

func (r *CommentRepo) Create(comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return entity.ErrNotFound
	}
	now := time.Now().UTC()
	comment.ID = newID(comment.ID)
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	stored := *comment
	stored.Author = nil
	r.s.comments[comment.ID] = stored
	return nil
}

func (r *CommentRepo) withAuthor(c entity.Comment) *entity.Comment {
	if u, ok := r.s.users[c.AuthorID]; ok {
		c.Author = &u
	}
	return &c
}

func (r *CommentRepo) GetByID(id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return r.withAuthor(c), nil
}

func (r *CommentRepo) ListByPost(postID string) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Comment{}
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, r.withAuthor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CommentRepo) Update(comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.comments[comment.ID]
	if !ok {
		return entity.ErrNotFound
	}
	stored.Text = comment.Text
	stored.UpdatedAt = time.Now().UTC()
	r.s.comments[comment.ID] = stored
	return nil
}

func (r *CommentRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

// CategoryRepo implements persistent.CategoryRepository.
type CategoryRepo struct {
	s *Store
}

func (r *CategoryRepo) Create(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Slug == category.Slug {
			return entity.NewValidationError("slug", "already exists")
		}
	}
	category.ID = newID(category.ID)
	category.CreatedAt = time.Now().UTC()
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *CategoryRepo) List(publishedOnly bool) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Category{}
	for _, c := range r.s.categories {
		if publishedOnly && !c.IsPublished {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.categories[category.ID]
	if !ok {
		return entity.ErrNotFound
	}
	stored.Title = category.Title
	stored.Description = category.Description
	stored.IsPublished = category.IsPublished
	r.s.categories[category.ID] = stored
	return nil
}

func (r *CategoryRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return entity.ErrNotFound
	}
	for pid, p := range r.s.posts {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.s.posts[pid] = p
		}
	}
	delete(r.s.categories, id)
	return nil
}

// LocationRepo implements persistent.LocationRepository.
type LocationRepo struct {
	s *Store
}

func (r *LocationRepo) Create(location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	location.ID = newID(location.ID)
	location.CreatedAt = time.Now().UTC()
	r.s.locations[location.ID] = *location
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.locations[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &l, nil
}

func (r *LocationRepo) List(publishedOnly bool) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Location{}
	for _, l := range r.s.locations {
		if publishedOnly && !l.IsPublished {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *LocationRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.locations[id]; !ok {
		return entity.ErrNotFound
	}
	for pid, p := range r.s.posts {
		if p.LocationID != nil && *p.LocationID == id {
			p.LocationID = nil
			r.s.posts[pid] = p
		}
	}
	delete(r.s.locations, id)
	return nil
}

// UserRepo implements persistent.UserRepository.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, entity.ErrNotFound
}
