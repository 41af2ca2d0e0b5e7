package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hiteshgarg/medium-blog/internal/domain/post"
)

// PostsRepo mirrors the postgres repo for tests. It needs the users repo to
// resolve author names for the read projection.
type PostsRepo struct {
	mu    sync.RWMutex
	items map[string]post.Post
	users *UsersRepo
}

func NewPostsRepo(users *UsersRepo) *PostsRepo {
	return &PostsRepo{
		items: make(map[string]post.Post),
		users: users,
	}
}

func (r *PostsRepo) Create(ctx context.Context, authorID string, req post.CreateBlogRequest) (post.Post, error) {
	p := post.Post{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Content:     req.Content,
		Published:   true,
		PublishedAt: time.Now().UTC(),
		AuthorID:    authorID,
	}

	r.mu.Lock()
	r.items[p.ID] = p
	r.mu.Unlock()

	return p, nil
}

func (r *PostsRepo) Update(ctx context.Context, req post.UpdateBlogRequest) (post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[req.ID]

	if !ok {
		return post.Post{}, post.ErrNotFound
	}

	if req.Title != nil {
		p.Title = *req.Title
	}

	if req.Content != nil {
		p.Content = *req.Content
	}

	r.items[p.ID] = p

	return p, nil
}

func (r *PostsRepo) List(ctx context.Context) ([]post.View, error) {
	r.mu.RLock()

	out := make([]post.View, 0, len(r.items))

	for _, p := range r.items {
		out = append(out, r.view(p))
	}

	r.mu.RUnlock()

	// newest first, matching the postgres ordering
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (post.View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]

	if !ok {
		return post.View{}, post.ErrNotFound
	}

	return r.view(p), nil
}

func (r *PostsRepo) GetAuthorID(ctx context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]

	if !ok {
		return "", post.ErrNotFound
	}

	return p.AuthorID, nil
}

func (r *PostsRepo) view(p post.Post) post.View {
	return post.View{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		PublishedAt: p.PublishedAt,
		Author:      post.Author{Name: r.users.nameByID(p.AuthorID)},
	}
}
