package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiteshgarg/medium-blog/internal/cache"
	"github.com/hiteshgarg/medium-blog/internal/config"
	"github.com/hiteshgarg/medium-blog/internal/domain/post"
	"github.com/hiteshgarg/medium-blog/internal/http/middlewares"
)

type PostStore interface {
	Create(ctx context.Context, authorID string, req post.CreateBlogRequest) (post.Post, error)
	Update(ctx context.Context, req post.UpdateBlogRequest) (post.Post, error)
	List(ctx context.Context) ([]post.View, error)
	GetByID(ctx context.Context, id string) (post.View, error)
	GetAuthorID(ctx context.Context, id string) (string, error)
}

const bulkCacheKey = "posts:bulk:v1"

type BlogsHandler struct {
	posts           PostStore
	cache           *cache.Cache
	strictOwnership bool
}

func NewBlogsHandler(posts PostStore, listCache *cache.Cache, strictOwnership bool) *BlogsHandler {
	return &BlogsHandler{
		posts:           posts,
		cache:           listCache,
		strictOwnership: strictOwnership,
	}
}

func (h *BlogsHandler) CreateBlog(ctx *gin.Context) {
	var req post.CreateBlogRequest

	if !BindJSON(ctx, &req) {
		return
	}

	authorID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondForbidden(ctx, "You are not logged in")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	p, err := h.posts.Create(cctx, authorID, req)

	if err != nil {
		RespondInternal(ctx, "Error while creating blog post")
		return
	}

	h.cache.Delete(bulkCacheKey)

	ctx.JSON(http.StatusOK, gin.H{
		"id": p.ID,
	})
}

func (h *BlogsHandler) UpdateBlog(ctx *gin.Context) {
	var req post.UpdateBlogRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// Default mode matches the original client contract: any signed-in user
	// may edit any post. Strict mode restricts edits to the author.
	if h.strictOwnership {
		userID, _ := middlewares.UserIDFromContext(ctx)

		authorID, err := h.posts.GetAuthorID(cctx, req.ID)

		if err != nil {
			RespondInternal(ctx, "Error while updating blog post")
			return
		}

		if authorID != userID {
			RespondForbidden(ctx, "You are not the author of this post")
			return
		}
	}

	p, err := h.posts.Update(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Error while updating blog post")
		return
	}

	h.cache.Delete(bulkCacheKey)

	ctx.JSON(http.StatusOK, gin.H{
		"id": p.ID,
	})
}

func (h *BlogsHandler) ListBlogs(ctx *gin.Context) {
	if cached, ok := h.cache.Get(bulkCacheKey); ok {
		if blogs, ok := cached.([]post.View); ok {
			ctx.JSON(http.StatusOK, gin.H{"blogs": blogs})
			return
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	blogs, err := h.posts.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Error while fetching blog posts")
		return
	}

	h.cache.Set(bulkCacheKey, blogs)

	ctx.JSON(http.StatusOK, gin.H{
		"blogs": blogs,
	})
}

func (h *BlogsHandler) GetBlogByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	v, err := h.posts.GetByID(cctx, id)

	if err != nil {
		// an unknown id yields a null post, only a store failure is an error
		if errors.Is(err, post.ErrNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"post": nil})
			return
		}

		RespondFetchError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"post": v,
	})
}
