package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hiteshgarg/medium-blog/internal/domain/post"
	"github.com/hiteshgarg/medium-blog/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// constructor function

func NewPostsRepo(pool *pgxpool.Pool, prom *observability.Prom) *PostsRepo {
	return &PostsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *PostsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create inserts a post for the given author. Published is always true and
// published_at is set by the database at insert time.
func (r *PostsRepo) Create(ctx context.Context, authorID string, req post.CreateBlogRequest) (post.Post, error) {
	var p post.Post

	err := r.observe("posts.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO posts(id, title, content, published, published_at, author_id)
             VALUES($1, $2, $3, TRUE, NOW(), $4)
             RETURNING id, title, content, published, published_at, author_id`,
			uuid.NewString(),
			req.Title,
			req.Content,
			authorID,
		).Scan(
			&p.ID,
			&p.Title,
			&p.Content,
			&p.Published,
			&p.PublishedAt,
			&p.AuthorID,
		)
	})

	if err != nil {
		return post.Post{}, err
	}

	return p, nil
}

// Update only touches the supplied fields, COALESCE keeps the old value for
// a nil title/content.
func (r *PostsRepo) Update(ctx context.Context, req post.UpdateBlogRequest) (post.Post, error) {
	var p post.Post

	err := r.observe("posts.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE posts
                SET title = COALESCE($2, title),
                    content = COALESCE($3, content)
             WHERE id = $1
             RETURNING id, title, content, published, published_at, author_id`,
			req.ID,
			req.Title,
			req.Content,
		).Scan(
			&p.ID,
			&p.Title,
			&p.Content,
			&p.Published,
			&p.PublishedAt,
			&p.AuthorID,
		)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		// if it is any other type of error
		return post.Post{}, err
	}

	return p, nil
}

func (r *PostsRepo) List(ctx context.Context) ([]post.View, error) {
	output := make([]post.View, 0)

	err := r.observe("posts.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT p.id, p.title, p.content, p.published_at, u.name
             FROM posts p
             JOIN users u ON u.id = p.author_id
             ORDER BY p.published_at DESC, p.id DESC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var v post.View

			err = rows.Scan(&v.ID, &v.Title, &v.Content, &v.PublishedAt, &v.Author.Name)

			if err != nil {
				return err
			}

			output = append(output, v)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (post.View, error) {
	var v post.View

	err := r.observe("posts.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT p.id, p.title, p.content, p.published_at, u.name
             FROM posts p
             JOIN users u ON u.id = p.author_id
             WHERE p.id = $1`,
			id,
		).Scan(&v.ID, &v.Title, &v.Content, &v.PublishedAt, &v.Author.Name)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.View{}, post.ErrNotFound
		}

		return post.View{}, err
	}

	return v, nil
}

// GetAuthorID backs the strict ownership mode on updates.
func (r *PostsRepo) GetAuthorID(ctx context.Context, id string) (string, error) {
	var authorID string

	err := r.observe("posts.get_author_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT author_id FROM posts WHERE id = $1`, id).Scan(&authorID)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", post.ErrNotFound
		}

		return "", err
	}

	return authorID, nil
}
