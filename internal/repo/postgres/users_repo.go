package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hiteshgarg/medium-blog/internal/domain/user"
	"github.com/hiteshgarg/medium-blog/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, name string) (user.User, error) {
	var u user.User

	err := r.observe("users.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO users(id, email, password_hash, name, created_at)
             VALUES($1, $2, $3, $4, NOW())
             RETURNING id, email, password_hash, name, created_at`,
			uuid.NewString(),
			email,
			passwordHash,
			name,
		).Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.Name,
			&u.CreatedAt,
		)
	})

	if err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, email, password_hash, name, created_at
             FROM users
             WHERE email = $1`,
			email,
		).Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.Name,
			&u.CreatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {

			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}
