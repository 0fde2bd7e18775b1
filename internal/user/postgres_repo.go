package user

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gametracker/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, username, password_hash, avatar, bio, created_at, updated_at`

type PostgresRepo struct {
	db      postgres.DB
	timeout time.Duration
}

func NewPostgresRepo(db postgres.DB, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Avatar, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepo) Create(ctx context.Context, u *User) error {
	const query = `
	INSERT INTO users (email, username, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, u.Email, u.Username, u.PasswordHash).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.QueryRow(timeoutCtx, query, email))
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.QueryRow(timeoutCtx, query, id))
}

func (r *PostgresRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, email, username).Scan(&exists)
	return exists, err
}

func (r *PostgresRepo) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`
	var taken bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, username, excludeID).Scan(&taken)
	return taken, err
}

func (r *PostgresRepo) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (User, error) {
	var sets []string
	var args []any
	argn := 1
	add := func(col string, v any) {
		sets = append(sets, col+" = $"+strconv.Itoa(argn))
		args = append(args, v)
		argn++
	}
	if update.Username != nil {
		add("username", *update.Username)
	}
	if update.Avatar != nil {
		add("avatar", *update.Avatar)
	}
	if update.Bio != nil {
		add("bio", *update.Bio)
	}
	if len(sets) == 0 {
		return User{}, ErrNoFields
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(argn) + ` RETURNING ` + userColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	u, err := scanUser(r.db.QueryRow(timeoutCtx, query, args...))
	if postgres.IsUniqueViolation(err) {
		return User{}, ErrUsernameTaken
	}
	return u, err
}
