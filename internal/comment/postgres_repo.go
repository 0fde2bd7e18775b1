package comment

import (
	"context"
	"errors"
	"time"

	"gametracker/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
)

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

func (r *PostgresRepo) ListByGame(ctx context.Context, gameID int64, page Page) ([]Comment, int, error) {
	const countSQL = `SELECT COUNT(*) FROM comments WHERE game_id = $1`
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, gameID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataSQL = `
	SELECT c.id, c.user_id, c.game_id, c.content, u.username, u.avatar, c.created_at, c.updated_at
	FROM comments c
	JOIN users u ON u.id = c.user_id
	WHERE c.game_id = $1
	ORDER BY c.created_at DESC
	LIMIT $2 OFFSET $3
	`
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, gameID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.GameID, &c.Content, &c.Username, &c.Avatar,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, userID string, gameID int64, content string) (Comment, error) {
	const query = `
	WITH inserted AS (
		INSERT INTO comments (user_id, game_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, game_id, content, created_at, updated_at
	)
	SELECT i.id, i.user_id, i.game_id, i.content, u.username, u.avatar, i.created_at, i.updated_at
	FROM inserted i
	JOIN users u ON u.id = i.user_id
	`
	var c Comment
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, userID, gameID, content).Scan(
		&c.ID, &c.UserID, &c.GameID, &c.Content, &c.Username, &c.Avatar, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PostgresRepo) AuthorOf(ctx context.Context, id string) (string, error) {
	var userID string
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, `SELECT user_id FROM comments WHERE id = $1`, id).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return userID, err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
