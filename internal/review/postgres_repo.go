package review

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

func scanReview(row pgx.Row) (Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.GameID, &rv.Rating, &rv.Review, &rv.Username, &rv.Avatar,
		&rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

func (r *PostgresRepo) list(ctx context.Context, where string, arg any) ([]Review, error) {
	query := `
	SELECT r.id, r.user_id, r.game_id, r.rating, r.review, u.username, u.avatar, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE ` + where + `
	ORDER BY r.created_at DESC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepo) ListByGame(ctx context.Context, gameID int64) ([]Review, error) {
	return r.list(ctx, "r.game_id = $1", gameID)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	return r.list(ctx, "r.user_id = $1", userID)
}

func (r *PostgresRepo) Upsert(ctx context.Context, userID string, in NewReview) (Review, error) {
	const query = `
	WITH saved AS (
		INSERT INTO reviews (user_id, game_id, rating, review)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, game_id)
		DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review, updated_at = NOW()
		RETURNING id, user_id, game_id, rating, review, created_at, updated_at
	)
	SELECT s.id, s.user_id, s.game_id, s.rating, s.review, u.username, u.avatar, s.created_at, s.updated_at
	FROM saved s
	JOIN users u ON u.id = s.user_id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanReview(r.db.QueryRow(timeoutCtx, query, userID, in.GameID, in.Rating, in.Review))
}

func (r *PostgresRepo) AuthorOf(ctx context.Context, id string) (string, error) {
	var userID string
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, `SELECT user_id FROM reviews WHERE id = $1`, id).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return userID, err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
