package list

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gametracker/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
)

const selectList = `
	SELECT l.id, l.user_id, l.name, l.description, l.is_public, u.username, u.avatar,
	       (SELECT COUNT(*) FROM list_items li WHERE li.list_id = l.id) AS item_count,
	       l.created_at, l.updated_at
	FROM lists l
	JOIN users u ON u.id = l.user_id
`

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

func scanList(row pgx.Row) (List, error) {
	var l List
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.IsPublic, &l.Username, &l.Avatar,
		&l.ItemCount, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return List{}, ErrNotFound
	}
	return l, err
}

func (r *PostgresRepo) queryLists(ctx context.Context, query string, args ...any) ([]List, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []List{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *PostgresRepo) ListPublic(ctx context.Context) ([]List, error) {
	return r.queryLists(ctx, selectList+` WHERE l.is_public = TRUE ORDER BY l.created_at DESC`)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]List, error) {
	return r.queryLists(ctx, selectList+` WHERE l.user_id = $1 ORDER BY l.created_at DESC`, userID)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (List, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanList(r.db.QueryRow(timeoutCtx, selectList+` WHERE l.id = $1`, id))
}

func (r *PostgresRepo) Create(ctx context.Context, userID string, in NewList) (List, error) {
	const query = `
	INSERT INTO lists (user_id, name, description, is_public)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	l := List{UserID: userID, Name: in.Name, Description: in.Description, IsPublic: in.IsPublic}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, userID, in.Name, in.Description, in.IsPublic).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *PostgresRepo) Update(ctx context.Context, id string, update Update) (List, error) {
	var sets []string
	var args []any
	argn := 1
	add := func(col string, v any) {
		sets = append(sets, col+" = $"+strconv.Itoa(argn))
		args = append(args, v)
		argn++
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.IsPublic != nil {
		add("is_public", *update.IsPublic)
	}
	if len(sets) == 0 {
		return List{}, ErrNoFields
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := `UPDATE lists SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(argn)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return List{}, err
	}
	if tag.RowsAffected() == 0 {
		return List{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the list; list_items rows go with it via ON DELETE CASCADE.
func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Items(ctx context.Context, listID string) ([]Item, error) {
	const query = `
	SELECT id, list_id, game_id, added_at
	FROM list_items
	WHERE list_id = $1
	ORDER BY added_at DESC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ListID, &it.GameID, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepo) AddItem(ctx context.Context, listID string, gameID int64) (Item, error) {
	const query = `
	INSERT INTO list_items (list_id, game_id)
	VALUES ($1, $2)
	ON CONFLICT (list_id, game_id) DO NOTHING
	RETURNING id, list_id, game_id, added_at
	`
	var it Item
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, listID, gameID).Scan(&it.ID, &it.ListID, &it.GameID, &it.AddedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrAlreadyInList
	}
	return it, err
}

func (r *PostgresRepo) RemoveItem(ctx context.Context, listID string, gameID int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM list_items WHERE list_id = $1 AND game_id = $2`, listID, gameID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
