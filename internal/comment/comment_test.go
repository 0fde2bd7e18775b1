package comment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gametracker/internal/game"
	"gametracker/internal/platform/igdb"
	"gametracker/internal/testutil"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCommentID = "7a6b5c4d-3e2f-4a1b-9c8d-7e6f5a4b3c2d"

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListByGame(ctx context.Context, gameID int64, page Page) ([]Comment, int, error) {
	args := m.Called(ctx, gameID, page)
	return args.Get(0).([]Comment), args.Int(1), args.Error(2)
}

func (m *mockRepo) Create(ctx context.Context, userID string, gameID int64, content string) (Comment, error) {
	args := m.Called(ctx, userID, gameID, content)
	return args.Get(0).(Comment), args.Error(1)
}

func (m *mockRepo) AuthorOf(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockGames struct {
	mock.Mock
}

func (m *mockGames) GetGameByID(ctx context.Context, id int64) (game.Game, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(game.Game), args.Error(1)
}

func TestPage(t *testing.T) {
	p := Page{Number: 3, Limit: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(20))
	assert.Equal(t, 2, p.TotalPages(21))
}

func TestHTTPHandler_ListByGame(t *testing.T) {
	repo := new(mockRepo)
	handler := NewHTTPHandler(NewService(repo, new(mockGames)))
	repo.On("ListByGame", mock.Anything, int64(1942), Page{Number: 2, Limit: 100}).
		Return([]Comment{{ID: testCommentID, Content: "gg"}}, 101, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/comments/game/1942?page=2&limit=500", nil)
	r.SetPathValue("gameId", "1942")
	handler.ListByGame(w, r)

	res := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusOK, res.Code)
	meta := res.Body["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(100), meta["limit"])
	assert.Equal(t, float64(101), meta["total"])
	assert.Equal(t, float64(2), meta["total_pages"])
}

func TestHTTPHandler_Create(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		setup    func(repo *mockRepo, games *mockGames)
		wantCode int
		wantErr  string
	}{
		{
			name: "created",
			body: map[string]any{"game_id": 1942, "content": " Great game "},
			setup: func(repo *mockRepo, games *mockGames) {
				games.On("GetGameByID", mock.Anything, int64(1942)).Return(game.Game{ID: 1942}, nil)
				repo.On("Create", mock.Anything, testutil.TestUserID, int64(1942), "Great game").
					Return(Comment{ID: testCommentID, Username: testutil.TestUsername}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "game missing",
			body: map[string]any{"game_id": 404, "content": "hello"},
			setup: func(repo *mockRepo, games *mockGames) {
				games.On("GetGameByID", mock.Anything, int64(404)).Return(game.Game{}, game.ErrNotFound)
			},
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name: "catalog throttled",
			body: map[string]any{"game_id": 1942, "content": "hello"},
			setup: func(repo *mockRepo, games *mockGames) {
				games.On("GetGameByID", mock.Anything, int64(1942)).
					Return(game.Game{}, fmt.Errorf("%w: status 429", igdb.ErrRateLimited))
			},
			wantCode: http.StatusTooManyRequests,
			wantErr:  "CATALOG_RATE_LIMITED",
		},
		{
			name: "catalog down",
			body: map[string]any{"game_id": 1942, "content": "hello"},
			setup: func(repo *mockRepo, games *mockGames) {
				games.On("GetGameByID", mock.Anything, int64(1942)).Return(game.Game{}, igdb.ErrCatalogUnavailable)
			},
			wantCode: http.StatusBadGateway,
			wantErr:  "CATALOG_UNAVAILABLE",
		},
		{
			name:     "blank content",
			body:     map[string]any{"game_id": 1942, "content": "   "},
			setup:    func(repo *mockRepo, games *mockGames) {},
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, games := new(mockRepo), new(mockGames)
			tt.setup(repo, games)
			handler := NewHTTPHandler(NewService(repo, games))

			w := httptest.NewRecorder()
			r := testutil.WithUser(testutil.NewRequest(http.MethodPost, "/api/comments", tt.body), testutil.TestUserID)
			handler.Create(w, r)

			res := testutil.RecordHTTPResponse(w)
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, res.ErrorCode())
			}
			repo.AssertExpectations(t)
			games.AssertExpectations(t)
		})
	}
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("author", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("AuthorOf", mock.Anything, testCommentID).Return(testutil.TestUserID, nil)
		repo.On("Delete", mock.Anything, testCommentID).Return(nil)
		handler := NewHTTPHandler(NewService(repo, new(mockGames)))

		w := httptest.NewRecorder()
		r := testutil.WithUser(httptest.NewRequest(http.MethodDelete, "/api/comments/"+testCommentID, nil), testutil.TestUserID)
		r.SetPathValue("id", testCommentID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("not author", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("AuthorOf", mock.Anything, testCommentID).Return(testutil.OtherUserID, nil)
		handler := NewHTTPHandler(NewService(repo, new(mockGames)))

		w := httptest.NewRecorder()
		r := testutil.WithUser(httptest.NewRequest(http.MethodDelete, "/api/comments/"+testCommentID, nil), testutil.TestUserID)
		r.SetPathValue("id", testCommentID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPostgresRepo_ListByGame(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepo(db, time.Second)

	now := time.Now()
	db.ExpectQuery("SELECT COUNT\\(\\*\\) FROM comments").
		WithArgs(int64(1942)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(21))
	db.ExpectQuery("ORDER BY c.created_at DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs(int64(1942), 20, 20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "game_id", "content", "username", "avatar", "created_at", "updated_at"}).
			AddRow(testCommentID, "u1", int64(1942), "gg", "link", nil, now, now))

	comments, total, err := repo.ListByGame(context.Background(), 1942, Page{Number: 2, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 21, total)
	require.Len(t, comments, 1)
	assert.Equal(t, "link", comments[0].Username)
	require.NoError(t, db.ExpectationsWereMet())
}

func TestPostgresRepo_Create(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepo(db, time.Second)

	now := time.Now()
	db.ExpectQuery("INSERT INTO comments").
		WithArgs("u1", int64(1942), "gg").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "game_id", "content", "username", "avatar", "created_at", "updated_at"}).
			AddRow(testCommentID, "u1", int64(1942), "gg", "link", nil, now, now))

	c, err := repo.Create(context.Background(), "u1", 1942, "gg")

	require.NoError(t, err)
	assert.Equal(t, testCommentID, c.ID)
	assert.Equal(t, "link", c.Username)
}
