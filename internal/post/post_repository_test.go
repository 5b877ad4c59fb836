package post

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"connectrealm/internal/store"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func postColumns() []string {
	return []string{
		"id", "user_id", "caption", "content", "visibility", "is_pinned",
		"likes_count", "comments_count", "created_at", "updated_at",
	}
}

func TestPostRepository_Feed(t *testing.T) {
	tests := []struct {
		name          string
		authorIDs     []string
		mockSetup     func(sqlmock.Sqlmock)
		expectedCount int
		expectedTotal int64
		expectError   bool
	}{
		{
			name:      "returns page with exact total",
			authorIDs: []string{"u1", "u2"},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT count\\(\\*\\) FROM `posts` WHERE user_id IN").
					WithArgs("u1", "u2").
					WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(42))
				mock.ExpectQuery("SELECT \\* FROM `posts` WHERE user_id IN .+ ORDER BY created_at DESC").
					WillReturnRows(sqlmock.NewRows(postColumns()).
						AddRow("p2", "u2", "second", []byte(`{"text":"b"}`), "public", false, 3, 0, time.Now(), nil).
						AddRow("p1", "u1", "first", []byte(`{"text":"a"}`), "public", false, 5, 1, time.Now().Add(-time.Hour), nil))
			},
			expectedCount: 2,
			expectedTotal: 42,
		},
		{
			name:          "no authors short-circuits",
			authorIDs:     nil,
			mockSetup:     func(sqlmock.Sqlmock) {},
			expectedCount: 0,
			expectedTotal: 0,
		},
		{
			name:      "count failure",
			authorIDs: []string{"u1"},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT count\\(\\*\\) FROM `posts`").
					WillReturnError(assert.AnError)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewPostRepository(db)
			posts, total, err := repo.Feed(context.Background(), tt.authorIDs, store.Page{Number: 0, Size: 20})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, posts, tt.expectedCount)
				assert.Equal(t, tt.expectedTotal, total)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_DeleteOwned(t *testing.T) {
	tests := []struct {
		name            string
		mockSetup       func(sqlmock.Sqlmock)
		expectedDeleted int64
	}{
		{
			name: "owner delete cascades likes and comments",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `posts` WHERE id = ? AND user_id = ?")).
					WithArgs("p1", "u1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `likes` WHERE target_type = ? AND target_id = ?")).
					WithArgs("post", "p1").
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments` WHERE post_id = ?")).
					WithArgs("p1").
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
			expectedDeleted: 1,
		},
		{
			name: "foreign post deletes nothing",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `posts` WHERE id = ? AND user_id = ?")).
					WithArgs("p1", "u1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			expectedDeleted: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewPostRepository(db)
			deleted, err := repo.DeleteOwned(context.Background(), "p1", "u1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedDeleted, deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
