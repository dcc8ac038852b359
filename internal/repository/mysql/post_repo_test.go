package mysql

import (
	"context"
	"errors"
	"regexp"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/repository/interfaces"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postMockColumns = append([]string{"id", "author_id", "content", "is_private", "created_at", "updated_at"}, authorMockColumns...)

func TestListPostAggregatesOrdering(t *testing.T) {
	_, repo, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (p.is_private = FALSE OR p.author_id = ?) ORDER BY p.created_at DESC, p.id DESC")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(postMockColumns).
			AddRow("p2", "u1", nil, true, now, now, "u1", "Ada", "", "ada@example.com", nil, nil).
			AddRow("p1", "u2", "hello", false, now, now, "u2", "Bob", "", "bob@example.com", nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM post_media WHERE post_id IN (?, ?) ORDER BY position ASC, created_at ASC, id ASC")).
		WithArgs("p2", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "url", "type", "position", "created_at"}).
			AddRow("m1", "p2", "http://localhost:8080/uploads/posts/a", "png", 0, now).
			AddRow("m2", "p2", "http://localhost:8080/uploads/posts/b", "jpg", 1, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.post_id IN (?, ?) ORDER BY l.created_at DESC, l.id DESC")).
		WithArgs("p2", "p1").
		WillReturnRows(sqlmock.NewRows(likeMockColumns).
			AddRow("l1", "u2", "p2", nil, nil, now, "u2", "Bob", "", "bob@example.com", nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.post_id IN (?, ?) ORDER BY c.created_at DESC, c.id DESC")).
		WithArgs("p2", "p1").
		WillReturnRows(sqlmock.NewRows(commentMockColumns))

	posts, err := repo.ListPostAggregates(context.Background(), model.PostFilter{ViewerID: "u1"})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "p2", posts[0].ID)
	assert.Nil(t, posts[0].Content)
	require.Len(t, posts[0].Media, 2)
	assert.Equal(t, "m1", posts[0].Media[0].ID)
	assert.Equal(t, 1, posts[0].Media[1].Position)
	require.Len(t, posts[0].Likes, 1)
	assert.Equal(t, model.PostTarget("p2"), posts[0].Likes[0].Target)

	require.NotNil(t, posts[1].Content)
	assert.Equal(t, "hello", *posts[1].Content)
	assert.Empty(t, posts[1].Media)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPostLikersOrdering(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.post_id = ? ORDER BY l.created_at DESC, l.id DESC")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(authorMockColumns).
			AddRow("u2", "Bob", "", "bob@example.com", nil, nil).
			AddRow("u1", "Ada", "", "ada@example.com", "http://img/a.png", nil))

	users, err := repo.ListPostLikers(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].ID)
	assert.Equal(t, "http://img/a.png", users[1].ProfileImage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxCommitsMediaPosition(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_media (id, post_id, url, type, position, created_at)")).
		WithArgs(sqlmock.AnyArg(), "p1", "http://localhost:8080/uploads/posts/c", "png", 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithTx(context.Background(), func(tx interfaces.PostRepository) error {
		return tx.CreateMedia(context.Background(), &model.PostMedia{
			PostID:   "p1",
			URL:      "http://localhost:8080/uploads/posts/c",
			Type:     "png",
			Position: 2,
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.WithTx(context.Background(), func(tx interfaces.PostRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
