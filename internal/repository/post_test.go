package repository

import (
	"context"
	"regexp"
	"testing"

	"bridgeforum/internal/models"
	"bridgeforum/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Body: "No entiendo los punteros", FrustrationLevel: 8, UserID: 3}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 AND "posts"."deleted_at" IS NULL ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id"}).AddRow(1, "Post 1", 10))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "user10"))

	post, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Post 1", post.Body)
	assert.Equal(t, "user10", post.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestPostRepository_ListNewestFirstWithCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	luis := testutil.CreateUser(t, db, "luis", "luis@example.com", false)
	first := testutil.CreatePost(t, db, ana, "first", 3)
	second := testutil.CreatePost(t, db, luis, "second", 9)

	c := testutil.CreateComment(t, db, luis, first, nil, "ánimo")
	testutil.CreateComment(t, db, ana, first, c, "gracias")

	posts, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, "luis", posts[0].User.Username)
	assert.Equal(t, 0, posts[0].CommentsCount)
	assert.Equal(t, first.ID, posts[1].ID)
	assert.Equal(t, 2, posts[1].CommentsCount)

	mine, err := repo.ListByUser(ctx, ana.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}

func TestPostRepository_GetWithComments(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)

	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	luis := testutil.CreateUser(t, db, "luis", "luis@example.com", false)
	post := testutil.CreatePost(t, db, ana, "help with goroutines", 7)

	top1 := testutil.CreateComment(t, db, luis, post, nil, "use a WaitGroup")
	testutil.CreateComment(t, db, ana, post, top1, "thanks")
	testutil.CreateComment(t, db, luis, post, nil, "or errgroup")

	got, err := repo.GetWithComments(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.User.Username)
	require.Len(t, got.Comments, 2, "replies are nested, not listed at the top level")
	assert.Equal(t, "use a WaitGroup", got.Comments[0].Body)
	assert.Equal(t, "luis", got.Comments[0].User.Username)
	require.Len(t, got.Comments[0].Replies, 1)
	assert.Equal(t, "ana", got.Comments[0].Replies[0].User.Username)
	assert.Equal(t, 3, got.CommentsCount)
}

func TestPostRepository_UpdateBody(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	post := testutil.CreatePost(t, db, ana, "draft", 5)

	require.NoError(t, repo.UpdateBody(ctx, post.ID, "final"))
	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Body)

	err = repo.UpdateBody(ctx, 999, "x")
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestPostRepository_DeleteWithComments(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	post := testutil.CreatePost(t, db, ana, "to delete", 5)
	other := testutil.CreatePost(t, db, ana, "to keep", 5)
	c := testutil.CreateComment(t, db, ana, post, nil, "c1")
	testutil.CreateComment(t, db, ana, post, c, "r1")
	testutil.CreateComment(t, db, ana, other, nil, "stays")

	require.NoError(t, repo.DeleteWithComments(ctx, post.ID))

	var remaining int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", other.ID).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	_, err := repo.GetByID(ctx, post.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	err = repo.DeleteWithComments(ctx, post.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
