package seed

import (
	"testing"
	"time"

	"bridgeforum/internal/models"
	"bridgeforum/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPost_FieldsInRange(t *testing.T) {
	opts := Options{DryRun: true, MaxDays: 30, RandomSeed: 42}
	f := NewFactory(nil, opts)
	user := &models.User{ID: 1}

	for i := 0; i < 50; i++ {
		p := f.BuildPost(user)
		assert.True(t, models.ValidFrustrationLevel(p.FrustrationLevel), "level %d", p.FrustrationLevel)
		assert.NotEmpty(t, p.Body)
		assert.Equal(t, uint(1), p.UserID)
		assert.Less(t, time.Since(p.CreatedAt), time.Duration(opts.MaxDays+1)*24*time.Hour)
	}
}

func TestDryRunAssignsIDs(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	u, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, DefaultPassword, u.Password)

	posts := []*models.Post{f.BuildPost(u), f.BuildPost(u)}
	require.NoError(t, f.CreatePostsBatch(posts))
	assert.NotEqual(t, posts[0].ID, posts[1].ID)
}

func TestSeed_SQLite(t *testing.T) {
	db := testutil.NewTestDB(t)
	admin := testutil.CreateUser(t, db, "profe", "profe@example.com", true)

	res, err := Seed(db, Options{NumUsers: 4, PostsPerUser: 2, CommentsPerPost: 3, SkipBcrypt: true, BatchSize: 3, RandomSeed: 7})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Users)
	assert.Equal(t, 8, res.Posts)

	var posts, comments int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(8), posts)
	assert.Equal(t, int64(res.Comments), comments)

	var nested int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("parent_id IN (SELECT id FROM comments WHERE parent_id IS NOT NULL)").
		Count(&nested).Error)
	assert.Zero(t, nested, "replies never point at replies")

	_, err = Seed(db, Options{NumUsers: 1, ShouldClean: true, SkipBcrypt: true})
	require.NoError(t, err)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(2), users, "clean keeps admins")
	require.NoError(t, db.First(&models.User{}, admin.ID).Error)
}
