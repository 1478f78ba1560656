package testutil

import (
	"fmt"
	"strings"
	"testing"

	"bridgeforum/internal/database"
	"bridgeforum/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the forum schema applied.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t testing.TB, db *gorm.DB, username, email string, admin bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Username: username, Email: email, Password: string(hash), IsAdmin: admin}
	require.NoError(t, db.Create(u).Error)
	return u
}

// TestPassword is the plain password of users made by CreateUser.
const TestPassword = "password123"

// CreatePost inserts a post by user.
func CreatePost(t testing.TB, db *gorm.DB, user *models.User, body string, level int) *models.Post {
	t.Helper()
	p := &models.Post{Body: body, FrustrationLevel: level, UserID: user.ID}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateComment inserts a comment on post, replying to parent when it is non-nil.
func CreateComment(t testing.TB, db *gorm.DB, user *models.User, post *models.Post, parent *models.Comment, body string) *models.Comment {
	t.Helper()
	c := &models.Comment{Body: body, UserID: user.ID, PostID: post.ID}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
