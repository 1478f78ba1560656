package seed

import (
	"fmt"
	"log"

	"bridgeforum/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	PostsPerUser    int
	CommentsPerPost int
	ShouldClean     bool
	SkipBcrypt      bool
	DryRun          bool
	BatchSize       int
	MaxDays         int
	RandomSeed      int64
}

// Result counts what a run created.
type Result struct {
	Users    int
	Posts    int
	Comments int
}

// Seeder fills the forum with students, weekly posts and comment threads.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// Seed populates the database with demo data
func Seed(db *gorm.DB, opts Options) (Result, error) {
	return NewSeeder(db, opts).Run()
}

// Run creates NumUsers students, PostsPerUser posts each and up to CommentsPerPost comments per post.
// A third of the comments are replies to an earlier top-level comment.
func (s *Seeder) Run() (Result, error) {
	var res Result
	log.Printf("🌱 Starting database seeding with %d users...", s.opts.NumUsers)

	if s.opts.ShouldClean && !s.opts.DryRun {
		if err := clearData(s.db); err != nil {
			return res, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		u, err := s.factory.CreateUser()
		if err != nil {
			return res, fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, u)
	}
	res.Users = len(users)
	log.Printf("✓ %d users created", res.Users)
	if len(users) == 0 {
		return res, nil
	}

	posts := make([]*models.Post, 0, len(users)*s.opts.PostsPerUser)
	for _, u := range users {
		for i := 0; i < s.opts.PostsPerUser; i++ {
			posts = append(posts, s.factory.BuildPost(u))
		}
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return res, fmt.Errorf("failed to create posts: %w", err)
	}
	res.Posts = len(posts)
	log.Printf("✓ %d posts created", res.Posts)

	for _, p := range posts {
		n := 0
		if s.opts.CommentsPerPost > 0 {
			n = s.factory.rnd.Intn(s.opts.CommentsPerPost + 1)
		}
		var tops []*models.Comment
		for i := 0; i < n; i++ {
			author := users[s.factory.rnd.Intn(len(users))]
			var parent *models.Comment
			if len(tops) > 0 && s.factory.rnd.Intn(3) == 0 {
				parent = tops[s.factory.rnd.Intn(len(tops))]
			}
			c, err := s.factory.CreateComment(author, p, parent)
			if err != nil {
				return res, fmt.Errorf("failed to create comments: %w", err)
			}
			if parent == nil {
				tops = append(tops, c)
			}
			res.Comments++
		}
	}
	log.Printf("✓ %d comments created", res.Comments)

	log.Println("🎉 Database seeding completed successfully!")
	return res, nil
}

// clearData removes forum content and non-admin accounts. Admins survive a reseed.
func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("is_admin = ?", false).Delete(&models.User{}).Error
	})
}
