package models

import (
	"time"

	"gorm.io/gorm"
)

// Frustration levels are rated on a closed 1..10 scale.
const (
	MinFrustrationLevel = 1
	MaxFrustrationLevel = 10
)

// Post is a forum entry. Feedback submissions are stored as posts too.
type Post struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Body             string    `gorm:"type:text;not null" json:"body"`
	FrustrationLevel int       `gorm:"not null" json:"frustration_level"`
	ImageURL         string    `json:"image_url,omitempty"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	User             User      `gorm:"foreignKey:UserID" json:"user"`
	Comments         []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->;-:migration" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidFrustrationLevel reports whether level is inside the accepted range.
func ValidFrustrationLevel(level int) bool {
	return level >= MinFrustrationLevel && level <= MaxFrustrationLevel
}
