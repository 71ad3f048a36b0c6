package model

import (
	"time"

	"github.com/roamvista/roamvista/internal/model"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a post.
type Status string

const (
	// StatusDraft posts are visible to their author and moderators only.
	StatusDraft Status = "draft"

	// StatusPublished posts are publicly visible.
	StatusPublished Status = "published"

	// StatusRemoved posts have been taken down and are no longer served.
	StatusRemoved Status = "removed"
)

// Post is a single entry on the Roamvista community blog.
type Post struct {
	model.Model
	Title         string     `json:"title"`
	Slug          string     `json:"slug" gorm:"uniqueIndex"`
	Body          string     `json:"body"`
	Excerpt       string     `json:"excerpt"`
	CoverImageURL string     `json:"coverImageUrl"`
	AuthorID      uuid.UUID  `json:"authorId"`
	Status        Status     `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt"`

	Author   *Author   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments,omitempty"`
	Stories  []Story   `json:"stories,omitempty"`
}

// Published checks if the post instance is publicly visible.
func (p Post) Published() bool { return p.Status == StatusPublished }

// Comment is a reader response attached to a post.
type Comment struct {
	model.Model
	PostID   uuid.UUID `json:"postId"`
	AuthorID uuid.UUID `json:"authorId"`
	Body     string    `json:"body"`

	Author *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// Story is a follow-up attached to a post by its author after publication;
// trip updates, corrections, and the like.
type Story struct {
	model.Model
	PostID   uuid.UUID `json:"postId"`
	AuthorID uuid.UUID `json:"authorId"`
	Body     string    `json:"body"`

	Author *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// Author is the blog service's local copy of a community member. It is
// maintained from the site event stream so posts and comments render without
// a user service round trip.
type Author struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	DisplayName string       `json:"displayName"`
	AvatarURL   string       `json:"avatarUrl"`
	Role        session.Role `json:"role" gorm:"default:regular"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
