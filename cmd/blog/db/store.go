// Package db is responsible for blog service interactions with postgres.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	"github.com/roamvista/roamvista/cmd/blog/model"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewStore creates a Store instance.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Store provides blog service access to postgres.
type Store struct {
	db *gorm.DB
}

// CreatePost creates the passed post. ErrSlugAlreadyInUse is returned when
// the post's slug belongs to an existing post.
func (s Store) CreatePost(ctx context.Context, post *model.Post) error {
	err := s.db.WithContext(ctx).Create(post).Error
	if isUniqueViolation(err) {
		return berrors.ErrSlugAlreadyInUse
	}
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Post retrieves the post associated with the passed ID.
func (s Store) Post(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post := new(model.Post)
	err := s.db.WithContext(ctx).First(post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, berrors.ErrPostDNE
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve post: %w", err)
	}
	return post, nil
}

// PostBySlug retrieves the post associated with the passed slug, decorated
// with its cached author record.
func (s Store) PostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post := new(model.Post)
	err := s.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, berrors.ErrPostDNE
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve post by slug: %w", err)
	}
	return post, nil
}

// PublishedPosts retrieves published posts ordered newest first. The limit
// and offset page through the result set.
func (s Store) PublishedPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("status = ?", model.StatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("retrieve published posts: %w", err)
	}
	return posts, nil
}

// PostsByAuthor retrieves the passed author's posts, drafts included,
// ordered newest first.
func (s Store) PostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ? AND status <> ?", authorID, model.StatusRemoved).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("retrieve posts by author: %w", err)
	}
	return posts, nil
}

// UpdatePost applies the passed changes to the post associated with the
// passed ID.
func (s Store) UpdatePost(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.Post, error) {
	post := new(model.Post)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(post, id).Error; err != nil {
			return err
		}
		return tx.Model(post).Updates(changes).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, berrors.ErrPostDNE
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// PublishPost transitions the post associated with the passed ID to
// published.
func (s Store) PublishPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	now := time.Now()
	return s.UpdatePost(ctx, id, map[string]interface{}{
		"status":       model.StatusPublished,
		"published_at": &now,
	})
}

// UnpublishPost transitions the post associated with the passed ID back to
// draft, clearing its publication time.
func (s Store) UnpublishPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return s.UpdatePost(ctx, id, map[string]interface{}{
		"status":       model.StatusDraft,
		"published_at": nil,
	})
}

// RemovePost transitions the post associated with the passed ID to removed.
func (s Store) RemovePost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return s.UpdatePost(ctx, id, map[string]interface{}{"status": model.StatusRemoved})
}

// RestorePost transitions a removed post back to draft so its author can
// publish it again.
func (s Store) RestorePost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return s.UpdatePost(ctx, id, map[string]interface{}{"status": model.StatusDraft})
}

// CreateComment creates the passed comment.
func (s Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Comment retrieves the comment associated with the passed ID.
func (s Store) Comment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment := new(model.Comment)
	err := s.db.WithContext(ctx).First(comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, berrors.ErrCommentDNE
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve comment: %w", err)
	}
	return comment, nil
}

// Comments retrieves the passed post's comments ordered oldest first, each
// decorated with its cached author record.
func (s Store) Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("retrieve comments: %w", err)
	}
	return comments, nil
}

// RemoveComment deletes the comment associated with the passed ID.
func (s Store) RemoveComment(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("remove comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return berrors.ErrCommentDNE
	}
	return nil
}

// CreateStory creates the passed story.
func (s Store) CreateStory(ctx context.Context, story *model.Story) error {
	if err := s.db.WithContext(ctx).Create(story).Error; err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	return nil
}

// Story retrieves the story associated with the passed ID.
func (s Store) Story(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	story := new(model.Story)
	err := s.db.WithContext(ctx).First(story, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, berrors.ErrStoryDNE
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve story: %w", err)
	}
	return story, nil
}

// Stories retrieves the passed post's stories ordered oldest first, each
// decorated with its cached author record.
func (s Store) Stories(ctx context.Context, postID uuid.UUID) ([]model.Story, error) {
	var stories []model.Story
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&stories).Error
	if err != nil {
		return nil, fmt.Errorf("retrieve stories: %w", err)
	}
	return stories, nil
}

// RemoveStory deletes the story associated with the passed ID.
func (s Store) RemoveStory(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Story{}, id)
	if res.Error != nil {
		return fmt.Errorf("remove story: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return berrors.ErrStoryDNE
	}
	return nil
}

// UpsertAuthor writes the passed author, replacing an existing record with
// the same ID.
func (s Store) UpsertAuthor(ctx context.Context, author *model.Author) error {
	author.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "avatar_url", "updated_at"}),
		}).
		Create(author).Error
	if err != nil {
		return fmt.Errorf("upsert author: %w", err)
	}
	return nil
}

// UpdateAuthorRole writes the passed role to the author record, creating the
// record when it does not exist yet.
func (s Store) UpdateAuthorRole(ctx context.Context, id uuid.UUID, role session.Role) error {
	author := &model.Author{ID: id, Role: role, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(author).Error
	if err != nil {
		return fmt.Errorf("update author role: %w", err)
	}
	return nil
}

// 23505 is the postgres unique_violation code. The postgres driver does not
// expose a typed error at this layer.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
