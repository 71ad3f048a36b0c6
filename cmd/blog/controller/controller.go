// Package controller is responsible for blog service business logic.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	"github.com/roamvista/roamvista/cmd/blog/model"
	"github.com/roamvista/roamvista/internal/event"
	"github.com/roamvista/roamvista/internal/rand"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const slugSuffixLength = 6

// IStore encompasses all interactions with the blog store.
type IStore interface {
	CreatePost(ctx context.Context, post *model.Post) error
	Post(ctx context.Context, id uuid.UUID) (*model.Post, error)
	PostBySlug(ctx context.Context, slug string) (*model.Post, error)
	PublishedPosts(ctx context.Context, limit, offset int) ([]model.Post, error)
	PostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.Post, error)
	PublishPost(ctx context.Context, id uuid.UUID) (*model.Post, error)
	RemovePost(ctx context.Context, id uuid.UUID) (*model.Post, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	Comment(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	RemoveComment(ctx context.Context, id uuid.UUID) error
	UnpublishPost(ctx context.Context, id uuid.UUID) (*model.Post, error)
	RestorePost(ctx context.Context, id uuid.UUID) (*model.Post, error)
	CreateStory(ctx context.Context, story *model.Story) error
	Story(ctx context.Context, id uuid.UUID) (*model.Story, error)
	Stories(ctx context.Context, postID uuid.UUID) ([]model.Story, error)
	RemoveStory(ctx context.Context, id uuid.UUID) error
}

// IStream encompasses all write interactions with the event stream.
type IStream interface {
	Write(ctx context.Context, b []byte) error
}

// IBlobStore stores user-uploaded media.
type IBlobStore interface {
	Put(ctx context.Context, key string, b []byte, contentType string) (string, error)
}

// New creates a Controller instance.
func New(logger *zap.Logger, store IStore, stream IStream, blobs IBlobStore) *Controller {
	return &Controller{
		logger: logger,
		store:  store,
		stream: stream,
		blobs:  blobs,
	}
}

// Controller is responsible for blog service business logic.
type Controller struct {
	logger *zap.Logger
	store  IStore
	stream IStream
	blobs  IBlobStore
}

// CreatePostInput is the input for the Controller.CreatePost method.
type CreatePostInput struct {
	Actor                 session.User
	Title                 string
	Body                  string
	Excerpt               string
	CoverImage            []byte
	CoverImageContentType string
}

// CreatePost creates a draft post authored by the acting user. The slug is
// derived from the title; a random suffix resolves collisions.
func (ctrl Controller) CreatePost(ctx context.Context, input CreatePostInput) (*model.Post, error) {
	slug := slugify(input.Title)

	post := &model.Post{
		Title:    input.Title,
		Slug:     slug,
		Body:     input.Body,
		Excerpt:  input.Excerpt,
		AuthorID: input.Actor.ID,
		Status:   model.StatusDraft,
	}

	if len(input.CoverImage) > 0 {
		url, err := ctrl.blobs.Put(
			ctx,
			fmt.Sprintf("covers/%s", slug),
			input.CoverImage,
			input.CoverImageContentType,
		)
		if err != nil {
			return nil, fmt.Errorf("upload cover image: %w", err)
		}
		post.CoverImageURL = url
	}

	err := ctrl.store.CreatePost(ctx, post)
	if errors.Is(err, berrors.ErrSlugAlreadyInUse) {
		suffix, serr := rand.GenerateString(slugSuffixLength)
		if serr != nil {
			return nil, fmt.Errorf("generate slug suffix: %w", serr)
		}
		post.Slug = fmt.Sprintf("%s-%s", slug, strings.ToLower(suffix))
		err = ctrl.store.CreatePost(ctx, post)
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePostInput is the input for the Controller.UpdatePost method.
type UpdatePostInput struct {
	Actor   session.User
	PostID  uuid.UUID
	Title   string
	Body    string
	Excerpt string
}

// UpdatePost applies the passed fields to the post. Only the post's author
// and administrators may update it; denial happens before any write.
func (ctrl Controller) UpdatePost(ctx context.Context, input UpdatePostInput) (*model.Post, error) {
	post, err := ctrl.store.Post(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if err := authorizePostWrite(input.Actor, post); err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	if input.Title != "" {
		changes["title"] = input.Title
	}
	if input.Body != "" {
		changes["body"] = input.Body
	}
	if input.Excerpt != "" {
		changes["excerpt"] = input.Excerpt
	}

	return ctrl.store.UpdatePost(ctx, input.PostID, changes)
}

// PublishPost transitions the post to published and announces it on the
// event stream. Only the post's author and administrators may publish it.
func (ctrl Controller) PublishPost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error) {
	post, err := ctrl.store.Post(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := authorizePostWrite(actor, post); err != nil {
		return nil, err
	}

	published, err := ctrl.store.PublishPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	ctrl.publish(ctx, event.NewPostPublishedEvent(published.ID, published.AuthorID, published.Title))

	return published, nil
}

// RemovePost takes the post down. Only administrators may remove posts.
func (ctrl Controller) RemovePost(ctx context.Context, actor session.User, postID uuid.UUID) error {
	if actor.Role != session.RoleAdmin {
		return berrors.ErrNotPostAuthor
	}

	_, err := ctrl.store.RemovePost(ctx, postID)
	return err
}

// UnpublishPost transitions a published post back to draft, clearing its
// publication timestamp. Only moderators may unpublish posts.
func (ctrl Controller) UnpublishPost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error) {
	if !actor.Role.Moderator() {
		return nil, berrors.ErrNotModerator
	}

	if _, err := ctrl.store.Post(ctx, postID); err != nil {
		return nil, err
	}

	return ctrl.store.UnpublishPost(ctx, postID)
}

// RestorePost transitions a removed post back to draft. Only moderators may
// restore posts.
func (ctrl Controller) RestorePost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error) {
	if !actor.Role.Moderator() {
		return nil, berrors.ErrNotModerator
	}

	if _, err := ctrl.store.Post(ctx, postID); err != nil {
		return nil, err
	}

	return ctrl.store.RestorePost(ctx, postID)
}

// Post retrieves the post associated with the passed slug. Drafts are
// visible to their author and moderators only; removed posts are visible to
// no one. The actor is nil for anonymous readers.
func (ctrl Controller) Post(ctx context.Context, actor *session.User, slug string) (*model.Post, error) {
	post, err := ctrl.store.PostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := authorizePostRead(actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Posts retrieves published posts, newest first.
func (ctrl Controller) Posts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return ctrl.store.PublishedPosts(ctx, limit, offset)
}

// PostsByAuthor retrieves the acting user's posts, drafts included.
func (ctrl Controller) PostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	return ctrl.store.PostsByAuthor(ctx, authorID)
}

// CreateComment attaches a comment to a published post.
func (ctrl Controller) CreateComment(ctx context.Context, actor session.User, postID uuid.UUID, body string) (*model.Comment, error) {
	post, err := ctrl.store.Post(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Published() {
		return nil, berrors.ErrPostDNE
	}

	comment := &model.Comment{
		PostID:   post.ID,
		AuthorID: actor.ID,
		Body:     body,
	}
	if err := ctrl.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Comments retrieves the passed post's comments.
func (ctrl Controller) Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	return ctrl.store.Comments(ctx, postID)
}

// RemoveComment deletes the comment. Only the comment's author and
// moderators may remove it; denial happens before any write.
func (ctrl Controller) RemoveComment(ctx context.Context, actor session.User, commentID uuid.UUID) error {
	comment, err := ctrl.store.Comment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actor.ID && !actor.Role.Moderator() {
		return berrors.ErrNotCommentAuthor
	}

	return ctrl.store.RemoveComment(ctx, commentID)
}

// CreateStory attaches a follow-up story to a published post. Only the
// post's author and administrators may add stories.
func (ctrl Controller) CreateStory(ctx context.Context, actor session.User, postID uuid.UUID, body string) (*model.Story, error) {
	post, err := ctrl.store.Post(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Published() {
		return nil, berrors.ErrPostDNE
	}
	if err := authorizePostWrite(actor, post); err != nil {
		return nil, err
	}

	story := &model.Story{
		PostID:   post.ID,
		AuthorID: actor.ID,
		Body:     body,
	}
	if err := ctrl.store.CreateStory(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// Stories retrieves the passed post's follow-up stories, oldest first.
// Stories follow the owning post's visibility.
func (ctrl Controller) Stories(ctx context.Context, actor *session.User, postID uuid.UUID) ([]model.Story, error) {
	post, err := ctrl.store.Post(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := authorizePostRead(actor, post); err != nil {
		return nil, err
	}

	return ctrl.store.Stories(ctx, postID)
}

// RemoveStory deletes the story. Only the story's author and moderators may
// remove it; denial happens before any write.
func (ctrl Controller) RemoveStory(ctx context.Context, actor session.User, storyID uuid.UUID) error {
	story, err := ctrl.store.Story(ctx, storyID)
	if err != nil {
		return err
	}
	if story.AuthorID != actor.ID && !actor.Role.Moderator() {
		return berrors.ErrNotStoryAuthor
	}

	return ctrl.store.RemoveStory(ctx, storyID)
}

// publish writes the passed event to the event stream. Publishing is
// best-effort; a stream error never fails the owning operation.
func (ctrl Controller) publish(ctx context.Context, e interface{}) {
	b, err := json.Marshal(e)
	if err != nil {
		ctrl.logger.Error("marshal event", zap.Error(err))
		return
	}
	if err := ctrl.stream.Write(ctx, b); err != nil {
		ctrl.logger.Error("write event", zap.Error(err))
	}
}

func authorizePostWrite(actor session.User, post *model.Post) error {
	if actor.ID != post.AuthorID && actor.Role != session.RoleAdmin {
		return berrors.ErrNotPostAuthor
	}
	return nil
}

func authorizePostRead(actor *session.User, post *model.Post) error {
	if post.Published() {
		return nil
	}
	if post.Status == model.StatusRemoved {
		return berrors.ErrPostDNE
	}
	if actor == nil || (actor.ID != post.AuthorID && !actor.Role.Moderator()) {
		return berrors.ErrPostDNE
	}
	return nil
}

var (
	slugStripRE    = regexp.MustCompile(`[^a-z0-9 -]`)
	slugCollapseRE = regexp.MustCompile(`[ -]+`)
)

// slugify derives a URL path segment from the passed title.
func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRE.ReplaceAllString(slug, "")
	slug = slugCollapseRE.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
