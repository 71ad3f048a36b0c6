package db

import (
	"context"
	"errors"

	"github.com/roamvista/roamvista/cmd/blog/model"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewStoreMock creates a new StoreMock instance.
func NewStoreMock(options ...StoreMockOption) *StoreMock {
	mock := &StoreMock{}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// StoreMockOption is a function type that may configure a StoreMock
// instance.
type StoreMockOption func(*StoreMock)

// WithCreatePost returns a StoreMockOption that configures a StoreMock to
// call fn when CreatePost is called.
func WithCreatePost(fn func(ctx context.Context, post *model.Post) error) StoreMockOption {
	return func(mock *StoreMock) { mock.createPost = fn }
}

// WithPost returns a StoreMockOption that configures a StoreMock to call fn
// when Post is called.
func WithPost(fn func(ctx context.Context, id uuid.UUID) (*model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.post = fn }
}

// WithPostBySlug returns a StoreMockOption that configures a StoreMock to
// call fn when PostBySlug is called.
func WithPostBySlug(fn func(ctx context.Context, slug string) (*model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.postBySlug = fn }
}

// WithPublishedPosts returns a StoreMockOption that configures a StoreMock
// to call fn when PublishedPosts is called.
func WithPublishedPosts(fn func(ctx context.Context, limit, offset int) ([]model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.publishedPosts = fn }
}

// WithPostsByAuthor returns a StoreMockOption that configures a StoreMock to
// call fn when PostsByAuthor is called.
func WithPostsByAuthor(fn func(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.postsByAuthor = fn }
}

// WithUpdatePost returns a StoreMockOption that configures a StoreMock to
// call fn when UpdatePost is called.
func WithUpdatePost(fn func(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.updatePost = fn }
}

// WithPublishPost returns a StoreMockOption that configures a StoreMock to
// call fn when PublishPost is called.
func WithPublishPost(fn func(ctx context.Context, id uuid.UUID) (*model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.publishPost = fn }
}

// WithRemovePost returns a StoreMockOption that configures a StoreMock to
// call fn when RemovePost is called.
func WithRemovePost(fn func(ctx context.Context, id uuid.UUID) (*model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.removePost = fn }
}

// WithCreateComment returns a StoreMockOption that configures a StoreMock to
// call fn when CreateComment is called.
func WithCreateComment(fn func(ctx context.Context, comment *model.Comment) error) StoreMockOption {
	return func(mock *StoreMock) { mock.createComment = fn }
}

// WithComment returns a StoreMockOption that configures a StoreMock to call
// fn when Comment is called.
func WithComment(fn func(ctx context.Context, id uuid.UUID) (*model.Comment, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.comment = fn }
}

// WithComments returns a StoreMockOption that configures a StoreMock to call
// fn when Comments is called.
func WithComments(fn func(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.comments = fn }
}

// WithRemoveComment returns a StoreMockOption that configures a StoreMock to
// call fn when RemoveComment is called.
func WithRemoveComment(fn func(ctx context.Context, id uuid.UUID) error) StoreMockOption {
	return func(mock *StoreMock) { mock.removeComment = fn }
}

// WithUpsertAuthor returns a StoreMockOption that configures a StoreMock to
// call fn when UpsertAuthor is called.
func WithUpsertAuthor(fn func(ctx context.Context, author *model.Author) error) StoreMockOption {
	return func(mock *StoreMock) { mock.upsertAuthor = fn }
}

// WithUnpublishPost returns a StoreMockOption that configures a StoreMock to
// call fn when UnpublishPost is called.
func WithUnpublishPost(fn func(ctx context.Context, id uuid.UUID) (*model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.unpublishPost = fn }
}

// WithRestorePost returns a StoreMockOption that configures a StoreMock to
// call fn when RestorePost is called.
func WithRestorePost(fn func(ctx context.Context, id uuid.UUID) (*model.Post, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.restorePost = fn }
}

// WithCreateStory returns a StoreMockOption that configures a StoreMock to
// call fn when CreateStory is called.
func WithCreateStory(fn func(ctx context.Context, story *model.Story) error) StoreMockOption {
	return func(mock *StoreMock) { mock.createStory = fn }
}

// WithStory returns a StoreMockOption that configures a StoreMock to call fn
// when Story is called.
func WithStory(fn func(ctx context.Context, id uuid.UUID) (*model.Story, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.story = fn }
}

// WithStories returns a StoreMockOption that configures a StoreMock to call
// fn when Stories is called.
func WithStories(fn func(ctx context.Context, postID uuid.UUID) ([]model.Story, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.stories = fn }
}

// WithRemoveStory returns a StoreMockOption that configures a StoreMock to
// call fn when RemoveStory is called.
func WithRemoveStory(fn func(ctx context.Context, id uuid.UUID) error) StoreMockOption {
	return func(mock *StoreMock) { mock.removeStory = fn }
}

// WithUpdateAuthorRole returns a StoreMockOption that configures a StoreMock
// to call fn when UpdateAuthorRole is called.
func WithUpdateAuthorRole(fn func(ctx context.Context, id uuid.UUID, role session.Role) error) StoreMockOption {
	return func(mock *StoreMock) { mock.updateAuthorRole = fn }
}

// StoreMock provides an implementation for mock blog store interactions.
// This is typically used for unit-testing.
type StoreMock struct {
	createPost     func(ctx context.Context, post *model.Post) error
	post           func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	postBySlug     func(ctx context.Context, slug string) (*model.Post, error)
	publishedPosts func(ctx context.Context, limit, offset int) ([]model.Post, error)
	postsByAuthor  func(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)
	updatePost     func(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.Post, error)
	publishPost    func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	removePost     func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	createComment  func(ctx context.Context, comment *model.Comment) error
	comment        func(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	comments       func(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	removeComment  func(ctx context.Context, id uuid.UUID) error
	upsertAuthor   func(ctx context.Context, author *model.Author) error

	unpublishPost    func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	restorePost      func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	createStory      func(ctx context.Context, story *model.Story) error
	story            func(ctx context.Context, id uuid.UUID) (*model.Story, error)
	stories          func(ctx context.Context, postID uuid.UUID) ([]model.Story, error)
	removeStory      func(ctx context.Context, id uuid.UUID) error
	updateAuthorRole func(ctx context.Context, id uuid.UUID, role session.Role) error
}

// CreatePost calls the function configured with WithCreatePost.
func (mock StoreMock) CreatePost(ctx context.Context, post *model.Post) error {
	if mock.createPost == nil {
		return errUnconfigured
	}
	return mock.createPost(ctx, post)
}

// Post calls the function configured with WithPost.
func (mock StoreMock) Post(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if mock.post == nil {
		return nil, errUnconfigured
	}
	return mock.post(ctx, id)
}

// PostBySlug calls the function configured with WithPostBySlug.
func (mock StoreMock) PostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	if mock.postBySlug == nil {
		return nil, errUnconfigured
	}
	return mock.postBySlug(ctx, slug)
}

// PublishedPosts calls the function configured with WithPublishedPosts.
func (mock StoreMock) PublishedPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if mock.publishedPosts == nil {
		return nil, errUnconfigured
	}
	return mock.publishedPosts(ctx, limit, offset)
}

// PostsByAuthor calls the function configured with WithPostsByAuthor.
func (mock StoreMock) PostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	if mock.postsByAuthor == nil {
		return nil, errUnconfigured
	}
	return mock.postsByAuthor(ctx, authorID)
}

// UpdatePost calls the function configured with WithUpdatePost.
func (mock StoreMock) UpdatePost(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.Post, error) {
	if mock.updatePost == nil {
		return nil, errUnconfigured
	}
	return mock.updatePost(ctx, id, changes)
}

// PublishPost calls the function configured with WithPublishPost.
func (mock StoreMock) PublishPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if mock.publishPost == nil {
		return nil, errUnconfigured
	}
	return mock.publishPost(ctx, id)
}

// RemovePost calls the function configured with WithRemovePost.
func (mock StoreMock) RemovePost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if mock.removePost == nil {
		return nil, errUnconfigured
	}
	return mock.removePost(ctx, id)
}

// CreateComment calls the function configured with WithCreateComment.
func (mock StoreMock) CreateComment(ctx context.Context, comment *model.Comment) error {
	if mock.createComment == nil {
		return errUnconfigured
	}
	return mock.createComment(ctx, comment)
}

// Comment calls the function configured with WithComment.
func (mock StoreMock) Comment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if mock.comment == nil {
		return nil, errUnconfigured
	}
	return mock.comment(ctx, id)
}

// Comments calls the function configured with WithComments.
func (mock StoreMock) Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	if mock.comments == nil {
		return nil, errUnconfigured
	}
	return mock.comments(ctx, postID)
}

// RemoveComment calls the function configured with WithRemoveComment.
func (mock StoreMock) RemoveComment(ctx context.Context, id uuid.UUID) error {
	if mock.removeComment == nil {
		return errUnconfigured
	}
	return mock.removeComment(ctx, id)
}

// UpsertAuthor calls the function configured with WithUpsertAuthor.
func (mock StoreMock) UpsertAuthor(ctx context.Context, author *model.Author) error {
	if mock.upsertAuthor == nil {
		return errUnconfigured
	}
	return mock.upsertAuthor(ctx, author)
}

// UnpublishPost calls the function configured with WithUnpublishPost.
func (mock StoreMock) UnpublishPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if mock.unpublishPost == nil {
		return nil, errUnconfigured
	}
	return mock.unpublishPost(ctx, id)
}

// RestorePost calls the function configured with WithRestorePost.
func (mock StoreMock) RestorePost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if mock.restorePost == nil {
		return nil, errUnconfigured
	}
	return mock.restorePost(ctx, id)
}

// CreateStory calls the function configured with WithCreateStory.
func (mock StoreMock) CreateStory(ctx context.Context, story *model.Story) error {
	if mock.createStory == nil {
		return errUnconfigured
	}
	return mock.createStory(ctx, story)
}

// Story calls the function configured with WithStory.
func (mock StoreMock) Story(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	if mock.story == nil {
		return nil, errUnconfigured
	}
	return mock.story(ctx, id)
}

// Stories calls the function configured with WithStories.
func (mock StoreMock) Stories(ctx context.Context, postID uuid.UUID) ([]model.Story, error) {
	if mock.stories == nil {
		return nil, errUnconfigured
	}
	return mock.stories(ctx, postID)
}

// RemoveStory calls the function configured with WithRemoveStory.
func (mock StoreMock) RemoveStory(ctx context.Context, id uuid.UUID) error {
	if mock.removeStory == nil {
		return errUnconfigured
	}
	return mock.removeStory(ctx, id)
}

// UpdateAuthorRole calls the function configured with WithUpdateAuthorRole.
func (mock StoreMock) UpdateAuthorRole(ctx context.Context, id uuid.UUID, role session.Role) error {
	if mock.updateAuthorRole == nil {
		return errUnconfigured
	}
	return mock.updateAuthorRole(ctx, id, role)
}
