package rest

import (
	"context"
	"errors"

	"github.com/roamvista/roamvista/cmd/blog/controller"
	"github.com/roamvista/roamvista/cmd/blog/model"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

var errUnconfigured = errors.New("mock unconfigured")

// NewControllerMock creates a ControllerMock instance.
func NewControllerMock(options ...ControllerMockOption) *ControllerMock {
	mock := &ControllerMock{}
	for _, option := range options {
		option(mock)
	}
	return mock
}

// ControllerMockOption is a function type that may configure a ControllerMock
// instance.
type ControllerMockOption func(*ControllerMock)

// WithCreatePost returns a ControllerMockOption that configures the
// ControllerMock's CreatePost implementation.
func WithCreatePost(fn func(context.Context, controller.CreatePostInput) (*model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.createPost = fn }
}

// WithUpdatePost returns a ControllerMockOption that configures the
// ControllerMock's UpdatePost implementation.
func WithUpdatePost(fn func(context.Context, controller.UpdatePostInput) (*model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.updatePost = fn }
}

// WithPublishPost returns a ControllerMockOption that configures the
// ControllerMock's PublishPost implementation.
func WithPublishPost(fn func(context.Context, session.User, uuid.UUID) (*model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.publishPost = fn }
}

// WithRemovePost returns a ControllerMockOption that configures the
// ControllerMock's RemovePost implementation.
func WithRemovePost(fn func(context.Context, session.User, uuid.UUID) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.removePost = fn }
}

// WithPost returns a ControllerMockOption that configures the
// ControllerMock's Post implementation.
func WithPost(fn func(context.Context, *session.User, string) (*model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.post = fn }
}

// WithPosts returns a ControllerMockOption that configures the
// ControllerMock's Posts implementation.
func WithPosts(fn func(context.Context, int, int) ([]model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.posts = fn }
}

// WithPostsByAuthor returns a ControllerMockOption that configures the
// ControllerMock's PostsByAuthor implementation.
func WithPostsByAuthor(fn func(context.Context, uuid.UUID) ([]model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.postsByAuthor = fn }
}

// WithCreateComment returns a ControllerMockOption that configures the
// ControllerMock's CreateComment implementation.
func WithCreateComment(fn func(context.Context, session.User, uuid.UUID, string) (*model.Comment, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.createComment = fn }
}

// WithComments returns a ControllerMockOption that configures the
// ControllerMock's Comments implementation.
func WithComments(fn func(context.Context, uuid.UUID) ([]model.Comment, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.comments = fn }
}

// WithRemoveComment returns a ControllerMockOption that configures the
// ControllerMock's RemoveComment implementation.
func WithRemoveComment(fn func(context.Context, session.User, uuid.UUID) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.removeComment = fn }
}

// WithUnpublishPost returns a ControllerMockOption that configures the
// ControllerMock's UnpublishPost implementation.
func WithUnpublishPost(fn func(context.Context, session.User, uuid.UUID) (*model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.unpublishPost = fn }
}

// WithRestorePost returns a ControllerMockOption that configures the
// ControllerMock's RestorePost implementation.
func WithRestorePost(fn func(context.Context, session.User, uuid.UUID) (*model.Post, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.restorePost = fn }
}

// WithCreateStory returns a ControllerMockOption that configures the
// ControllerMock's CreateStory implementation.
func WithCreateStory(fn func(context.Context, session.User, uuid.UUID, string) (*model.Story, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.createStory = fn }
}

// WithStories returns a ControllerMockOption that configures the
// ControllerMock's Stories implementation.
func WithStories(fn func(context.Context, *session.User, uuid.UUID) ([]model.Story, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.stories = fn }
}

// WithRemoveStory returns a ControllerMockOption that configures the
// ControllerMock's RemoveStory implementation.
func WithRemoveStory(fn func(context.Context, session.User, uuid.UUID) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.removeStory = fn }
}

// ControllerMock is responsible for mocking blog controller logic. Typically
// used for testing purposes.
type ControllerMock struct {
	createPost    func(context.Context, controller.CreatePostInput) (*model.Post, error)
	updatePost    func(context.Context, controller.UpdatePostInput) (*model.Post, error)
	publishPost   func(context.Context, session.User, uuid.UUID) (*model.Post, error)
	removePost    func(context.Context, session.User, uuid.UUID) error
	post          func(context.Context, *session.User, string) (*model.Post, error)
	posts         func(context.Context, int, int) ([]model.Post, error)
	postsByAuthor func(context.Context, uuid.UUID) ([]model.Post, error)
	createComment func(context.Context, session.User, uuid.UUID, string) (*model.Comment, error)
	comments      func(context.Context, uuid.UUID) ([]model.Comment, error)
	removeComment func(context.Context, session.User, uuid.UUID) error
	unpublishPost func(context.Context, session.User, uuid.UUID) (*model.Post, error)
	restorePost   func(context.Context, session.User, uuid.UUID) (*model.Post, error)
	createStory   func(context.Context, session.User, uuid.UUID, string) (*model.Story, error)
	stories       func(context.Context, *session.User, uuid.UUID) ([]model.Story, error)
	removeStory   func(context.Context, session.User, uuid.UUID) error
}

// CreatePost calls the configured CreatePost implementation.
func (m ControllerMock) CreatePost(ctx context.Context, input controller.CreatePostInput) (*model.Post, error) {
	if m.createPost == nil {
		return nil, errUnconfigured
	}
	return m.createPost(ctx, input)
}

// UpdatePost calls the configured UpdatePost implementation.
func (m ControllerMock) UpdatePost(ctx context.Context, input controller.UpdatePostInput) (*model.Post, error) {
	if m.updatePost == nil {
		return nil, errUnconfigured
	}
	return m.updatePost(ctx, input)
}

// PublishPost calls the configured PublishPost implementation.
func (m ControllerMock) PublishPost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error) {
	if m.publishPost == nil {
		return nil, errUnconfigured
	}
	return m.publishPost(ctx, actor, postID)
}

// RemovePost calls the configured RemovePost implementation.
func (m ControllerMock) RemovePost(ctx context.Context, actor session.User, postID uuid.UUID) error {
	if m.removePost == nil {
		return errUnconfigured
	}
	return m.removePost(ctx, actor, postID)
}

// Post calls the configured Post implementation.
func (m ControllerMock) Post(ctx context.Context, actor *session.User, slug string) (*model.Post, error) {
	if m.post == nil {
		return nil, errUnconfigured
	}
	return m.post(ctx, actor, slug)
}

// Posts calls the configured Posts implementation.
func (m ControllerMock) Posts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if m.posts == nil {
		return nil, errUnconfigured
	}
	return m.posts(ctx, limit, offset)
}

// PostsByAuthor calls the configured PostsByAuthor implementation.
func (m ControllerMock) PostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	if m.postsByAuthor == nil {
		return nil, errUnconfigured
	}
	return m.postsByAuthor(ctx, authorID)
}

// CreateComment calls the configured CreateComment implementation.
func (m ControllerMock) CreateComment(ctx context.Context, actor session.User, postID uuid.UUID, body string) (*model.Comment, error) {
	if m.createComment == nil {
		return nil, errUnconfigured
	}
	return m.createComment(ctx, actor, postID, body)
}

// Comments calls the configured Comments implementation.
func (m ControllerMock) Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	if m.comments == nil {
		return nil, errUnconfigured
	}
	return m.comments(ctx, postID)
}

// RemoveComment calls the configured RemoveComment implementation.
func (m ControllerMock) RemoveComment(ctx context.Context, actor session.User, commentID uuid.UUID) error {
	if m.removeComment == nil {
		return errUnconfigured
	}
	return m.removeComment(ctx, actor, commentID)
}

// UnpublishPost calls the configured UnpublishPost implementation.
func (m ControllerMock) UnpublishPost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error) {
	if m.unpublishPost == nil {
		return nil, errUnconfigured
	}
	return m.unpublishPost(ctx, actor, postID)
}

// RestorePost calls the configured RestorePost implementation.
func (m ControllerMock) RestorePost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error) {
	if m.restorePost == nil {
		return nil, errUnconfigured
	}
	return m.restorePost(ctx, actor, postID)
}

// CreateStory calls the configured CreateStory implementation.
func (m ControllerMock) CreateStory(ctx context.Context, actor session.User, postID uuid.UUID, body string) (*model.Story, error) {
	if m.createStory == nil {
		return nil, errUnconfigured
	}
	return m.createStory(ctx, actor, postID, body)
}

// Stories calls the configured Stories implementation.
func (m ControllerMock) Stories(ctx context.Context, actor *session.User, postID uuid.UUID) ([]model.Story, error) {
	if m.stories == nil {
		return nil, errUnconfigured
	}
	return m.stories(ctx, actor, postID)
}

// RemoveStory calls the configured RemoveStory implementation.
func (m ControllerMock) RemoveStory(ctx context.Context, actor session.User, storyID uuid.UUID) error {
	if m.removeStory == nil {
		return errUnconfigured
	}
	return m.removeStory(ctx, actor, storyID)
}
