// Package errors defines the blog service's error types.
package errors

import "errors"

// PermissionError indicates the acting user is not permitted to perform the
// attempted interaction.
type PermissionError string

// Error describes the PermissionError instance.
func (e PermissionError) Error() string { return "permission error: " + string(e) }

// AsPermissionError attempts to represent the passed error as a
// PermissionError.
func AsPermissionError(err error) (PermissionError, bool) {
	var permErr PermissionError
	if ok := errors.As(err, &permErr); !ok {
		return "", false
	}
	return permErr, true
}

var (
	// ErrPostDNE indicates that an interaction was attempted against a post
	// that does not exist.
	ErrPostDNE = errors.New("post does not exist")

	// ErrCommentDNE indicates that an interaction was attempted against a
	// comment that does not exist.
	ErrCommentDNE = errors.New("comment does not exist")

	// ErrStoryDNE indicates that an interaction was attempted against a story
	// that does not exist.
	ErrStoryDNE = errors.New("story does not exist")

	// ErrSlugAlreadyInUse indicates a post creation was attempted with a slug
	// that belongs to an existing post.
	ErrSlugAlreadyInUse = errors.New("slug already in use")

	// ErrNotPostAuthor indicates a post interaction was attempted by a user
	// who is neither its author nor an administrator.
	ErrNotPostAuthor = PermissionError("not the post author")

	// ErrNotCommentAuthor indicates a comment removal was attempted by a user
	// who is neither its author nor a moderator.
	ErrNotCommentAuthor = PermissionError("not the comment author")

	// ErrNotStoryAuthor indicates a story removal was attempted by a user who
	// is neither its author nor a moderator.
	ErrNotStoryAuthor = PermissionError("not the story author")

	// ErrNotModerator indicates a moderation interaction was attempted by a
	// user who is not a moderator.
	ErrNotModerator = PermissionError("not a moderator")
)
