package domain

import "errors"

// Sentinel errors for every expected failure mode. Handlers never branch on
// these directly; the central HTTP error handler maps them to status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New("invalid role assignment")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrUploadFailed       = errors.New("media upload failed")
)
