package model

import "errors"

// BackendError is the single error kind the data-access facade surfaces to
// its callers. The originating platform detail (network, validation,
// authorization, not-found) is discarded; Message is a fixed,
// operation-specific string the UI presents directly as user-facing text.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string { return e.Message }

// NewBackendError builds a BackendError with the given user-facing message.
func NewBackendError(message string) *BackendError {
	return &BackendError{Message: message}
}

// IsBackendError reports whether err is, or wraps, a BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// Fixed facade messages. Each facade operation collapses every failure mode
// into exactly one of these; SearchPosts is the one exception and forwards
// the underlying error text instead.
const (
	MsgAccountCreateFailed = "account creation failed"
	MsgSignInFailed        = "sign-in failed"
	MsgAccountFetchFailed  = "account fetch failed"
	MsgSignOutFailed       = "sign-out failed"
	MsgUploadFailed        = "upload failed"
	MsgInvalidFileType     = "invalid file type"
	MsgPreviewFetchFailed  = "preview fetch failed"
	MsgPostCreateFailed    = "post creation failed"
	MsgFetchAllFailed      = "fetch all posts failed"
	MsgFetchUserFailed     = "fetch user posts failed"
	MsgFetchLatestFailed   = "fetch latest posts failed"
	MsgEmptyResult         = "empty result"
)
