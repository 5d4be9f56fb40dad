package service

import (
	"errors"

	"mediaminder/internal/microservices/http-api/repository"
)

// Kind classifies service failures; handlers map each kind to one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is the error type returned by every service. Message is safe to show
// to clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind and message so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, KindInternal for anything unclassified.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

var (
	ErrMissingFields       = Validation("missing required fields")
	ErrCredentialsRequired = Validation("email and password required")
	ErrTitleRequired       = Validation("title required for new media")
	ErrInvalidMediaType    = Validation("invalid media type")
	ErrInvalidStatus       = Validation("status must be between 1 and 20 characters")
	ErrInvalidRating       = Validation("rating must be between 0 and 10")
	ErrEmptyUsername       = Validation("username cannot be empty")
	ErrEmptyEmail          = Validation("email cannot be empty")
	ErrUsernameTooLong     = Validation("username must be at most 50 characters")
	ErrEmailTooLong        = Validation("email must be at most 100 characters")
	ErrPasswordTooLong     = Validation("password must be at most 72 bytes")
	ErrExternalIDTooLong   = Validation("media_id must be at most 50 characters")
	ErrTitleTooLong        = Validation("title must be at most 255 characters")
	ErrPosterPathTooLong   = Validation("poster_path must be at most 255 characters")

	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrMissingToken       = Unauthorized("missing token")
	ErrExpiredToken       = Unauthorized("token expired")
	ErrInvalidToken       = Unauthorized("invalid token")

	ErrEmailInUse     = Conflict("email already registered")
	ErrNameInUse      = Conflict("username already taken")
	ErrAlreadyInList  = Conflict("media already in your list")
	ErrDuplicateEntry = Conflict("resource already exists")

	ErrItemNotFound  = NotFound("media item not found")
	ErrUserNotFound  = NotFound("user not found")
	ErrMediaNotFound = NotFound("media not found")
)

// fromStore converts an error coming out of a repository or transaction into
// a service error. Unique violations that surface only at commit become
// conflicts naming the violated field.
func fromStore(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	if constraint, ok := repository.IsDuplicate(err); ok {
		return conflictFor(constraint)
	}
	return Internal(err)
}

func conflictFor(constraint string) *Error {
	switch constraint {
	case repository.ConstraintUsersEmail:
		return ErrEmailInUse
	case repository.ConstraintUsersUsername:
		return ErrNameInUse
	case repository.ConstraintUserMediaOwner:
		return ErrAlreadyInList
	default:
		return ErrDuplicateEntry
	}
}
