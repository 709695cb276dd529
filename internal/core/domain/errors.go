package domain

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("not found")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrInvalidState           = errors.New("invalid session state")
	ErrCommentNotAllowed      = errors.New("comment not allowed")
)
