package domain

import "errors"

var (
	ErrNotFound            = errors.New("project not found")
	ErrMemberNotFound      = errors.New("team member not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrValidation          = errors.New("required field is empty")
	ErrInvalidStatus       = errors.New("invalid project status")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrUnknownDocumentType = errors.New("unknown document type")
)
