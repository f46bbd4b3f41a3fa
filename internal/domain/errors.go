package domain

import (
	"errors"
	"fmt"
)

// Бизнес-ошибки (маппятся на HTTP коды в v1.MapDomainError)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrConflict         = errors.New("conflict")           // 409
	ErrTooManyRequests  = errors.New("too_many_requests")  // 429
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Уточнения. Наружу владелец/чужой объект/отсутствие неразличимы.
var (
	ErrInvalidCredentials = fmt.Errorf("invalid_credentials: %w", ErrUnauth)

	ErrUserAlreadyExists   = fmt.Errorf("user_already_exists: %w", ErrConflict)
	ErrFolderAlreadyExists = fmt.Errorf("folder_already_exists: %w", ErrConflict)

	ErrFolderNotFound    = fmt.Errorf("folder_not_found: %w", ErrNotFound)
	ErrFileNotFound      = fmt.Errorf("file_not_found: %w", ErrNotFound)
	ErrShareLinkNotFound = fmt.Errorf("share_link_not_found: %w", ErrNotFound)
	ErrShareLinkDisabled = fmt.Errorf("share_link_disabled: %w", ErrNotFound)
	ErrShareLinkExpired  = fmt.Errorf("share_link_expired: %w", ErrNotFound)
)

// Коды в конверте ошибки
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeForbidden        = 1003
	ErrCodeNotFound         = 1004
	ErrCodeMethodNotAllowed = 1005
	ErrCodeConflict         = 1009
	ErrCodeTooManyRequests  = 1029
	ErrCodeUnexpected       = 1500
)
