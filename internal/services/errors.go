package services

import (
	"errors"
	"fmt"
)

// Error kinds. Boundaries match with errors.Is and translate to a status
// code (HTTP) or an error reply on the invoking connection (websocket).
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// Specific failures, each wrapping its kind. GetByID deliberately returns
// ErrChatNotFound only when the chat does not exist at all: existence is
// never leaked to non-members through the error kind.
var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid token: %w", ErrUnauthorized)
	ErrPendingApproval    = fmt.Errorf("account pending admin approval: %w", ErrForbidden)
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrChatNotFound       = fmt.Errorf("chat not found: %w", ErrNotFound)
	ErrNotChatMember      = fmt.Errorf("not a member of this chat: %w", ErrForbidden)
	ErrMessageNotFound    = fmt.Errorf("message not found: %w", ErrNotFound)
	ErrNotMessageOwner    = fmt.Errorf("cannot delete this message: %w", ErrForbidden)
	ErrEmptyMessage       = fmt.Errorf("message must have text or image: %w", ErrForbidden)
	ErrSelfChat           = fmt.Errorf("cannot chat with yourself: %w", ErrInvalidArgument)
	ErrGroupTooSmall      = fmt.Errorf("group must have at least 3 members: %w", ErrInvalidArgument)
)
