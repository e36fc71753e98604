package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

// PrincipalSource is the storage lookup the resolver needs. It is
// satisfied by repository.UserRepository.
type PrincipalSource interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Resolver recovers the authenticated user behind a bearer token.
// It is the single gate every protected request passes through.
type Resolver struct {
	codec *JWTService
	users PrincipalSource
}

// NewResolver builds a Resolver from a token codec and a user lookup.
func NewResolver(codec *JWTService, users PrincipalSource) *Resolver {
	return &Resolver{codec: codec, users: users}
}

// StorageError marks a transient principal-lookup failure. It surfaces
// as a generic internal error, never as an auth failure.
type StorageError struct {
	err error
}

func (e *StorageError) Error() string { return e.err.Error() }

func (e *StorageError) Unwrap() error { return e.err }

// Resolve decodes the token and loads the principal it names. A decode
// failure and a subject that no longer exists both yield
// ErrUnauthenticated; the caller cannot tell a bad token from a token
// for a deleted account.
func (r *Resolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	userID, err := r.codec.Decode(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, &StorageError{err: fmt.Errorf("load principal %d: %w", userID, err)}
	}
	return user, nil
}

// RequireAdmin passes the principal through unchanged if its admin flag
// is set and fails with ErrForbidden otherwise. It must run after
// resolution; a nil principal is a programming error, not "not admin".
func RequireAdmin(user *model.User) (*model.User, error) {
	if user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if !user.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}
