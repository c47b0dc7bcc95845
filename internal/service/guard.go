package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"dogbook/internal/config"
	apperrors "dogbook/internal/errors"
	"dogbook/internal/model"
)

// Credentials carries whatever the active guard needs to authorize a post
// mutation: the authenticated user in owner mode, the supplied per-post
// password in password mode.
type Credentials struct {
	User     *model.User
	Password string
}

// MutationGuard decides whether a post mutation may proceed. Exactly one
// variant is active per deployment; the two are never combined.
type MutationGuard interface {
	// Stamp attaches the authorization anchor to a post being created.
	Stamp(post *model.Post, creds Credentials) error
	// Authorize reports whether creds may update or delete post. It is
	// always called after the existence check.
	Authorize(post *model.Post, creds Credentials) error
}

// NewMutationGuard selects the guard for the configured auth mode.
func NewMutationGuard(mode string, bcryptCost int) (MutationGuard, error) {
	switch mode {
	case config.AuthModeOwner:
		return OwnerGuard{}, nil
	case config.AuthModePassword:
		return PasswordGuard{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}

// OwnerGuard ties mutations to the post creator's identity.
type OwnerGuard struct{}

func (OwnerGuard) Stamp(post *model.Post, creds Credentials) error {
	if creds.User == nil {
		return apperrors.ErrUnauthenticated
	}
	id := creds.User.ID
	post.UserID = &id
	post.User = creds.User
	return nil
}

func (OwnerGuard) Authorize(post *model.Post, creds Credentials) error {
	if creds.User == nil {
		return apperrors.ErrUnauthenticated
	}
	if post.UserID == nil || *post.UserID != creds.User.ID {
		return apperrors.ErrNotOwner
	}
	return nil
}

// PasswordGuard gates mutations with a per-post secret captured at creation.
type PasswordGuard struct {
	Cost int
}

func (g PasswordGuard) Stamp(post *model.Post, creds Credentials) error {
	if creds.Password == "" {
		return apperrors.Validation("password", "is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), g.Cost)
	if err != nil {
		return fmt.Errorf("hash post password: %w", err)
	}
	post.PasswordHash = string(hash)
	return nil
}

func (g PasswordGuard) Authorize(post *model.Post, creds Credentials) error {
	if bcrypt.CompareHashAndPassword([]byte(post.PasswordHash), []byte(creds.Password)) != nil {
		return apperrors.ErrWrongPostPassword
	}
	return nil
}
