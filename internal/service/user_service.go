package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "dogbook/internal/errors"
	"dogbook/internal/model"
	"dogbook/internal/repository"
)

// UserService handles registration and account lookup.
type UserService interface {
	Register(ctx context.Context, userName, email, password string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, bcryptCost int) UserService {
	return &userService{repo: repo, bcryptCost: bcryptCost}
}

// Register creates a user with a hashed password. Email uniqueness is
// checked before insert; a duplicate never overwrites the existing row.
func (s *userService) Register(ctx context.Context, userName, email, password string) (*model.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}
