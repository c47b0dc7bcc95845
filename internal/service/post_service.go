package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "dogbook/internal/errors"
	"dogbook/internal/model"
	"dogbook/internal/repository"
)

// PostInput carries the mutable post fields from a create or update request.
type PostInput struct {
	Title    string
	Content  string
	AgeID    uint
	ImageURL string
}

// PostService provides post CRUD. Reads are public; mutations run through
// the configured MutationGuard. Check order on update and delete is fixed:
// existence, then guard, then age reference.
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, in PostInput, creds Credentials) (*model.Post, error)
	Update(ctx context.Context, id uint, in PostInput, creds Credentials) (*model.Post, error)
	Delete(ctx context.Context, id uint, creds Credentials) error
}

type postService struct {
	posts repository.PostRepository
	ages  repository.AgeRepository
	guard MutationGuard
}

// NewPostService builds a PostService with the active mutation guard.
func NewPostService(posts repository.PostRepository, ages repository.AgeRepository, guard MutationGuard) PostService {
	return &postService{posts: posts, ages: ages, guard: guard}
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx)
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// Create resolves the age reference, stamps the authorization anchor and
// persists. Nothing is written when the age id does not resolve.
func (s *postService) Create(ctx context.Context, in PostInput, creds Credentials) (*model.Post, error) {
	age, err := s.resolveAge(ctx, in.AgeID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    in.Title,
		Content:  in.Content,
		AgeID:    age.ID,
		ImageURL: in.ImageURL,
	}
	if err := s.guard.Stamp(post, creds); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Age = age
	return post, nil
}

func (s *postService) Update(ctx context.Context, id uint, in PostInput, creds Credentials) (*model.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(post, creds); err != nil {
		return nil, err
	}
	age, err := s.resolveAge(ctx, in.AgeID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	post.ImageURL = in.ImageURL
	post.AgeID = age.ID

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	post.Age = age
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uint, creds Credentials) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(post, creds); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *postService) resolveAge(ctx context.Context, ageID uint) (*model.Age, error) {
	age, err := s.ages.FindByID(ctx, ageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidAge
		}
		return nil, fmt.Errorf("find age: %w", err)
	}
	return age, nil
}
