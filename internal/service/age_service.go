package service

import (
	"context"
	"encoding/json"
	"time"

	"dogbook/internal/cache"
	"dogbook/internal/model"
	"dogbook/internal/repository"
)

const (
	ageCacheKey = "ages:all"
	ageCacheTTL = 10 * time.Minute
)

// defaultAges is the reference data seeded when the table is empty.
var defaultAges = []model.Age{
	{Value: "puppy", SortOrder: 1},
	{Value: "adult", SortOrder: 2},
	{Value: "senior", SortOrder: 3},
}

// AgeService exposes the static age reference data.
type AgeService interface {
	List(ctx context.Context) ([]model.Age, error)
	Seed(ctx context.Context) error
}

type ageService struct {
	repo  repository.AgeRepository
	cache *cache.Client
}

// NewAgeService builds an AgeService with repository and cache.
func NewAgeService(repo repository.AgeRepository, cache *cache.Client) AgeService {
	return &ageService{repo: repo, cache: cache}
}

// List returns all ages ascending by sort order. The set changes only at
// seeding time, so a short cache is safe.
func (s *ageService) List(ctx context.Context) ([]model.Age, error) {
	if data, _ := s.cache.Get(ctx, ageCacheKey); data != nil {
		var cached []model.Age
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	ages, err := s.repo.ListBySortOrder(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ages); err == nil {
		_ = s.cache.Set(ctx, ageCacheKey, payload, ageCacheTTL)
	}
	return ages, nil
}

// Seed inserts the default age rows when the table is empty.
func (s *ageService) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := range defaultAges {
		age := defaultAges[i]
		if err := s.repo.Create(ctx, &age); err != nil {
			return err
		}
	}
	_ = s.cache.Delete(ctx, ageCacheKey)
	return nil
}
