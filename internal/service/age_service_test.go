package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dogbook/internal/cache"
	"dogbook/internal/model"
)

func TestAgeService_List(t *testing.T) {
	ages := []model.Age{
		{ID: 1, Value: "puppy", SortOrder: 1},
		{ID: 2, Value: "adult", SortOrder: 2},
		{ID: 3, Value: "senior", SortOrder: 3},
	}

	repo := new(MockAgeRepository)
	repo.On("ListBySortOrder", mock.Anything).Return(ages, nil)

	svc := NewAgeService(repo, (*cache.Client)(nil))
	got, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].SortOrder, got[i].SortOrder)
	}
	assert.Equal(t, "puppy", got[0].Value)
	assert.Equal(t, "senior", got[2].Value)
}

func TestAgeService_Seed(t *testing.T) {
	t.Run("empty table is seeded with the three categories", func(t *testing.T) {
		repo := new(MockAgeRepository)
		repo.On("Count", mock.Anything).Return(int64(0), nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Age")).Return(nil).Times(3)

		svc := NewAgeService(repo, (*cache.Client)(nil))
		assert.NoError(t, svc.Seed(context.Background()))
		repo.AssertExpectations(t)
	})

	t.Run("seeding again is a no-op", func(t *testing.T) {
		repo := new(MockAgeRepository)
		repo.On("Count", mock.Anything).Return(int64(3), nil)

		svc := NewAgeService(repo, (*cache.Client)(nil))
		assert.NoError(t, svc.Seed(context.Background()))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
