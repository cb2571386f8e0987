package usecase

import (
	"errors"
	"math"
	"testing"

	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageInput_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      PageInput
		want    repo.Pagination
		wantErr bool
	}{
		{"defaults", PageInput{}, repo.Pagination{Page: 1, Limit: 20}, false},
		{"explicit", PageInput{Page: 3, Limit: 5}, repo.Pagination{Page: 3, Limit: 5}, false},
		{"max limit", PageInput{Limit: 100}, repo.Pagination{Page: 1, Limit: 100}, false},
		{"negative page", PageInput{Page: -1}, repo.Pagination{}, true},
		{"huge page", PageInput{Page: math.MaxInt, Limit: 20}, repo.Pagination{Page: math.MaxInt, Limit: 20}, false},
		{"limit too large", PageInput{Limit: 101}, repo.Pagination{}, true},
		{"negative limit", PageInput{Limit: -5}, repo.Pagination{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage_Pages(t *testing.T) {
	assert.Equal(t, 0, Page[int]{Total: 0, Limit: 20}.Pages())
	assert.Equal(t, 1, Page[int]{Total: 20, Limit: 20}.Pages())
	assert.Equal(t, 2, Page[int]{Total: 21, Limit: 20}.Pages())
	assert.Equal(t, 0, Page[int]{Total: 5}.Pages())
}

func TestFromRepo(t *testing.T) {
	assert.NoError(t, fromRepo(nil, "x"))

	err := fromRepo(repo.ErrNotFound, "Thing not found")
	assert.ErrorIs(t, err, ErrNotFound)
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Thing not found", e.Message)

	boom := errors.New("boom")
	err = fromRepo(boom, "x")
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, boom)

	//既に変換済みのものはそのまま
	conflict := conflictError("dup")
	assert.Same(t, conflict, fromRepo(conflict, "x"))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, averageRating(repo.ReviewStats{}))
	assert.Equal(t, 4.0, averageRating(repo.ReviewStats{Count: 3, Sum: 12}))
	assert.Equal(t, 4.5, averageRating(repo.ReviewStats{Count: 2, Sum: 9}))
	assert.Equal(t, 3.3, averageRating(repo.ReviewStats{Count: 3, Sum: 10}))
	assert.Equal(t, 4.7, averageRating(repo.ReviewStats{Count: 3, Sum: 14}))
}
