package memory

import (
	"context"
	"testing"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.Save(ctx, domain.Product{ID: id, Name: id})
		require.NoError(t, err)
	}

	// Updating keeps the original position
	_, err := repo.Save(ctx, domain.Product{ID: "c", Name: "updated"})
	require.NoError(t, err)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "c", products[0].ID)
	assert.Equal(t, "updated", products[0].Name)
	assert.Equal(t, "a", products[1].ID)
	assert.Equal(t, "b", products[2].ID)
}

func TestProductRepository_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	saved, err := repo.Save(ctx, domain.Product{ID: "x", Name: "X"})
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := repo.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "X", got.Name)

	require.NoError(t, repo.Delete(ctx, "x"))

	_, err = repo.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "x"), domain.ErrNotFound)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_RequiresID(t *testing.T) {
	_, err := NewProductRepository().Save(context.Background(), domain.Product{Name: "no id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepository_SaveAll(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	err := repo.SaveAll(ctx, []domain.Product{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}})
	require.NoError(t, err)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
