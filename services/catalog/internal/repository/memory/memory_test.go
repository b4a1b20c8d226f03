package memory

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/shestoi/ckstore/services/catalog/internal/repository"
)

func TestMemoryRepository_DefaultSeed(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(DefaultSeed())

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	for i, p := range products {
		require.Equal(t, i+1, p.ID)
	}
	require.Equal(t, "Wireless Headphones", products[0].Name)
	require.Equal(t, 99.99, products[0].Price)
	require.Equal(t, "Smartphone", products[1].Name)
	require.Equal(t, 699.99, products[1].Price)
	require.Equal(t, "Laptop", products[2].Name)
	require.Equal(t, 1299.99, products[2].Price)
}

func TestMemoryRepository_ListIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(DefaultSeed())

	want, err := repo.List(ctx)
	require.NoError(t, err)

	// изменение результата не должно влиять на хранилище
	mutated, err := repo.List(ctx)
	require.NoError(t, err)
	mutated[0].Name = "changed"

	for i := 0; i < 5; i++ {
		got, err := repo.List(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("listing changed between calls (-want +got):\n%s", diff)
		}
	}
}

func TestMemoryRepository_AssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()

	seed := make([]ProductSeed, 10)
	for i := range seed {
		seed[i] = ProductSeed{
			Name:        gofakeit.ProductName(),
			Description: gofakeit.ProductDescription(),
			Price:       gofakeit.Price(1, 1000),
			Image:       gofakeit.URL(),
		}
	}

	products, err := NewMemoryRepository(seed).List(ctx)
	require.NoError(t, err)

	want := make([]repository.Product, len(seed))
	for i, s := range seed {
		want[i] = repository.Product{ID: i + 1, Name: s.Name, Description: s.Description, Price: s.Price, Image: s.Image}
	}
	if diff := cmp.Diff(want, products); diff != "" {
		t.Fatalf("unexpected products (-want +got):\n%s", diff)
	}
}

func TestMemoryRepository_EmptySeed(t *testing.T) {
	products, err := NewMemoryRepository(nil).List(context.Background())
	require.NoError(t, err)
	require.Empty(t, products)
}
