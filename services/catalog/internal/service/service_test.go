package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/ckstore/services/catalog/internal/repository"
	"github.com/shestoi/ckstore/services/catalog/internal/repository/mocks"
)

func TestCatalogService_ListProducts(t *testing.T) {
	ctx := context.Background()

	products := []repository.Product{
		{ID: 1, Name: "Wireless Headphones", Price: 99.99},
		{ID: 2, Name: "Smartphone", Price: 699.99},
	}

	tests := []struct {
		name          string
		repoProducts  []repository.Product
		repoError     error
		expectedError bool
		errorContains string
	}{
		{
			name:         "success: returns repository products as is",
			repoProducts: products,
		},
		{
			name:         "success: empty catalog",
			repoProducts: []repository.Product{},
		},
		{
			name:          "error: repository fails",
			repoError:     errors.New("storage unavailable"),
			expectedError: true,
			errorContains: "failed to list products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewProductRepository(t)
			svc := NewCatalogService(zap.NewNop(), mockRepo)

			mockRepo.On("List", ctx).Return(tt.repoProducts, tt.repoError).Once()

			result, err := svc.ListProducts(ctx)

			if tt.expectedError {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errorContains)
				require.ErrorIs(t, err, tt.repoError)
				require.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.repoProducts, result)
		})
	}
}
