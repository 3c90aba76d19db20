package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"productos/internal/models"
	"productos/internal/repositories"
	"productos/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, discardLogger())

	expectedProducts := []models.Product{
		{ID: 2, Name: "Product B", Price: 20.0, Availability: true},
		{ID: 1, Name: "Product A", Price: 10.0, Availability: false},
	}

	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, discardLogger())

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}

	// Test successful retrieval
	mockRepo.On("GetByID", ctx, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", ctx, uint(99)).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	product, err = service.GetProductByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("availability defaults to true", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub, discardLogger())

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Mouse" && p.Price == 50 && p.Availability
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = 7
		}).Return(nil).Once()
		mockPub.On("Publish", ctx, services.EventProductCreated, mock.Anything).Return(nil).Once()

		product, err := service.CreateProduct(ctx, services.CreateProductParams{Name: "Mouse", Price: 50})
		require.NoError(t, err)
		assert.Equal(t, uint(7), product.ID)
		assert.True(t, product.Availability)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("explicit availability is kept", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil, discardLogger())

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return !p.Availability
		})).Return(nil).Once()

		product, err := service.CreateProduct(ctx, services.CreateProductParams{Name: "Mouse", Price: 50, Availability: ptr(false)})
		require.NoError(t, err)
		assert.False(t, product.Availability)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invariants are checked before persistence", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil, discardLogger())

		for _, params := range []services.CreateProductParams{
			{Name: "Mouse", Price: 0},
			{Name: "Mouse", Price: -1},
			{Name: "", Price: 10},
			{Name: strings.Repeat("x", 101), Price: 10},
		} {
			_, err := service.CreateProduct(ctx, params)
			assert.ErrorIs(t, err, services.ErrInvalidProduct)

			var invalid *services.InvalidProductError
			assert.True(t, errors.As(err, &invalid))
		}
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("database error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub, discardLogger())

		mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("database error")).Once()

		_, err := service.CreateProduct(ctx, services.CreateProductParams{Name: "Mouse", Price: 50})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
		mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub, discardLogger())

		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockPub.On("Publish", ctx, services.EventProductCreated, mock.Anything).Return(fmt.Errorf("broker down")).Once()

		_, err := service.CreateProduct(ctx, services.CreateProductParams{Name: "Mouse", Price: 50})
		assert.NoError(t, err)
		mockPub.AssertExpectations(t)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, discardLogger())

	existing := &models.Product{ID: 1, Name: "Product A", Price: 12.0, Availability: true}

	// Test successful update
	mockRepo.On("GetByID", ctx, uint(1)).Return(existing, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && p.Name == "Monitor Curvo" && p.Price == 300 && !p.Availability
	})).Return(nil).Once()

	product, err := service.UpdateProduct(ctx, 1, services.UpdateProductParams{Name: "Monitor Curvo", Price: 300, Availability: false})
	require.NoError(t, err)
	assert.Equal(t, "Monitor Curvo", product.Name)
	assert.Equal(t, 300.0, product.Price)
	assert.False(t, product.Availability)

	// Test update of a missing product
	mockRepo.On("GetByID", ctx, uint(99)).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.UpdateProduct(ctx, 99, services.UpdateProductParams{Name: "NonExistent", Price: 1.0})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ToggleAvailability(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub, discardLogger())

	mockRepo.On("GetByID", ctx, uint(3)).Return(&models.Product{ID: 3, Name: "Teclado", Price: 20, Availability: true}, nil).Once()
	mockRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	mockPub.On("Publish", ctx, services.EventProductAvailabilityToggled, mock.MatchedBy(func(body []byte) bool {
		var ev services.ProductEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return false
		}
		return ev.ProductID == 3 && ev.Product != nil && !ev.Product.Availability
	})).Return(nil).Once()

	product, err := service.ToggleAvailability(ctx, 3)
	require.NoError(t, err)
	assert.False(t, product.Availability)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub, discardLogger())

	// Test successful deletion
	mockRepo.On("Delete", ctx, uint(1)).Return(nil).Once()
	mockPub.On("Publish", ctx, services.EventProductDeleted, mock.Anything).Return(nil).Once()
	err := service.DeleteProduct(ctx, 1)
	assert.NoError(t, err)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("Delete", ctx, uint(99)).Return(fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	err = service.DeleteProduct(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}
