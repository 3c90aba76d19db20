package repositories

import (
	"context"
	"errors"

	"productos/internal/models"
)

// ErrProductNotFound is returned when no row matches the requested product ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by ID descending, without timestamps.
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites name, price and availability of an existing row and
	// refreshes product from the stored state.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}
