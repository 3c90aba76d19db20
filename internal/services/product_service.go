package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
	"unicode/utf8"

	"productos/internal/models"
	"productos/internal/repositories"
)

// ErrInvalidProduct is returned when a write would break the product invariants.
var ErrInvalidProduct = errors.New("invalid product")

// Routing keys of the product lifecycle events.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityToggled = "product.availability_toggled"
	EventProductDeleted             = "product.deleted"
)

// EventPublisher delivers product lifecycle events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// ProductEvent is the payload published after a successful write.
type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  uint            `json:"productId"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// CreateProductParams holds the input of CreateProduct.
// A nil Availability takes the schema default.
type CreateProductParams struct {
	Name         string
	Price        float64
	Availability *bool
}

// UpdateProductParams holds the full replacement state of UpdateProduct.
type UpdateProductParams struct {
	Name         string
	Price        float64
	Availability bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
	logger *slog.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		logger: logger.With(slog.String("service", "product")),
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository get all: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product repository get by id: %w", err)
	}
	return product, nil
}

// CreateProduct persists a new product and returns it with its assigned ID.
func (s *ProductService) CreateProduct(ctx context.Context, params CreateProductParams) (*models.Product, error) {
	if err := checkInvariants(params.Name, params.Price); err != nil {
		return nil, err
	}

	availability := defaultAvailability()
	if params.Availability != nil {
		availability = *params.Availability
	}

	product := &models.Product{
		Name:         params.Name,
		Price:        params.Price,
		Availability: availability,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("product repository create: %w", err)
	}

	s.publish(ctx, EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct replaces name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, params UpdateProductParams) (*models.Product, error) {
	if err := checkInvariants(params.Name, params.Price); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product repository get by id: %w", err)
	}

	product.Name = params.Name
	product.Price = params.Price
	product.Availability = params.Availability
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("product repository update: %w", err)
	}

	s.publish(ctx, EventProductUpdated, product.ID, product)
	return product, nil
}

// ToggleAvailability flips the availability flag of an existing product.
func (s *ProductService) ToggleAvailability(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product repository get by id: %w", err)
	}

	product.Availability = !product.Availability
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("product repository update: %w", err)
	}

	s.publish(ctx, EventProductAvailabilityToggled, product.ID, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("product repository delete: %w", err)
	}

	s.publish(ctx, EventProductDeleted, id, nil)
	return nil
}

// publish is best effort: a broker failure is logged and never fails the write.
func (s *ProductService) publish(ctx context.Context, routingKey string, id uint, product *models.Product) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(ProductEvent{
		Type:       routingKey,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "error marshaling product event",
			slog.String("event", routingKey), slog.Any("error", err))
		return
	}

	if err := s.events.Publish(ctx, routingKey, body); err != nil {
		s.logger.WarnContext(ctx, "error publishing product event",
			slog.String("event", routingKey),
			slog.Uint64("product_id", uint64(id)),
			slog.Any("error", err))
	}
}

// InvalidProductError reports which field of a write breaks the product invariants.
type InvalidProductError struct {
	Field   string
	Message string
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product %s: %s", e.Field, e.Message)
}

func (e *InvalidProductError) Unwrap() error {
	return ErrInvalidProduct
}

func checkInvariants(name string, price float64) error {
	if name == "" {
		return &InvalidProductError{Field: models.ColumnName, Message: "El Nombre de producto no puede ir vacío"}
	}
	if f, ok := models.ProductSchema.Field(models.ColumnName); ok && f.Size > 0 && utf8.RuneCountInString(name) > f.Size {
		return &InvalidProductError{
			Field:   models.ColumnName,
			Message: fmt.Sprintf("El Nombre de producto no puede superar %d caracteres", f.Size),
		}
	}
	if !(price > 0) || math.IsInf(price, 0) {
		return &InvalidProductError{Field: models.ColumnPrice, Message: "Precio no valido"}
	}
	return nil
}

func defaultAvailability() bool {
	f, ok := models.ProductSchema.Field(models.ColumnAvailability)
	if !ok {
		return true
	}
	v, ok := f.Default.(bool)
	return !ok || v
}
