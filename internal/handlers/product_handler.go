package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"productos/internal/middleware"
	"productos/internal/models"
	"productos/internal/repositories"
	"productos/internal/services"
	"productos/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Response messages.
const (
	MsgProductNotFound = "Producto no encontrado"
	MsgProductDeleted  = "Producto eliminado"
	MsgInternalError   = "Hubo un error"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   *services.ProductService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validator *validation.Validator, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: validator,
		logger:    logger.With(slog.String("handler", "product")),
	}
}

// productResponse is the wire form of a product. Timestamps are omitted
// when the product was loaded without them.
type productResponse struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	Availability bool       `json:"availability"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func newProductResponse(p *models.Product) productResponse {
	resp := productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Availability: p.Availability,
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	data := make([]productResponse, 0, len(products))
	for i := range products {
		data = append(data, newProductResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"data": data})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": newProductResponse(product)})
}

// HandleCreateProduct creates a new product from a validated body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in := validation.Input{Body: middleware.ValidatedBody(c)}

	price, err := strconv.ParseFloat(in.Value(validation.LocationBody, "price"), 64)
	if err != nil {
		return h.fail(c, err)
	}

	params := services.CreateProductParams{
		Name:  in.Value(validation.LocationBody, "name"),
		Price: price,
	}
	if availability, err := strconv.ParseBool(in.Value(validation.LocationBody, "availability")); err == nil {
		params.Availability = &availability
	}

	product, err := h.service.CreateProduct(c.UserContext(), params)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": newProductResponse(product)})
}

// HandleUpdateProduct replaces name, price and availability of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	in := validation.Input{Body: middleware.ValidatedBody(c)}

	price, err := strconv.ParseFloat(in.Value(validation.LocationBody, "price"), 64)
	if err != nil {
		return h.fail(c, err)
	}
	availability, err := strconv.ParseBool(in.Value(validation.LocationBody, "availability"))
	if err != nil {
		return h.fail(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, services.UpdateProductParams{
		Name:         in.Value(validation.LocationBody, "name"),
		Price:        price,
		Availability: availability,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": newProductResponse(product)})
}

// HandleToggleAvailability flips the availability of a product. The body is ignored.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	product, err := h.service.ToggleAvailability(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"data": newProductResponse(product)})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": MsgProductDeleted})
}

// productID reads the validated path id. Ids below 1 never match a row.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": MsgProductNotFound})
}

// fail maps a service error to its HTTP response.
func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return notFound(c)
	}

	var invalid *services.InvalidProductError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []validation.FieldError{{
				Field:    invalid.Field,
				Message:  invalid.Message,
				Location: validation.LocationBody,
				Value:    validation.Input{Body: middleware.ValidatedBody(c)}.Value(validation.LocationBody, invalid.Field),
			}},
		})
	}

	h.logger.ErrorContext(c.UserContext(), "product request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": MsgInternalError})
}
