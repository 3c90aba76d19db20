package handlers

import (
	"path"

	"productos/internal/docs"
	"productos/internal/middleware"
	"productos/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductsPath is the group every product route is mounted under.
const ProductsPath = "/productos"

// Route binds a method and path to its validation rules, handler and docs.
type Route struct {
	Method  string
	Path    string
	Rules   validation.Chain
	Handler fiber.Handler
	Doc     docs.Operation
}

var (
	notFoundResponse   = docs.Response{Status: fiber.StatusNotFound, Description: "Not found", Body: docs.BodyMessage}
	badRequestResponse = docs.Response{Status: fiber.StatusBadRequest, Description: "Bad Request - Invalid input data", Body: docs.BodyErrors}
	errorResponse      = docs.Response{Status: fiber.StatusInternalServerError, Description: "Persistence failure", Body: docs.BodyMessage}
)

// Routes returns the product route table.
func (h *ProductHandler) Routes() []Route {
	return []Route{
		{
			Method:  fiber.MethodGet,
			Path:    "/",
			Handler: h.HandleGetProducts,
			Doc: docs.Operation{
				ID:          "getProducts",
				Summary:     "Get a list of products",
				Description: "Return a list of products",
				Responses: []docs.Response{
					{Status: fiber.StatusOK, Description: "Successful response", Body: docs.BodyProductList},
					errorResponse,
				},
			},
		},
		{
			Method:  fiber.MethodGet,
			Path:    "/:id",
			Rules:   validation.ProductIDRules(),
			Handler: h.HandleGetProductByID,
			Doc: docs.Operation{
				ID:          "getProductById",
				Summary:     "Get a product by ID",
				Description: "Return a product based on its unique ID",
				Responses: []docs.Response{
					{Status: fiber.StatusOK, Description: "Successful Response", Body: docs.BodyProduct},
					notFoundResponse,
					badRequestResponse,
					errorResponse,
				},
			},
		},
		{
			Method:  fiber.MethodPost,
			Path:    "/",
			Rules:   validation.CreateProductRules(),
			Handler: h.HandleCreateProduct,
			Doc: docs.Operation{
				ID:          "createProduct",
				Summary:     "Creates a new product",
				Description: "Returns a new record in the database",
				RequestBody: docs.BodyProductInput,
				Responses: []docs.Response{
					{Status: fiber.StatusCreated, Description: "Successful response", Body: docs.BodyProduct},
					badRequestResponse,
					errorResponse,
				},
			},
		},
		{
			Method:  fiber.MethodPut,
			Path:    "/:id",
			Rules:   validation.UpdateProductRules(),
			Handler: h.HandleUpdateProduct,
			Doc: docs.Operation{
				ID:          "updateProduct",
				Summary:     "Updates a product with user input",
				Description: "Returns the updated product",
				RequestBody: docs.BodyProductUpdate,
				Responses: []docs.Response{
					{Status: fiber.StatusOK, Description: "Successful response", Body: docs.BodyProduct},
					badRequestResponse,
					notFoundResponse,
					errorResponse,
				},
			},
		},
		{
			Method:  fiber.MethodPatch,
			Path:    "/:id",
			Rules:   validation.ProductIDRules(),
			Handler: h.HandleToggleAvailability,
			Doc: docs.Operation{
				ID:          "toggleProductAvailability",
				Summary:     "Update Product availability",
				Description: "Returns the updated availability",
				Responses: []docs.Response{
					{Status: fiber.StatusOK, Description: "Successful response", Body: docs.BodyProduct},
					badRequestResponse,
					notFoundResponse,
					errorResponse,
				},
			},
		},
		{
			Method:  fiber.MethodDelete,
			Path:    "/:id",
			Rules:   validation.ProductIDRules(),
			Handler: h.HandleDeleteProduct,
			Doc: docs.Operation{
				ID:          "deleteProduct",
				Summary:     "Deletes a product by a given ID",
				Description: "Returns a confirmation message",
				Responses: []docs.Response{
					{Status: fiber.StatusOK, Description: "Successful response", Body: docs.BodyMessage},
					badRequestResponse,
					notFoundResponse,
					errorResponse,
				},
			},
		},
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group(ProductsPath)
	for _, r := range h.Routes() {
		handlers := make([]fiber.Handler, 0, 2)
		if len(r.Rules) > 0 {
			handlers = append(handlers, middleware.ValidateInput(h.validator, r.Rules))
		}
		handlers = append(handlers, r.Handler)
		productRoutes.Add(r.Method, r.Path, handlers...)
	}
}

// Endpoints describes the product routes mounted under basePath for the docs.
func (h *ProductHandler) Endpoints(basePath string) []docs.Endpoint {
	routes := h.Routes()
	endpoints := make([]docs.Endpoint, 0, len(routes))
	for _, r := range routes {
		endpoints = append(endpoints, docs.Endpoint{
			Method: r.Method,
			Path:   path.Join(basePath, ProductsPath, r.Path),
			Op:     r.Doc,
		})
	}
	return endpoints
}
