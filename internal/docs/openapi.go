package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"productos/internal/models"
)

const (
	Title   = "REST API de productos / Go / Fiber"
	Version = "1.0.0"
	Tag     = "Productos"
)

// BodyKind names the JSON envelope carried by a request or response.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyProduct
	BodyProductList
	BodyProductInput
	BodyProductUpdate
	BodyMessage
	BodyErrors
)

// Response documents one status code of an operation.
type Response struct {
	Status      int
	Description string
	Body        BodyKind
}

// Operation documents what a route does.
type Operation struct {
	ID          string
	Summary     string
	Description string
	RequestBody BodyKind
	Responses   []Response
}

// Endpoint is a documented route. Path uses the router syntax (/:id).
type Endpoint struct {
	Method string
	Path   string
	Op     Operation
}

var pathParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

const (
	schemaProduct       = "Product"
	schemaProductInput  = "ProductInput"
	schemaProductUpdate = "ProductUpdate"
	schemaFieldError    = "FieldError"
)

// Build creates the OpenAPI document for the given endpoints and checks it.
func Build(ctx context.Context, endpoints []Endpoint) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       Title,
			Version:     Version,
			Description: "API Docs for Products",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
		Tags: openapi3.Tags{
			&openapi3.Tag{Name: Tag, Description: "Operaciones sobre productos"},
		},
	}

	product, input, update := productSchemas(models.ProductSchema)
	doc.Components.Schemas[schemaProduct] = openapi3.NewSchemaRef("", product)
	doc.Components.Schemas[schemaProductInput] = openapi3.NewSchemaRef("", input)
	doc.Components.Schemas[schemaProductUpdate] = openapi3.NewSchemaRef("", update)
	doc.Components.Schemas[schemaFieldError] = openapi3.NewSchemaRef("", fieldErrorSchema())

	refs := schemaRefs{
		product:    openapi3.NewSchemaRef(componentRef(schemaProduct), product),
		input:      openapi3.NewSchemaRef(componentRef(schemaProductInput), input),
		update:     openapi3.NewSchemaRef(componentRef(schemaProductUpdate), update),
		fieldError: openapi3.NewSchemaRef(componentRef(schemaFieldError), fieldErrorSchema()),
	}

	for _, ep := range endpoints {
		path, params := convertPath(ep.Path)

		op := openapi3.NewOperation()
		op.OperationID = ep.Op.ID
		op.Summary = ep.Op.Summary
		op.Description = ep.Op.Description
		op.Tags = []string{Tag}

		for _, name := range params {
			p := openapi3.NewPathParameter(name).
				WithDescription("The ID of the product").
				WithSchema(openapi3.NewIntegerSchema())
			op.AddParameter(p)
		}

		if ep.Op.RequestBody != BodyNone {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithRequired(true).
					WithJSONSchemaRef(refs.body(ep.Op.RequestBody)),
			}
		}

		opts := make([]openapi3.NewResponsesOption, 0, len(ep.Op.Responses))
		for _, r := range ep.Op.Responses {
			resp := openapi3.NewResponse().WithDescription(r.Description)
			if r.Body != BodyNone {
				resp = resp.WithJSONSchemaRef(refs.body(r.Body))
			}
			opts = append(opts, openapi3.WithStatus(r.Status, &openapi3.ResponseRef{Value: resp}))
		}
		op.Responses = openapi3.NewResponses(opts...)

		doc.AddOperation(path, ep.Method, op)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// convertPath turns /api/productos/:id into /api/productos/{id}.
func convertPath(path string) (string, []string) {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	var params []string
	for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
		params = append(params, m[1])
	}
	return pathParam.ReplaceAllString(path, "{$1}"), params
}

func componentRef(name string) string {
	return "#/components/schemas/" + name
}

type schemaRefs struct {
	product    *openapi3.SchemaRef
	input      *openapi3.SchemaRef
	update     *openapi3.SchemaRef
	fieldError *openapi3.SchemaRef
}

func (r schemaRefs) body(kind BodyKind) *openapi3.SchemaRef {
	switch kind {
	case BodyProduct:
		return openapi3.NewObjectSchema().
			WithPropertyRef("data", r.product).
			NewRef()
	case BodyProductList:
		list := openapi3.NewArraySchema()
		list.Items = r.product
		return openapi3.NewObjectSchema().
			WithProperty("data", list).
			NewRef()
	case BodyProductInput:
		return r.input
	case BodyProductUpdate:
		return r.update
	case BodyMessage:
		return openapi3.NewObjectSchema().
			WithProperty("message", openapi3.NewStringSchema()).
			NewRef()
	case BodyErrors:
		list := openapi3.NewArraySchema()
		list.Items = r.fieldError
		return openapi3.NewObjectSchema().
			WithProperty("errors", list).
			NewRef()
	default:
		return openapi3.NewObjectSchema().NewRef()
	}
}

// productSchemas derives the response and request schemas from the column
// layout. A create may omit nullable fields; an update replaces every field.
func productSchemas(s models.Schema) (product, input, update *openapi3.Schema) {
	product = openapi3.NewObjectSchema()
	input = openapi3.NewObjectSchema()
	update = openapi3.NewObjectSchema()

	for _, f := range s.Fields {
		product.WithProperty(f.JSON, fieldSchema(f))

		if f.Generated {
			continue
		}
		input.WithProperty(f.JSON, fieldSchema(f))
		if !f.Nullable {
			input.Required = append(input.Required, f.JSON)
		}

		prop := fieldSchema(f)
		prop.Default = nil
		update.WithProperty(f.JSON, prop)
		update.Required = append(update.Required, f.JSON)
	}
	return product, input, update
}

func fieldSchema(f models.Field) *openapi3.Schema {
	var s *openapi3.Schema
	switch f.Type {
	case models.FieldInteger:
		s = openapi3.NewIntegerSchema()
	case models.FieldNumber:
		s = openapi3.NewFloat64Schema()
	case models.FieldBoolean:
		s = openapi3.NewBoolSchema()
	case models.FieldTimestamp:
		s = openapi3.NewDateTimeSchema()
	default:
		s = openapi3.NewStringSchema()
	}

	if f.Size > 0 {
		s = s.WithMaxLength(int64(f.Size))
	}
	s.Description = f.Description
	s.Default = jsonValue(f.Default)
	s.Example = jsonValue(f.Example)
	s.ReadOnly = f.Generated
	return s
}

// jsonValue returns v in the form encoding/json decodes it to, which is the
// form example and default checks expect.
func jsonValue(v any) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func fieldErrorSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("location", openapi3.NewStringSchema().WithEnum("params", "body")).
		WithProperty("value", openapi3.NewStringSchema())
}
