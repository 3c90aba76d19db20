package docs

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
)

const (
	// swaggerURL is the URL path where the Swagger UI will be served
	swaggerURL = "/docs"

	// openapiURL is the URL path where the OpenAPI document will be served
	openapiURL = "/docs/openapi.json"
)

// Register serves the Swagger UI and the OpenAPI document on the given router.
func Register(r fiber.Router, doc *openapi3.T) error {
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	templateBytes := []byte(getTemplate(openapiURL))

	r.Get(swaggerURL, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).Send(templateBytes)
	})

	r.Get(openapiURL, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(docBytes)
	})
	return nil
}

// getTemplate returns the HTML template for Swagger UI
func getTemplate(docPath string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <meta name="description" content="%[1]s" />
  <title>Documentacion</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui.css" />
  <style>
    .link { content: url('https://uae-vinculacion-computacion.netlify.app/_next/image?url=%%2Flogo.jpg&w=1920&q=75'); height: 120px; width: 60px; }
    .swagger-ui .topbar { background-color: #2b3b45; }
  </style>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%[2]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
    });
  };
</script>
</body>
</html>
`, Title, docPath)
}
