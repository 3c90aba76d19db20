package middleware

import (
	"productos/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// BodyLocalsKey is the fiber.Ctx locals key holding the decoded request body.
const BodyLocalsKey = "validated_body"

// ValidateInput is a Fiber middleware that runs a rule chain against the
// route's path parameters and JSON body. Any failure stops the request with
// 400 and {errors: [...]}; the next handler only runs on valid input.
func ValidateInput(v *validation.Validator, chain validation.Chain) fiber.Handler {
	needsBody := chain.NeedsBody()

	return func(c *fiber.Ctx) error {
		in := validation.Input{
			Params: c.AllParams(),
		}

		if needsBody {
			body, err := validation.DecodeBody(c.Body())
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"errors": []validation.FieldError{{
						Field:    "body",
						Message:  validation.MsgInvalidBody,
						Location: validation.LocationBody,
					}},
				})
			}
			in.Body = body
			c.Locals(BodyLocalsKey, body)
		}

		if errs := v.Check(in, chain); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": errs,
			})
		}

		// Continue to the next handler
		return c.Next()
	}
}

// ValidatedBody returns the body decoded by ValidateInput, or an empty map.
func ValidatedBody(c *fiber.Ctx) map[string]any {
	if body, ok := c.Locals(BodyLocalsKey).(map[string]any); ok {
		return body
	}
	return map[string]any{}
}
