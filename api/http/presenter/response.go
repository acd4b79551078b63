package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
	// Raw is the model output behind a parse failure.
	Raw string `json:"raw,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func ErrorWithRaw(c *fiber.Ctx, status int, message, raw string) error {
	return JSON(c, status, ErrorResponse{Message: message, Raw: raw})
}
