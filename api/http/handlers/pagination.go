package handlers

import "github.com/gofiber/fiber/v2"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// page reads ?limit and ?offset; out-of-range values fall back to the defaults.
func page(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
