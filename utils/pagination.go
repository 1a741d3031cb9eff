package utils

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams reads page/limit query parameters, 1-indexed with the
// defaults every list endpoint shares.
func ParsePageParams(c *fiber.Ctx) PageParams {
	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageParams{Page: page, Limit: limit}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func TotalPages(totalCount int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
