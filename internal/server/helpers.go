package server

import (
	"fmt"
	"net/url"
	"strconv"

	"critica/internal/models"
	"critica/internal/policy"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// callerFrom returns the policy caller set by AuthRequired, or the
// anonymous caller on open routes.
func callerFrom(c *fiber.Ctx) policy.Caller {
	if caller, ok := c.Locals("caller").(policy.Caller); ok {
		return caller
	}
	return policy.Caller{}
}

// pageParams reads limit/offset query parameters, clamping to sane bounds.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// paginated wraps results in a count/next/previous/results envelope.
// Next and previous are links to the adjacent pages, null at the edges.
// Filter and search parameters on the current request are carried into
// the links so following next keeps the same result set.
func paginated(c *fiber.Ctx, total int64, limit, offset int, results any) fiber.Map {
	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		query.Add(string(key), string(value))
	})
	pageLink := func(off int) string {
		query.Set("limit", strconv.Itoa(limit))
		query.Set("offset", strconv.Itoa(off))
		return fmt.Sprintf("%s?%s", c.Path(), query.Encode())
	}

	var next, previous any
	if int64(offset+limit) < total {
		next = pageLink(offset + limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		previous = pageLink(prev)
	}

	return fiber.Map{
		"count":    total,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

// uintParam parses a numeric path parameter.
func uintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError(name, raw)
	}
	return uint(id), nil
}

// fail maps a service error onto the HTTP response.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}
