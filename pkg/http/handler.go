package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler registers routes on the server's echo instance.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// ParseIntDefault parses a query parameter, falling back to def when the
// value is empty or not a number.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
