package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses a numeric id path parameter.
func ParamID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}

// QueryInt parses an optional integer query parameter, falling back to the
// given default.
func QueryInt(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)

	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)

	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
