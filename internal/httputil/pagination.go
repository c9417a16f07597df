package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/credseal/internal/errors"
)

// List endpoints page with ?offset=&limit=.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

var (
	// ErrInvalidOffset indicates an offset that is not a non-negative integer.
	ErrInvalidOffset = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid offset parameter: must be a non-negative integer")

	// ErrInvalidLimit indicates a limit outside 1..MaxPageLimit.
	ErrInvalidLimit = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid limit parameter: must be between 1 and 100")
)

// ParsePagination reads offset (default 0) and limit (default
// DefaultPageLimit, at most MaxPageLimit) from the query string.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, ErrInvalidOffset
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 || limit > MaxPageLimit {
		return 0, 0, ErrInvalidLimit
	}

	return offset, limit, nil
}
