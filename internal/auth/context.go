package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserHeader carries the acting user's ID on every ShareIt request.
const UserHeader = "X-Sharer-User-Id"

const userIDKey = "userID"

// GetUserID returns the acting user's ID or 0 when UserRequired did not run.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// ParseUserID validates a raw header value.
func ParseUserID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", UserHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header: %q", UserHeader, raw)
	}
	return id, nil
}
