package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Idempotency keys
const (
	IdempotencyKeyHeader = "Idempotency-Key"
	// MaxIdempotencyKeyLength bounds client supplied keys before they reach the store
	MaxIdempotencyKeyLength = 200
)

// GetIdempotencyKey returns the trimmed Idempotency-Key header; ok is false
// when the header is too long to be stored
func GetIdempotencyKey(c *gin.Context) (key string, ok bool) {
	key = strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > MaxIdempotencyKeyLength {
		return "", false
	}
	return key, true
}
