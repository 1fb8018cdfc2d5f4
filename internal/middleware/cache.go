package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

type cachePurger interface {
	ForgetPattern(ctx context.Context, pattern string)
}

// InvalidateCache drops cached entries matching the pattern after a
// successful mutation so the next read rebuilds from fresh rows.
func InvalidateCache(caches cachePurger, pattern string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}
		caches.ForgetPattern(c.Request.Context(), pattern)
	}
}
