package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	apierrors "github.com/codecops/cleanify-api/internal/errors"
)

const complaintLimitKeyPrefix = "cleanify:complaint_limit"

// ComplaintRateLimiter caps complaint submissions per citizen in a rolling
// 24h window, counted in redis with a TTL set on the first submission.
// Runs after RequireAuth.
func ComplaintRateLimiter(rdb *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("%s:%d", complaintLimitKeyPrefix, userID)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			apierrors.InternalError(c, "Failed to check submission limit")
			c.Abort()
			return
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
				apierrors.InternalError(c, "Failed to check submission limit")
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, key).Result()
			apierrors.RespondWithError(c, 429, &apierrors.APIError{
				Code:    apierrors.ErrCodeRateLimited,
				Message: "Complaint submission limit reached",
				Details: gin.H{"retry_after_seconds": int(retryAfter.Seconds())},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
