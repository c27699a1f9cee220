package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"coffeelog_go_backend/internal/cache"
	apperrors "coffeelog_go_backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const cacheHeader = "X-Cache"

// invalidate deletes cache keys after a committed write. A failed deletion
// is logged and swallowed; the stale entry expires with its TTL.
func invalidate(c *gin.Context, store cache.Cache, keys ...string) {
	if err := store.Delete(c.Request.Context(), keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

// respondCachedCount serves an aggregate count through the cache. A corrupt
// entry counts as a miss and never reaches the caller.
func respondCachedCount(c *gin.Context, store cache.Cache, key string, ttl time.Duration, compute func() (int64, error)) {
	ctx := c.Request.Context()

	if raw, err := store.Get(ctx, key); err == nil {
		var count int64
		if err := json.Unmarshal(raw, &count); err == nil {
			c.Header(cacheHeader, "HIT")
			c.JSON(http.StatusOK, count)
			return
		}
		log.Debug().Str("key", key).Msg("discarding undecodable cache entry")
	}

	count, err := compute()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if raw, err := json.Marshal(count); err == nil {
		if err := store.Set(ctx, key, raw, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	c.Header(cacheHeader, "MISS")
	c.JSON(http.StatusOK, count)
}

// parseIDParam reads the :id path segment. Non-integer ids are a request
// shape problem, not a missing row.
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.New422Error("id must be a positive integer")
	}
	return uint(id), nil
}

// parseListParams reads offset and limit, capping limit at 100 the way the
// original API did.
func parseListParams(c *gin.Context) (int, int, error) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, apperrors.New422Error("offset must be a non-negative integer")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		return 0, 0, apperrors.New422Error("limit must be a non-negative integer")
	}
	if limit > 100 {
		return 0, 0, apperrors.New422Error("limit must be less than or equal to 100")
	}

	return offset, limit, nil
}
