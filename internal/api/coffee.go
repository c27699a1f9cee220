package api

import (
	"encoding/json"
	"net/http"

	"coffeelog_go_backend/internal/cache"
	apperrors "coffeelog_go_backend/internal/errors"
	"coffeelog_go_backend/internal/models"
	"coffeelog_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func createCoffeeHandler(coffeeService services.CoffeeService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CoffeeCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New422Error(err.Error()))
			return
		}

		coffee := req.ToModel()
		if err := coffeeService.Create(&coffee); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		// A new batch is now the latest one.
		invalidate(c, store, cache.KeyLatestCoffee())

		c.JSON(http.StatusCreated, coffee)
	}
}

func listCoffeeHandler(coffeeService services.CoffeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, err := parseListParams(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		coffees, err := coffeeService.List(offset, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, coffees)
	}
}

// latestCoffeeHandler serves the newest batch through the cache. A 404 when
// no coffee exists is never cached.
func latestCoffeeHandler(coffeeService services.CoffeeService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := cache.KeyLatestCoffee()

		if raw, err := store.Get(ctx, key); err == nil {
			var coffee models.Coffee
			if err := json.Unmarshal(raw, &coffee); err == nil {
				c.Header(cacheHeader, "HIT")
				c.JSON(http.StatusOK, coffee)
				return
			}
			log.Debug().Str("key", key).Msg("discarding undecodable cache entry")
		}

		coffee, err := coffeeService.Latest()
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		if raw, err := json.Marshal(coffee); err == nil {
			if err := store.Set(ctx, key, raw, cache.LatestCoffeeTTL); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		}

		c.Header(cacheHeader, "MISS")
		c.JSON(http.StatusOK, coffee)
	}
}

func getCoffeeHandler(coffeeService services.CoffeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		coffee, err := coffeeService.GetByID(id)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, coffee)
	}
}

func updateCoffeeHandler(coffeeService services.CoffeeService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		var patch models.CoffeeUpdate
		if err := c.ShouldBindJSON(&patch); err != nil {
			apperrors.HandleError(c, apperrors.New422Error(err.Error()))
			return
		}

		coffee, err := coffeeService.Update(id, patch)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		// The cached snapshot may be this very row.
		invalidate(c, store, cache.KeyLatestCoffee())

		c.JSON(http.StatusOK, coffee)
	}
}

func deleteCoffeeHandler(coffeeService services.CoffeeService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		if err := coffeeService.Delete(id); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		invalidate(c, store,
			cache.KeyLatestCoffee(),
			cache.KeyCountToday(),
			cache.KeyCountTotal(),
		)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
