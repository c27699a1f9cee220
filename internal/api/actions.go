package api

import (
	"net/http"
	"time"

	"coffeelog_go_backend/internal/cache"
	apperrors "coffeelog_go_backend/internal/errors"
	"coffeelog_go_backend/internal/models"
	"coffeelog_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// drinkHandler logs a cup against the most recently created coffee, stamped
// with the current time.
func drinkHandler(coffeeService services.CoffeeService, cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DrinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New422Error(err.Error()))
			return
		}

		coffee, err := coffeeService.Latest()
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		cup := models.Cup{
			DateTime: time.Now(),
			Username: req.Username,
			CoffeeID: coffee.ID,
		}
		if err := cupService.Create(&cup); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		invalidate(c, store, cupCountKeys(cup.Username)...)

		c.JSON(http.StatusCreated, cup)
	}
}

func countTotalHandler(cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondCachedCount(c, store, cache.KeyCountTotal(), cache.TotalCountTTL, func() (int64, error) {
			return cupService.CountTotal("")
		})
	}
}

func countTotalByUserHandler(cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		respondCachedCount(c, store, cache.KeyCountTotalUser(username), cache.UserCountTTL, func() (int64, error) {
			return cupService.CountTotal(username)
		})
	}
}

func countTodayHandler(cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondCachedCount(c, store, cache.KeyCountToday(), cache.TodayCountTTL, func() (int64, error) {
			return cupService.CountToday("")
		})
	}
}

func countTodayByUserHandler(cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		respondCachedCount(c, store, cache.KeyCountTodayUser(username), cache.UserCountTTL, func() (int64, error) {
			return cupService.CountToday(username)
		})
	}
}
