package api

import (
	"net/http"

	"coffeelog_go_backend/internal/cache"
	apperrors "coffeelog_go_backend/internal/errors"
	"coffeelog_go_backend/internal/models"
	"coffeelog_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// cupCountKeys lists every counter a write touching the given username can
// have changed.
func cupCountKeys(username string) []string {
	return []string{
		cache.KeyCountToday(),
		cache.KeyCountTodayUser(username),
		cache.KeyCountTotal(),
		cache.KeyCountTotalUser(username),
	}
}

func createCupHandler(cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CupCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New422Error(err.Error()))
			return
		}

		cup := req.ToModel()
		if err := cupService.Create(&cup); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		invalidate(c, store, cupCountKeys(cup.Username)...)

		c.JSON(http.StatusCreated, cup)
	}
}

func listCupHandler(cupService services.CupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, err := parseListParams(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		cups, err := cupService.List(offset, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, cups)
	}
}

func getCupHandler(cupService services.CupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		cup, err := cupService.GetByID(id)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, cup)
	}
}

func updateCupHandler(cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		var patch models.CupUpdate
		if err := c.ShouldBindJSON(&patch); err != nil {
			apperrors.HandleError(c, apperrors.New422Error(err.Error()))
			return
		}

		cup, previousUsername, err := cupService.Update(id, patch)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		keys := cupCountKeys(cup.Username)
		if previousUsername != cup.Username {
			// The cup moved between users; the old user's counters are
			// stale too.
			keys = append(keys,
				cache.KeyCountTodayUser(previousUsername),
				cache.KeyCountTotalUser(previousUsername),
			)
		}
		invalidate(c, store, keys...)

		c.JSON(http.StatusOK, cup)
	}
}

func deleteCupHandler(cupService services.CupService, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		cup, err := cupService.Delete(id)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		invalidate(c, store, cupCountKeys(cup.Username)...)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
