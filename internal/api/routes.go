package api

import (
	"coffeelog_go_backend/internal/cache"
	"coffeelog_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full HTTP surface. The trailing-slash paths on
// the collection routes match the original deployment, so clients keep
// working unchanged.
func SetupRoutes(r *gin.Engine, coffeeService services.CoffeeService, cupService services.CupService, store cache.Cache) {
	coffee := r.Group("/coffee")
	{
		coffee.POST("/", createCoffeeHandler(coffeeService, store))
		coffee.GET("/", listCoffeeHandler(coffeeService))
		coffee.GET("/latest", latestCoffeeHandler(coffeeService, store))
		coffee.GET("/:id", getCoffeeHandler(coffeeService))
		coffee.PATCH("/:id", updateCoffeeHandler(coffeeService, store))
		coffee.DELETE("/:id", deleteCoffeeHandler(coffeeService, store))
	}

	cups := r.Group("/cups")
	{
		cups.POST("/", createCupHandler(cupService, store))
		cups.GET("/", listCupHandler(cupService))
		cups.GET("/:id", getCupHandler(cupService))
		cups.PATCH("/:id", updateCupHandler(cupService, store))
		cups.DELETE("/:id", deleteCupHandler(cupService, store))
	}

	actions := r.Group("/actions")
	{
		actions.POST("/drink", drinkHandler(coffeeService, cupService, store))
		actions.GET("/count/total", countTotalHandler(cupService, store))
		actions.GET("/count/total/:username", countTotalByUserHandler(cupService, store))
		actions.GET("/count/today", countTodayHandler(cupService, store))
		actions.GET("/count/today/:username", countTodayByUserHandler(cupService, store))
	}
}
