package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"coffeelog_go_backend/internal/cache"
	apperrors "coffeelog_go_backend/internal/errors"
	"coffeelog_go_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateCoffeeEchoesFieldsWithGeneratedID(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Create", mock.AnythingOfType("*models.Coffee")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Coffee).ID = 1
	}).Return(nil)

	store := cache.NewMemoryCache()
	// A stale snapshot from an earlier read must not survive the write.
	assert.NoError(t, store.Set(context.Background(), cache.KeyLatestCoffee(), []byte(`{"id":99}`), cache.LatestCoffeeTTL))

	r := newTestRouter(coffeeService, new(MockCupService), store)
	w := performRequest(r, http.MethodPost, "/coffee/", `{
		"roasting_facility": "Acme",
		"coffee_name": "House Blend",
		"size_g": 250,
		"roast_date": null,
		"open_date": null,
		"price": 9.99,
		"country_of_origin": "Ethiopia"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body models.Coffee
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(1), body.ID)
	assert.Equal(t, "Acme", body.RoastingFacility)
	assert.Equal(t, "House Blend", body.CoffeeName)
	assert.Equal(t, 250, body.SizeG)
	assert.Equal(t, 9.99, *body.Price)
	assert.Equal(t, "Ethiopia", *body.CountryOfOrigin)
	assert.Nil(t, body.RoastDate)

	_, err := store.Get(context.Background(), cache.KeyLatestCoffee())
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	coffeeService.AssertExpectations(t)
}

func TestCreateCoffeeMissingRequiredFieldIs422(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	r := newTestRouter(coffeeService, new(MockCupService), cache.NewMemoryCache())

	w := performRequest(r, http.MethodPost, "/coffee/", `{"coffee_name": "House Blend"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	coffeeService.AssertNotCalled(t, "Create", mock.Anything)
}

func TestGetCoffeeNotFound(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("GetByID", uint(5)).Return(nil, apperrors.New404Error("Coffee not found."))

	r := newTestRouter(coffeeService, new(MockCupService), cache.NewMemoryCache())
	w := performRequest(r, http.MethodGet, "/coffee/5", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Coffee not found.")
}

func TestGetCoffeeNonIntegerIDIs422(t *testing.T) {
	r := newTestRouter(new(MockCoffeeService), new(MockCupService), cache.NewMemoryCache())
	w := performRequest(r, http.MethodGet, "/coffee/abc", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListCoffeeLimitOver100Is422(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	r := newTestRouter(coffeeService, new(MockCupService), cache.NewMemoryCache())

	w := performRequest(r, http.MethodGet, "/coffee/?limit=101", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	coffeeService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListCoffeeForwardsPagination(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("List", 10, 20).Return([]models.Coffee{{ID: 11}}, nil)

	r := newTestRouter(coffeeService, new(MockCupService), cache.NewMemoryCache())
	w := performRequest(r, http.MethodGet, "/coffee/?offset=10&limit=20", "")

	assert.Equal(t, http.StatusOK, w.Code)
	coffeeService.AssertExpectations(t)
}

func TestLatestCoffeeMissThenHit(t *testing.T) {
	price := 9.99
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Latest").Return(&models.Coffee{ID: 1, RoastingFacility: "Acme", CoffeeName: "House Blend", SizeG: 250, Price: &price}, nil).Once()

	store := cache.NewMemoryCache()
	r := newTestRouter(coffeeService, new(MockCupService), store)

	first := performRequest(r, http.MethodGet, "/coffee/latest", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := performRequest(r, http.MethodGet, "/coffee/latest", "")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// The database was consulted exactly once.
	coffeeService.AssertExpectations(t)
}

func TestLatestCoffeeEmptyDatabase404(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Latest").Return(nil, apperrors.New404Error("No coffee in database."))

	store := cache.NewMemoryCache()
	r := newTestRouter(coffeeService, new(MockCupService), store)

	w := performRequest(r, http.MethodGet, "/coffee/latest", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No coffee in database.")

	// 404s are never cached.
	_, err := store.Get(context.Background(), cache.KeyLatestCoffee())
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestLatestCoffeeCorruptEntryIsSoftMiss(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Latest").Return(&models.Coffee{ID: 3, RoastingFacility: "Acme", CoffeeName: "House Blend", SizeG: 250}, nil).Once()

	store := cache.NewMemoryCache()
	assert.NoError(t, store.Set(context.Background(), cache.KeyLatestCoffee(), []byte("{not json"), cache.LatestCoffeeTTL))

	r := newTestRouter(coffeeService, new(MockCupService), store)
	w := performRequest(r, http.MethodGet, "/coffee/latest", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var body models.Coffee
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(3), body.ID)
}

func TestUpdateCoffeeInvalidatesLatestSnapshot(t *testing.T) {
	price := 12.50
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Update", uint(1), mock.AnythingOfType("models.CoffeeUpdate")).
		Return(&models.Coffee{ID: 1, RoastingFacility: "Acme", CoffeeName: "House Blend", SizeG: 250, Price: &price}, nil)

	store := cache.NewMemoryCache()
	assert.NoError(t, store.Set(context.Background(), cache.KeyLatestCoffee(), []byte(`{"id":1,"price":9.99}`), cache.LatestCoffeeTTL))

	r := newTestRouter(coffeeService, new(MockCupService), store)
	w := performRequest(r, http.MethodPatch, "/coffee/1", `{"price": 12.50}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var body models.Coffee
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 12.50, *body.Price)
	assert.Equal(t, "House Blend", body.CoffeeName)

	_, err := store.Get(context.Background(), cache.KeyLatestCoffee())
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestUpdateCoffeeNotFound(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Update", uint(9), mock.AnythingOfType("models.CoffeeUpdate")).
		Return(nil, apperrors.New404Error("Coffee not found."))

	r := newTestRouter(coffeeService, new(MockCupService), cache.NewMemoryCache())
	w := performRequest(r, http.MethodPatch, "/coffee/9", `{"price": 1.00}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCoffeeInvalidatesAggregateKeys(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Delete", uint(1)).Return(nil)

	store := cache.NewMemoryCache()
	ctx := context.Background()
	assert.NoError(t, store.Set(ctx, cache.KeyLatestCoffee(), []byte(`{"id":1}`), cache.LatestCoffeeTTL))
	assert.NoError(t, store.Set(ctx, cache.KeyCountToday(), []byte("4"), cache.TodayCountTTL))
	assert.NoError(t, store.Set(ctx, cache.KeyCountTotal(), []byte("10"), cache.TotalCountTTL))

	r := newTestRouter(coffeeService, new(MockCupService), store)
	w := performRequest(r, http.MethodDelete, "/coffee/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())

	for _, key := range []string{cache.KeyLatestCoffee(), cache.KeyCountToday(), cache.KeyCountTotal()} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, key)
	}
}

func TestDeleteCoffeeWithCupsIsConflict(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Delete", uint(1)).Return(apperrors.New409Error("Coffee still has cups logged against it."))

	store := cache.NewMemoryCache()
	assert.NoError(t, store.Set(context.Background(), cache.KeyLatestCoffee(), []byte(`{"id":1}`), cache.LatestCoffeeTTL))

	r := newTestRouter(coffeeService, new(MockCupService), store)
	w := performRequest(r, http.MethodDelete, "/coffee/1", "")

	assert.Equal(t, http.StatusConflict, w.Code)

	// Nothing was written, so nothing gets invalidated.
	_, err := store.Get(context.Background(), cache.KeyLatestCoffee())
	assert.NoError(t, err)
}

func TestDeleteCoffeeNotFound(t *testing.T) {
	coffeeService := new(MockCoffeeService)
	coffeeService.On("Delete", uint(2)).Return(apperrors.New404Error("Coffee not found."))

	r := newTestRouter(coffeeService, new(MockCupService), cache.NewMemoryCache())
	w := performRequest(r, http.MethodDelete, "/coffee/2", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
