package api

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"coffeelog_go_backend/internal/cache"
	"coffeelog_go_backend/internal/models"
	"coffeelog_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockCoffeeService struct {
	mock.Mock
}

func (m *MockCoffeeService) Create(coffee *models.Coffee) error {
	args := m.Called(coffee)
	return args.Error(0)
}

func (m *MockCoffeeService) List(offset, limit int) ([]models.Coffee, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coffee), args.Error(1)
}

func (m *MockCoffeeService) GetByID(id uint) (*models.Coffee, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coffee), args.Error(1)
}

func (m *MockCoffeeService) Update(id uint, patch models.CoffeeUpdate) (*models.Coffee, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coffee), args.Error(1)
}

func (m *MockCoffeeService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCoffeeService) Latest() (*models.Coffee, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coffee), args.Error(1)
}

type MockCupService struct {
	mock.Mock
}

func (m *MockCupService) Create(cup *models.Cup) error {
	args := m.Called(cup)
	return args.Error(0)
}

func (m *MockCupService) List(offset, limit int) ([]models.Cup, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Cup), args.Error(1)
}

func (m *MockCupService) GetByID(id uint) (*models.Cup, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cup), args.Error(1)
}

func (m *MockCupService) Update(id uint, patch models.CupUpdate) (*models.Cup, string, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.Cup), args.String(1), args.Error(2)
}

func (m *MockCupService) Delete(id uint) (*models.Cup, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cup), args.Error(1)
}

func (m *MockCupService) CountTotal(username string) (int64, error) {
	args := m.Called(username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCupService) CountToday(username string) (int64, error) {
	args := m.Called(username)
	return args.Get(0).(int64), args.Error(1)
}

func newTestRouter(coffeeService services.CoffeeService, cupService services.CupService, store cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, coffeeService, cupService, store)
	return r
}

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
