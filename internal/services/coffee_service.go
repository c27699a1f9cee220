package services

import (
	"errors"

	apperrors "coffeelog_go_backend/internal/errors"
	"coffeelog_go_backend/internal/models"

	"gorm.io/gorm"
)

// CoffeeService defines the store operations for coffee batches.
type CoffeeService interface {
	Create(coffee *models.Coffee) error
	List(offset, limit int) ([]models.Coffee, error)
	GetByID(id uint) (*models.Coffee, error)
	Update(id uint, patch models.CoffeeUpdate) (*models.Coffee, error)
	Delete(id uint) error
	Latest() (*models.Coffee, error)
}

// DefaultCoffeeService implements CoffeeService on GORM
type DefaultCoffeeService struct {
	db *gorm.DB
}

// NewCoffeeService creates a new DefaultCoffeeService
func NewCoffeeService(db *gorm.DB) CoffeeService {
	return &DefaultCoffeeService{db: db}
}

func (s *DefaultCoffeeService) Create(coffee *models.Coffee) error {
	return s.db.Create(coffee).Error
}

func (s *DefaultCoffeeService) List(offset, limit int) ([]models.Coffee, error) {
	var coffees []models.Coffee
	result := s.db.Offset(offset).Limit(limit).Find(&coffees)
	if result.Error != nil {
		return nil, result.Error
	}
	return coffees, nil
}

func (s *DefaultCoffeeService) GetByID(id uint) (*models.Coffee, error) {
	var coffee models.Coffee
	if err := s.db.First(&coffee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New404Error("Coffee not found.")
		}
		return nil, err
	}
	return &coffee, nil
}

// Update merges the sparse patch onto the stored row and saves the result.
// Fields absent from the patch keep their prior values.
func (s *DefaultCoffeeService) Update(id uint, patch models.CoffeeUpdate) (*models.Coffee, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated := models.ApplyCoffeeUpdate(*existing, patch)
	if err := s.db.Save(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete refuses to remove a coffee that still has cups logged against it,
// so the foreign key can never dangle.
func (s *DefaultCoffeeService) Delete(id uint) error {
	coffee, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var cupCount int64
	if err := s.db.Model(&models.Cup{}).Where("coffee_id = ?", id).Count(&cupCount).Error; err != nil {
		return err
	}
	if cupCount > 0 {
		return apperrors.New409Error("Coffee still has cups logged against it.")
	}

	return s.db.Delete(coffee).Error
}

// Latest returns the coffee with the highest id, i.e. the most recently
// created batch.
func (s *DefaultCoffeeService) Latest() (*models.Coffee, error) {
	var coffee models.Coffee
	if err := s.db.Order("id desc").First(&coffee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New404Error("No coffee in database.")
		}
		return nil, err
	}
	return &coffee, nil
}
