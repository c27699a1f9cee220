package services

import (
	"errors"
	"time"

	apperrors "coffeelog_go_backend/internal/errors"
	"coffeelog_go_backend/internal/models"

	"gorm.io/gorm"
)

// CupService defines the store operations for cups, including the aggregate
// counts behind /actions/count.
type CupService interface {
	Create(cup *models.Cup) error
	List(offset, limit int) ([]models.Cup, error)
	GetByID(id uint) (*models.Cup, error)
	// Update returns the updated cup and the username the cup carried
	// before the patch, so callers can invalidate both users' counters.
	Update(id uint, patch models.CupUpdate) (*models.Cup, string, error)
	// Delete returns the removed cup so callers know whose counters to
	// invalidate.
	Delete(id uint) (*models.Cup, error)
	CountTotal(username string) (int64, error)
	CountToday(username string) (int64, error)
}

// DefaultCupService implements CupService on GORM
type DefaultCupService struct {
	db *gorm.DB
}

// NewCupService creates a new DefaultCupService
func NewCupService(db *gorm.DB) CupService {
	return &DefaultCupService{db: db}
}

func (s *DefaultCupService) Create(cup *models.Cup) error {
	// The foreign key on coffee_id rejects inserts referencing a missing
	// coffee; that error propagates as-is.
	return s.db.Create(cup).Error
}

func (s *DefaultCupService) List(offset, limit int) ([]models.Cup, error) {
	var cups []models.Cup
	result := s.db.Offset(offset).Limit(limit).Find(&cups)
	if result.Error != nil {
		return nil, result.Error
	}
	return cups, nil
}

func (s *DefaultCupService) GetByID(id uint) (*models.Cup, error) {
	var cup models.Cup
	if err := s.db.First(&cup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New404Error("Cup not found.")
		}
		return nil, err
	}
	return &cup, nil
}

func (s *DefaultCupService) Update(id uint, patch models.CupUpdate) (*models.Cup, string, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	previousUsername := existing.Username

	updated := models.ApplyCupUpdate(*existing, patch)
	if err := s.db.Save(&updated).Error; err != nil {
		return nil, "", err
	}
	return &updated, previousUsername, nil
}

func (s *DefaultCupService) Delete(id uint) (*models.Cup, error) {
	cup, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(cup).Error; err != nil {
		return nil, err
	}
	return cup, nil
}

// CountTotal counts all cups, or one user's cups when username is non-empty.
func (s *DefaultCupService) CountTotal(username string) (int64, error) {
	query := s.db.Model(&models.Cup{})
	if username != "" {
		query = query.Where("username = ?", username)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountToday counts cups logged since midnight server-local time.
func (s *DefaultCupService) CountToday(username string) (int64, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := s.db.Model(&models.Cup{}).Where("date_time >= ?", startOfDay)
	if username != "" {
		query = query.Where("username = ?", username)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
