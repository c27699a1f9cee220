package models

import "time"

// Cup is a single consumption event. Username is free text with no
// uniqueness constraint.
type Cup struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	DateTime time.Time `gorm:"not null" json:"date_time"`
	Username string    `gorm:"not null;index" json:"username"`
	CoffeeID uint      `gorm:"not null" json:"coffee_id"`
}

func (Cup) TableName() string {
	return "cup"
}

// CupCreate is the request body for POST /cups/.
type CupCreate struct {
	DateTime time.Time `json:"date_time" binding:"required"`
	Username string    `json:"username" binding:"required"`
	CoffeeID uint      `json:"coffee_id" binding:"required"`
}

func (c CupCreate) ToModel() Cup {
	return Cup{
		DateTime: c.DateTime,
		Username: c.Username,
		CoffeeID: c.CoffeeID,
	}
}

// CupUpdate is the sparse patch body for PATCH /cups/:id.
type CupUpdate struct {
	DateTime *time.Time `json:"date_time"`
	Username *string    `json:"username"`
	CoffeeID *uint      `json:"coffee_id"`
}

// ApplyCupUpdate merges a sparse patch onto an existing cup.
func ApplyCupUpdate(existing Cup, patch CupUpdate) Cup {
	if patch.DateTime != nil {
		existing.DateTime = *patch.DateTime
	}
	if patch.Username != nil {
		existing.Username = *patch.Username
	}
	if patch.CoffeeID != nil {
		existing.CoffeeID = *patch.CoffeeID
	}
	return existing
}

// DrinkRequest is the body for POST /actions/drink.
type DrinkRequest struct {
	Username string `json:"username" binding:"required"`
}
