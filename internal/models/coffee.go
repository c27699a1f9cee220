package models

import "time"

// Coffee is one batch of beans. Cups reference it by id; the back-reference
// is never serialized, it only exists so GORM emits the foreign key.
type Coffee struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RoastingFacility string     `gorm:"not null" json:"roasting_facility"`
	CoffeeName       string     `gorm:"not null" json:"coffee_name"`
	SizeG            int        `gorm:"not null" json:"size_g"`
	RoastDate        *time.Time `gorm:"type:date" json:"roast_date"`
	OpenDate         *time.Time `gorm:"type:date" json:"open_date"`
	Price            *float64   `json:"price"`
	CountryOfOrigin  *string    `json:"country_of_origin"`

	Cups []Cup `gorm:"foreignKey:CoffeeID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Coffee) TableName() string {
	return "coffee"
}

// CoffeeCreate is the request body for POST /coffee/.
type CoffeeCreate struct {
	RoastingFacility string     `json:"roasting_facility" binding:"required"`
	CoffeeName       string     `json:"coffee_name" binding:"required"`
	SizeG            int        `json:"size_g" binding:"required"`
	RoastDate        *time.Time `json:"roast_date"`
	OpenDate         *time.Time `json:"open_date"`
	Price            *float64   `json:"price"`
	CountryOfOrigin  *string    `json:"country_of_origin"`
}

// ToModel builds the row to insert. The id is left zero for the database
// to generate.
func (c CoffeeCreate) ToModel() Coffee {
	return Coffee{
		RoastingFacility: c.RoastingFacility,
		CoffeeName:       c.CoffeeName,
		SizeG:            c.SizeG,
		RoastDate:        c.RoastDate,
		OpenDate:         c.OpenDate,
		Price:            c.Price,
		CountryOfOrigin:  c.CountryOfOrigin,
	}
}

// CoffeeUpdate is the sparse patch body for PATCH /coffee/:id. A nil field
// means "leave as is".
type CoffeeUpdate struct {
	RoastingFacility *string    `json:"roasting_facility"`
	CoffeeName       *string    `json:"coffee_name"`
	SizeG            *int       `json:"size_g"`
	RoastDate        *time.Time `json:"roast_date"`
	OpenDate         *time.Time `json:"open_date"`
	Price            *float64   `json:"price"`
	CountryOfOrigin  *string    `json:"country_of_origin"`
}

// ApplyCoffeeUpdate merges a sparse patch onto an existing row and returns
// the result. The id is never touched.
func ApplyCoffeeUpdate(existing Coffee, patch CoffeeUpdate) Coffee {
	if patch.RoastingFacility != nil {
		existing.RoastingFacility = *patch.RoastingFacility
	}
	if patch.CoffeeName != nil {
		existing.CoffeeName = *patch.CoffeeName
	}
	if patch.SizeG != nil {
		existing.SizeG = *patch.SizeG
	}
	if patch.RoastDate != nil {
		existing.RoastDate = patch.RoastDate
	}
	if patch.OpenDate != nil {
		existing.OpenDate = patch.OpenDate
	}
	if patch.Price != nil {
		existing.Price = patch.Price
	}
	if patch.CountryOfOrigin != nil {
		existing.CountryOfOrigin = patch.CountryOfOrigin
	}
	return existing
}
