package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a bookable hotel service (spa, laundry, airport pickup, ...).
type Service struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255" json:"name"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Price       float64        `gorm:"type:decimal(10,2)" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type FoodMenuItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255" json:"name"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Price       float64        `gorm:"type:decimal(10,2)" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	Veg         bool           `gorm:"default:false" json:"veg"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
