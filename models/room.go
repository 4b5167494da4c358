package models

import (
	"gorm.io/gorm"
)

const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
)

type Room struct {
	gorm.Model

	RoomNumber  string  `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor       string  `json:"floor" gorm:"type:varchar(10)"`
	Type        string  `json:"type" gorm:"size:100"`
	Price       float64 `json:"price"`
	Status      string  `json:"status" gorm:"size:20;default:AVAILABLE;index"`
	Description string  `json:"description" gorm:"type:text"`
}
