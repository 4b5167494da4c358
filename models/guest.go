package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FullName string `gorm:"size:255" json:"fullName"`
	Phone    string `gorm:"uniqueIndex;size:30" json:"phone"`
	Email    string `gorm:"size:150" json:"email"`

	RoomID *uint `gorm:"index;column:room_id" json:"room_id"`
	Room   Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	// ใช้ส่งค่าไป frontend (ไม่บันทึก DB)
	RoomNumber string `gorm:"-" json:"roomNumber"`

	Active       bool       `gorm:"default:true;index" json:"active"`
	CheckedInAt  *time.Time `json:"checkedInAt"`
	CheckedOutAt *time.Time `json:"checkedOutAt"`

	// free-form stay preferences captured at check-in (dietary, housekeeping, ...)
	Preferences datatypes.JSON `gorm:"column:preferences" json:"preferences,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
