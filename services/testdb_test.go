package services

import (
	"testing"
	"time"

	"hotel-guest-services/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema. Max open
// conns is pinned to 1 so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Staff{},
		&models.HotelSetting{},
		&models.Room{},
		&models.Guest{},
		&models.Service{},
		&models.FoodMenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedGuest(t *testing.T, db *gorm.DB, name, phone, roomNumber string) *models.Guest {
	t.Helper()

	room := models.Room{RoomNumber: roomNumber, Type: "Standard", Price: 2500, Status: models.RoomOccupied}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}

	now := time.Now().UTC()
	guest := models.Guest{
		FullName:    name,
		Phone:       phone,
		RoomID:      &room.ID,
		Active:      true,
		CheckedInAt: &now,
	}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("failed to seed guest: %v", err)
	}
	return &guest
}

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Service, *models.FoodMenuItem, *models.FoodMenuItem) {
	t.Helper()

	svc := models.Service{Name: "Laundry", Category: "Housekeeping", Price: 100, Active: true}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	food := models.FoodMenuItem{Name: "Club Sandwich", Category: "Snacks", Price: 100, Available: true}
	if err := db.Create(&food).Error; err != nil {
		t.Fatalf("failed to seed food item: %v", err)
	}
	drink := models.FoodMenuItem{Name: "Lime Soda", Category: "Beverages", Price: 50, Available: true}
	if err := db.Create(&drink).Error; err != nil {
		t.Fatalf("failed to seed drink item: %v", err)
	}
	return &svc, &food, &drink
}

// completedOrder creates an order directly in COMPLETED state with the given
// total, bypassing the lifecycle, for invoice and analytics tests.
func completedOrder(t *testing.T, db *gorm.DB, guestID uint, total float64) *models.Order {
	t.Helper()

	order := models.Order{
		GuestID:     guestID,
		OrderType:   models.OrderTypeFood,
		Status:      models.OrderCompleted,
		TotalAmount: total,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return &order
}

func uintPtr(v uint) *uint { return &v }
