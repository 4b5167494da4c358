package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-guest-services/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "guest_services_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// SeedDatabase populates empty tables with reasonable defaults so a fresh
// install is usable immediately.
func SeedDatabase() {
	// ---------------- Admin staff ----------------
	var staffCount int64
	DB.Model(&models.Staff{}).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Staff{
				FullName: "Admin User",
				Email:    "admin@hotel.local",
				Password: string(hash),
				Role:     models.RoleAdmin,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", Floor: "1", Type: "Standard", Price: 2500, Status: models.RoomAvailable},
			{RoomNumber: "102", Floor: "1", Type: "Standard", Price: 2500, Status: models.RoomAvailable},
			{RoomNumber: "201", Floor: "2", Type: "Deluxe", Price: 4000, Status: models.RoomAvailable},
			{RoomNumber: "202", Floor: "2", Type: "Deluxe", Price: 4000, Status: models.RoomAvailable},
			{RoomNumber: "301", Floor: "3", Type: "Suite", Price: 7500, Status: models.RoomAvailable},
		}
		DB.Create(&rooms)
		log.Println("Rooms seeded")
	}

	// ---------------- Services ----------------
	var svcCount int64
	DB.Model(&models.Service{}).Count(&svcCount)
	if svcCount == 0 {
		services := []models.Service{
			{Name: "Laundry", Category: "Housekeeping", Price: 300},
			{Name: "Room Cleaning", Category: "Housekeeping", Price: 0},
			{Name: "Spa Session", Category: "Wellness", Price: 1500},
			{Name: "Airport Pickup", Category: "Transport", Price: 1200},
		}
		DB.Create(&services)
		log.Println("Services seeded")
	}

	// ---------------- Food menu ----------------
	var foodCount int64
	DB.Model(&models.FoodMenuItem{}).Count(&foodCount)
	if foodCount == 0 {
		menu := []models.FoodMenuItem{
			{Name: "Club Sandwich", Category: "Snacks", Price: 250, Veg: false},
			{Name: "Paneer Tikka", Category: "Starters", Price: 320, Veg: true},
			{Name: "Masala Dosa", Category: "Breakfast", Price: 180, Veg: true},
			{Name: "Butter Chicken", Category: "Mains", Price: 450, Veg: false},
			{Name: "Fresh Lime Soda", Category: "Beverages", Price: 90, Veg: true},
		}
		DB.Create(&menu)
		log.Println("Food menu seeded")
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
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
		return err
	}

	SeedDatabase()
	return nil
}
