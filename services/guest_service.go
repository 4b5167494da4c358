package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-guest-services/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GuestService manages the guest stay lifecycle: check-in occupies a room,
// checkout frees it, deletion cascades the guest's orders and invoices.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

type CheckInInput struct {
	FullName    string         `json:"fullName" binding:"required"`
	Phone       string         `json:"phone" binding:"required"`
	Email       string         `json:"email"`
	RoomID      uint           `json:"room_id" binding:"required"`
	Preferences datatypes.JSON `json:"preferences"`
}

// CheckIn creates the guest and marks the room OCCUPIED in one transaction.
func (s *GuestService) CheckIn(input CheckInInput) (*models.Guest, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.FullName == "" || input.Phone == "" {
		return nil, fmt.Errorf("%w: fullName and phone are required", ErrValidation)
	}

	var guest models.Guest
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, input.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("db error checking room %d: %w", input.RoomID, err)
		}
		if room.Status != models.RoomAvailable {
			return ErrRoomUnavailable
		}

		now := time.Now().UTC()
		guest = models.Guest{
			FullName:    input.FullName,
			Phone:       input.Phone,
			Email:       strings.TrimSpace(input.Email),
			RoomID:      &input.RoomID,
			Active:      true,
			CheckedInAt: &now,
			Preferences: input.Preferences,
		}
		if err := tx.Create(&guest).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicatePhone
			}
			return fmt.Errorf("failed to create guest: %w", err)
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ?", room.ID).
			Update("status", models.RoomOccupied).Error; err != nil {
			return fmt.Errorf("failed to update room %d status: %w", room.ID, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(guest.ID)
}

// Checkout deactivates the guest and frees the room; both writes happen in
// one transaction so either both succeed or neither does.
func (s *GuestService) Checkout(guestID uint) (*models.Guest, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if !guest.Active {
			return ErrGuestInactive
		}

		now := time.Now().UTC()
		if err := tx.Model(&guest).Updates(map[string]interface{}{
			"active":         false,
			"checked_out_at": now,
		}).Error; err != nil {
			return err
		}

		if guest.RoomID != nil {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *guest.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(guestID)
}

// Delete removes a guest with all their orders and invoices.
func (s *GuestService) Delete(guestID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}

		var invoiceIDs []uint
		if err := tx.Model(&models.Invoice{}).Where("guest_id = ?", guestID).Pluck("id", &invoiceIDs).Error; err != nil {
			return err
		}
		if len(invoiceIDs) > 0 {
			if err := tx.Where("invoice_id IN ?", invoiceIDs).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", invoiceIDs).Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
		}

		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("guest_id = ?", guestID).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", orderIDs).Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}

		if guest.Active && guest.RoomID != nil {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *guest.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&guest).Error
	})
}

func (s *GuestService) GetByID(guestID uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.Preload("Room").First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	guest.RoomNumber = guest.Room.RoomNumber
	return &guest, nil
}

// List returns guests newest first; activeOnly filters to current stays.
func (s *GuestService) List(activeOnly bool) ([]models.Guest, error) {
	q := s.DB.Preload("Room").Order("created_at DESC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var guests []models.Guest
	if err := q.Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve guests: %w", err)
	}
	for i := range guests {
		guests[i].RoomNumber = guests[i].Room.RoomNumber
	}
	return guests, nil
}

// FindByPhoneAndRoom matches an active guest for guest login.
func (s *GuestService) FindByPhoneAndRoom(phone, roomNumber string) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.
		Joins("JOIN rooms ON rooms.id = guests.room_id").
		Where("guests.phone = ? AND guests.active = ?", strings.TrimSpace(phone), true).
		Where("rooms.room_number = ?", strings.TrimSpace(roomNumber)).
		Preload("Room").
		First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}
	guest.RoomNumber = guest.Room.RoomNumber
	return &guest, nil
}
