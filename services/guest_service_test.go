package services

import (
	"errors"
	"testing"

	"hotel-guest-services/models"

	"gorm.io/gorm"
)

func availableRoom(t *testing.T, db *gorm.DB, number string) *models.Room {
	t.Helper()

	room := models.Room{RoomNumber: number, Type: "Standard", Price: 2500, Status: models.RoomAvailable}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return &room
}

func TestCheckInOccupiesRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	room := availableRoom(t, db, "201")

	guest, err := svc.CheckIn(CheckInInput{FullName: "Asha Rao", Phone: "9000000001", RoomID: room.ID})
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if !guest.Active || guest.CheckedInAt == nil {
		t.Errorf("guest = active %v / checkedInAt %v, want active with timestamp", guest.Active, guest.CheckedInAt)
	}
	if guest.RoomNumber != "201" {
		t.Errorf("roomNumber = %q, want 201", guest.RoomNumber)
	}

	var reread models.Room
	if err := db.First(&reread, room.ID).Error; err != nil {
		t.Fatalf("failed to reload room: %v", err)
	}
	if reread.Status != models.RoomOccupied {
		t.Errorf("room status = %s, want OCCUPIED", reread.Status)
	}
}

func TestCheckInRejectsOccupiedRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	room := availableRoom(t, db, "201")

	if _, err := svc.CheckIn(CheckInInput{FullName: "Asha Rao", Phone: "9000000001", RoomID: room.ID}); err != nil {
		t.Fatalf("first CheckIn() error = %v", err)
	}
	_, err := svc.CheckIn(CheckInInput{FullName: "Vik Shetty", Phone: "9000000002", RoomID: room.ID})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("CheckIn() into occupied room error = %v, want ErrRoomUnavailable", err)
	}
}

func TestCheckInValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	room := availableRoom(t, db, "201")

	tests := []struct {
		name  string
		input CheckInInput
		want  error
	}{
		{"missing name", CheckInInput{Phone: "9000000001", RoomID: room.ID}, ErrValidation},
		{"blank phone", CheckInInput{FullName: "Asha Rao", Phone: "   ", RoomID: room.ID}, ErrValidation},
		{"unknown room", CheckInInput{FullName: "Asha Rao", Phone: "9000000001", RoomID: 999}, ErrRoomNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CheckIn(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("CheckIn() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheckInDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	first := availableRoom(t, db, "201")
	second := availableRoom(t, db, "202")

	if _, err := svc.CheckIn(CheckInInput{FullName: "Asha Rao", Phone: "9000000001", RoomID: first.ID}); err != nil {
		t.Fatalf("first CheckIn() error = %v", err)
	}
	_, err := svc.CheckIn(CheckInInput{FullName: "Also Asha", Phone: "9000000001", RoomID: second.ID})
	if !errors.Is(err, ErrDuplicatePhone) {
		t.Errorf("duplicate phone CheckIn() error = %v, want ErrDuplicatePhone", err)
	}

	// the failed transaction must not have occupied the second room
	var reread models.Room
	if err := db.First(&reread, second.ID).Error; err != nil {
		t.Fatalf("failed to reload room: %v", err)
	}
	if reread.Status != models.RoomAvailable {
		t.Errorf("room status = %s, want AVAILABLE after rolled-back check-in", reread.Status)
	}
}

func TestCheckoutFreesRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	room := availableRoom(t, db, "201")

	guest, err := svc.CheckIn(CheckInInput{FullName: "Asha Rao", Phone: "9000000001", RoomID: room.ID})
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	out, err := svc.Checkout(guest.ID)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if out.Active || out.CheckedOutAt == nil {
		t.Errorf("guest after checkout = active %v / checkedOutAt %v", out.Active, out.CheckedOutAt)
	}

	var reread models.Room
	if err := db.First(&reread, room.ID).Error; err != nil {
		t.Fatalf("failed to reload room: %v", err)
	}
	if reread.Status != models.RoomAvailable {
		t.Errorf("room status = %s, want AVAILABLE", reread.Status)
	}

	if _, err := svc.Checkout(guest.ID); !errors.Is(err, ErrGuestInactive) {
		t.Errorf("second Checkout() error = %v, want ErrGuestInactive", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	guests := NewGuestService(db)
	settings := NewSettingsService(db)
	invoices := NewInvoiceService(db, settings)

	room := availableRoom(t, db, "201")
	guest, err := guests.CheckIn(CheckInInput{FullName: "Asha Rao", Phone: "9000000001", RoomID: room.ID})
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	order := completedOrder(t, db, guest.ID, 250)
	if _, err := invoices.GenerateForOrder(order.ID); err != nil {
		t.Fatalf("GenerateForOrder() error = %v", err)
	}

	if err := guests.Delete(guest.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	for name, count := range map[string]int64{
		"orders":        tableCount(t, db, &models.Order{}),
		"invoices":      tableCount(t, db, &models.Invoice{}),
		"invoice items": tableCount(t, db, &models.InvoiceItem{}),
	} {
		if count != 0 {
			t.Errorf("%s remaining = %d, want 0", name, count)
		}
	}

	if _, err := guests.GetByID(guest.ID); !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrGuestNotFound", err)
	}

	var reread models.Room
	if err := db.First(&reread, room.ID).Error; err != nil {
		t.Fatalf("failed to reload room: %v", err)
	}
	if reread.Status != models.RoomAvailable {
		t.Errorf("room status = %s, want AVAILABLE after guest deletion", reread.Status)
	}
}

func tableCount(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestFindByPhoneAndRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	room := availableRoom(t, db, "201")

	guest, err := svc.CheckIn(CheckInInput{FullName: "Asha Rao", Phone: "9000000001", RoomID: room.ID})
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	found, err := svc.FindByPhoneAndRoom("9000000001", "201")
	if err != nil {
		t.Fatalf("FindByPhoneAndRoom() error = %v", err)
	}
	if found.ID != guest.ID {
		t.Errorf("found guest %d, want %d", found.ID, guest.ID)
	}

	if _, err := svc.FindByPhoneAndRoom("9000000001", "999"); !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("wrong room lookup error = %v, want ErrGuestNotFound", err)
	}

	if _, err := svc.Checkout(guest.ID); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if _, err := svc.FindByPhoneAndRoom("9000000001", "201"); !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("checked-out guest lookup error = %v, want ErrGuestNotFound", err)
	}
}
