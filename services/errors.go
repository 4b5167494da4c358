package services

import (
	"errors"
	"strings"
)

// Sentinel errors mapped to the HTTP taxonomy at the controller boundary.
var (
	ErrGuestNotFound    = errors.New("guest_not_found")
	ErrGuestInactive    = errors.New("guest_not_checked_in")
	ErrOrderNotFound    = errors.New("order_not_found")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrRoomUnavailable  = errors.New("room_not_available")
	ErrForbidden        = errors.New("forbidden")
	ErrOrderNotPending  = errors.New("order_not_pending")
	ErrOrderNotComplete = errors.New("order_not_completed")
	ErrNoEligibleOrders = errors.New("no_eligible_orders")
	ErrInvoiceFinalized = errors.New("invoice_already_finalized")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrValidation       = errors.New("validation")
	ErrDuplicatePhone   = errors.New("duplicate_phone")
)

// isDuplicateKey matches the unique-violation messages of both MySQL and
// sqlite drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") || strings.Contains(msg, "constraint")
}
