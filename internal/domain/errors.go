package domain

import "errors"

var (
	ErrValidation        = errors.New("Invalid data")
	ErrUnsupportedMedia  = errors.New("Request content type must be 'application/json'")
	ErrInvalidDateFormat = errors.New("Invalid date format")
	ErrInvalidID         = errors.New("Invalid id format")

	ErrUserNotFound     = errors.New("User not found")
	ErrEventNotFound    = errors.New("Event not found")
	ErrGuestNotFound    = errors.New("Guest not found")
	ErrReminderNotFound = errors.New("Reminder not found")

	ErrDuplicateGuest = errors.New("Guest already exists for this event")
	ErrUserExists     = errors.New("Email already registered")
	ErrEventExists    = errors.New("Event id already exists")

	ErrLockTimeout      = errors.New("Event is busy, try again")
	ErrStoreUnavailable = errors.New("database not connected")
)
