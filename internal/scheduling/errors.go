package scheduling

import "errors"

// Common errors returned by the appointment lifecycle manager.
var (
	ErrMissingFields   = errors.New("doctorId, date and time are required")
	ErrInvalidDate     = errors.New("date must be formatted as YYYY-MM-DD")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrSelfBooking     = errors.New("doctors cannot book appointments with themselves")
	ErrSlotTaken       = errors.New("slot already booked")
	ErrInvalidStatus   = errors.New("invalid appointment status")
	ErrNotFound        = errors.New("appointment not found")
)
