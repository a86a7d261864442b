package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AppointmentStatus classifies an appointment. The value set is the only
// constraint: admins may move an appointment from any status to any other.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusRejected  AppointmentStatus = "Rejected"
	StatusExpired   AppointmentStatus = "Expired"
)

// AllStatuses is the allow-list accepted by status updates.
var AllStatuses = []AppointmentStatus{
	StatusPending, StatusConfirmed, StatusCompleted,
	StatusCancelled, StatusRejected, StatusExpired,
}

// Valid reports whether s is one of the six enumerated statuses.
func (s AppointmentStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ActiveHold reports whether s blocks the slot for new bookings.
// Both booking paths use the same set.
func (s AppointmentStatus) ActiveHold() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether s is exempt from the expiry sweep.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// DateOnly stores a calendar date at day granularity and serializes as
// YYYY-MM-DD in JSON and in the database.
type DateOnly time.Time

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DateOnly(t), nil
}

// Today returns the current calendar date.
func Today() DateOnly {
	y, m, d := time.Now().Date()
	return DateOnly(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Before reports whether d is strictly earlier than other.
func (d DateOnly) Before(other DateOnly) bool {
	return time.Time(d).Before(time.Time(other))
}

func (d DateOnly) String() string {
	return time.Time(d).Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements sql.Scanner. Drivers hand dates back as time.Time or as
// text with a time-of-day suffix; only the calendar date is kept.
func (d *DateOnly) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		y, m, day := v.Date()
		*d = DateOnly(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

func (d *DateOnly) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType tells gorm to use a date column.
func (DateOnly) GormDataType() string {
	return "date"
}

// Appointment represents a booked consultation slot. PatientID and DoctorID
// are immutable after creation; Time is an opaque slot label compared only
// for equality.
type Appointment struct {
	BaseModel
	PatientID string            `gorm:"size:36;index" json:"patientId"`
	DoctorID  string            `gorm:"size:36;index" json:"doctorId"`
	Date      DateOnly          `json:"date"`
	Time      string            `gorm:"size:20" json:"time"`
	Status    AppointmentStatus `gorm:"size:20;default:'Pending'" json:"status"`
	Symptoms  string            `gorm:"type:text" json:"symptoms,omitempty"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`

	// SlotKey is doctorID|date|time while the appointment holds an
	// active-hold status and NULL otherwise. The unique index makes the
	// conflict check an atomic insert-if-absent rather than a separate
	// read-then-write.
	SlotKey *string `gorm:"size:120;uniqueIndex" json:"-"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}

// SlotKeyFor builds the uniqueness key for a doctor/date/time slot.
func SlotKeyFor(doctorID string, date DateOnly, slot string) string {
	return doctorID + "|" + date.String() + "|" + slot
}
