package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medibook-server/internal/models"
)

// Manager owns the appointment collection: it validates bookings, detects
// slot conflicts, applies status transitions and reclassifies stale records.
type Manager struct {
	DB *gorm.DB
}

// NewManager creates a new Manager.
func NewManager(db *gorm.DB) *Manager {
	return &Manager{DB: db}
}

// BookingRequest is a patient's request to hold a slot.
type BookingRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Symptoms string `json:"symptoms"`
	Notes    string `json:"notes"`
}

// AdminBookingRequest books a slot on behalf of a patient, optionally with an
// explicit status.
type AdminBookingRequest struct {
	PatientID string                   `json:"patientId" binding:"required"`
	DoctorID  string                   `json:"doctorId" binding:"required"`
	Date      string                   `json:"date" binding:"required"`
	Time      string                   `json:"time" binding:"required"`
	Status    models.AppointmentStatus `json:"status"`
	Symptoms  string                   `json:"symptoms"`
	Notes     string                   `json:"notes"`
}

// Book validates a patient booking and creates the appointment with status
// Pending. The slot conflict pre-check gives a friendly failure; the unique
// slot-key index is the backstop that closes the check-then-insert race.
func (m *Manager) Book(ctx context.Context, patientID string, req BookingRequest) (*models.Appointment, error) {
	if req.DoctorID == "" || req.Date == "" || req.Time == "" {
		return nil, ErrMissingFields
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	doctor, err := m.resolveDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.UserID == patientID {
		return nil, ErrSelfBooking
	}

	if err := m.checkSlotFree(ctx, req.DoctorID, date, req.Time); err != nil {
		return nil, err
	}

	key := models.SlotKeyFor(req.DoctorID, date, req.Time)
	appointment := models.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Status:    models.StatusPending,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
		SlotKey:   &key,
	}
	if err := m.DB.WithContext(ctx).Create(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	return &appointment, nil
}

// AdminBook creates an appointment on behalf of any patient. The self-booking
// guard does not apply; the status defaults to Confirmed and may be any of the
// six enumerated values.
func (m *Manager) AdminBook(ctx context.Context, req AdminBookingRequest) (*models.Appointment, error) {
	if req.DoctorID == "" || req.Date == "" || req.Time == "" {
		return nil, ErrMissingFields
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	status := req.Status
	if status == "" {
		status = models.StatusConfirmed
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := m.resolveDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}
	var patient models.User
	err = m.DB.WithContext(ctx).
		Where("id = ? AND role = ?", req.PatientID, models.RolePatient).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("resolving patient: %w", err)
	}

	if err := m.checkSlotFree(ctx, req.DoctorID, date, req.Time); err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Status:    status,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
	}
	// Only an active-hold status occupies the slot key.
	if status.ActiveHold() {
		key := models.SlotKeyFor(req.DoctorID, date, req.Time)
		appointment.SlotKey = &key
	}
	if err := m.DB.WithContext(ctx).Create(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	return &appointment, nil
}

// UpdateStatus applies a new status to an existing appointment. Any status
// may move to any other; the allow-list of six values is the only check.
// The slot key is kept consistent: moving into an active-hold status reclaims
// the slot (and fails with ErrSlotTaken if another booking holds it), moving
// out releases it.
func (m *Manager) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var appointment models.Appointment
	if err := m.DB.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading appointment: %w", err)
	}

	var key *string
	if status.ActiveHold() {
		k := models.SlotKeyFor(appointment.DoctorID, appointment.Date, appointment.Time)
		key = &k
	}
	err := m.DB.WithContext(ctx).Model(&appointment).
		Updates(map[string]interface{}{"status": status, "slot_key": key}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}
	appointment.Status = status
	appointment.SlotKey = key
	return &appointment, nil
}

// Delete removes an appointment permanently.
func (m *Manager) Delete(ctx context.Context, id string) error {
	result := m.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get loads a single appointment by id.
func (m *Manager) Get(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := m.DB.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading appointment: %w", err)
	}
	return &appointment, nil
}

// SweepExpired reclassifies every appointment whose date is strictly in the
// past and whose status is not terminal as Expired, in one bulk update.
// It is idempotent: Expired records are excluded by the status filter.
func (m *Manager) SweepExpired(ctx context.Context) (int64, error) {
	result := m.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("date < ?", time.Time(models.Today())).
		Where("status NOT IN ?", []models.AppointmentStatus{
			models.StatusCompleted, models.StatusCancelled, models.StatusExpired,
		}).
		Updates(map[string]interface{}{"status": models.StatusExpired, "slot_key": nil})
	if result.Error != nil {
		return 0, fmt.Errorf("expiry sweep: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListForDoctor returns a doctor's appointments ordered by date and slot.
func (m *Manager) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return m.list(ctx, "doctor_id = ?", doctorID)
}

// ListForPatient returns a patient's appointments ordered by date and slot.
func (m *Manager) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return m.list(ctx, "patient_id = ?", patientID)
}

// ListAll returns every appointment ordered by date and slot.
func (m *Manager) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return m.list(ctx, "")
}

func (m *Manager) list(ctx context.Context, cond string, args ...interface{}) ([]models.Appointment, error) {
	var appointments []models.Appointment
	query := m.DB.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Order("date asc, time asc")
	if cond != "" {
		query = query.Where(cond, args...)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, nil
}

// resolveDoctor looks the doctor up in the directory by identity.
func (m *Manager) resolveDoctor(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	err := m.DB.WithContext(ctx).Where("user_id = ?", doctorID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("resolving doctor: %w", err)
	}
	return &profile, nil
}

// checkSlotFree rejects the booking when an appointment in an active-hold
// status already occupies the slot.
func (m *Manager) checkSlotFree(ctx context.Context, doctorID string, date models.DateOnly, slot string) error {
	var count int64
	err := m.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ?", doctorID, time.Time(date), slot).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking slot: %w", err)
	}
	if count > 0 {
		return ErrSlotTaken
	}
	return nil
}
