package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medibook-server/internal/models"
)

// DoctorStats are the aggregate counts shown on a doctor's dashboard.
// Earnings are recomputed at query time from the current fee, so a fee
// change retroactively changes reported earnings for completed visits.
type DoctorStats struct {
	TodayAppointments int64   `json:"todayAppointments"`
	UniquePatients    int64   `json:"uniquePatients"`
	Upcoming          int64   `json:"upcoming"`
	Completed         int64   `json:"completed"`
	Earnings          float64 `json:"earnings"`
}

// AdminStats are global totals for the admin dashboard.
type AdminStats struct {
	TotalPatients          int64                              `json:"totalPatients"`
	TotalDoctors           int64                              `json:"totalDoctors"`
	TotalAdmins            int64                              `json:"totalAdmins"`
	TotalAppointments      int64                              `json:"totalAppointments"`
	AppointmentsByStatus   map[models.AppointmentStatus]int64 `json:"appointmentsByStatus"`
	PendingDoctorApprovals int64                              `json:"pendingDoctorApprovals"`
}

// PatientStats summarizes a patient's own appointments.
type PatientStats struct {
	ByStatus map[models.AppointmentStatus]int64 `json:"byStatus"`
	Next     *models.Appointment                `json:"next,omitempty"`
}

// DoctorStats computes the dashboard aggregates for one doctor.
func (m *Manager) DoctorStats(ctx context.Context, doctorID string) (*DoctorStats, error) {
	profile, err := m.resolveDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	stats := &DoctorStats{}
	today := time.Time(models.Today())

	if err := m.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, today).
		Count(&stats.TodayAppointments).Error; err != nil {
		return nil, fmt.Errorf("counting today's appointments: %w", err)
	}
	if err := m.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Distinct("patient_id").
		Count(&stats.UniquePatients).Error; err != nil {
		return nil, fmt.Errorf("counting unique patients: %w", err)
	}
	if err := m.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND date >= ?", doctorID, today).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&stats.Upcoming).Error; err != nil {
		return nil, fmt.Errorf("counting upcoming appointments: %w", err)
	}
	if err := m.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, models.StatusCompleted).
		Count(&stats.Completed).Error; err != nil {
		return nil, fmt.Errorf("counting completed appointments: %w", err)
	}

	stats.Earnings = float64(stats.Completed) * profile.Fees
	return stats, nil
}

// AdminStats computes the global totals for the admin dashboard.
func (m *Manager) AdminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{AppointmentsByStatus: make(map[models.AppointmentStatus]int64)}
	db := m.DB.WithContext(ctx)

	roleCounts := []struct {
		Role models.Role
		Dest *int64
	}{
		{models.RolePatient, &stats.TotalPatients},
		{models.RoleDoctor, &stats.TotalDoctors},
		{models.RoleAdmin, &stats.TotalAdmins},
	}
	for _, rc := range roleCounts {
		if err := db.Model(&models.User{}).Where("role = ?", rc.Role).Count(rc.Dest).Error; err != nil {
			return nil, fmt.Errorf("counting %s users: %w", rc.Role, err)
		}
	}

	if err := db.Model(&models.Appointment{}).Count(&stats.TotalAppointments).Error; err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}
	var rows []struct {
		Status models.AppointmentStatus
		Total  int64
	}
	if err := db.Model(&models.Appointment{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("counting appointments by status: %w", err)
	}
	for _, row := range rows {
		stats.AppointmentsByStatus[row.Status] = row.Total
	}

	if err := db.Model(&models.DoctorProfile{}).
		Where("status = ?", models.ApprovalPending).
		Count(&stats.PendingDoctorApprovals).Error; err != nil {
		return nil, fmt.Errorf("counting pending approvals: %w", err)
	}
	return stats, nil
}

// PatientStats computes a patient's own dashboard summary.
func (m *Manager) PatientStats(ctx context.Context, patientID string) (*PatientStats, error) {
	stats := &PatientStats{ByStatus: make(map[models.AppointmentStatus]int64)}
	db := m.DB.WithContext(ctx)

	var rows []struct {
		Status models.AppointmentStatus
		Total  int64
	}
	if err := db.Model(&models.Appointment{}).
		Select("status, count(*) as total").
		Where("patient_id = ?", patientID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("counting appointments by status: %w", err)
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Total
	}

	var next models.Appointment
	err := db.Preload("Doctor").
		Where("patient_id = ? AND date >= ?", patientID, time.Time(models.Today())).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("date asc, time asc").
		First(&next).Error
	switch {
	case err == nil:
		stats.Next = &next
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No upcoming appointment.
	default:
		return nil, fmt.Errorf("loading next appointment: %w", err)
	}
	return stats, nil
}
