package scheduling

import (
	"context"
	"testing"

	"medibook-server/internal/models"
)

func TestDoctorStats_EarningsRecomputedFromCurrentFee(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	doctor := seedDoctor(t, db, "doc@example.com", 500)
	patient := seedUser(t, db, "pat@example.com", models.RolePatient)

	appt, err := m.Book(context.Background(), patient.ID, BookingRequest{
		DoctorID: doctor.ID, Date: futureDate(1), Time: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := m.UpdateStatus(context.Background(), appt.ID, models.StatusCompleted); err != nil {
		t.Fatalf("completing failed: %v", err)
	}

	stats, err := m.DoctorStats(context.Background(), doctor.ID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Earnings != 500 {
		t.Errorf("expected earnings 500, got %v", stats.Earnings)
	}

	// No fee snapshotting: raising the fee retroactively changes the
	// reported earnings for the already-completed appointment.
	if err := db.Model(&models.DoctorProfile{}).
		Where("user_id = ?", doctor.ID).
		Update("fees", 800).Error; err != nil {
		t.Fatalf("updating fee: %v", err)
	}

	stats, err = m.DoctorStats(context.Background(), doctor.ID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Earnings != 800 {
		t.Errorf("expected earnings 800 after fee change, got %v", stats.Earnings)
	}
}

func TestDoctorStats_Counts(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	doctor := seedDoctor(t, db, "doc@example.com", 250)
	patient1 := seedUser(t, db, "pat1@example.com", models.RolePatient)
	patient2 := seedUser(t, db, "pat2@example.com", models.RolePatient)

	// Today, two patients; plus one upcoming later this week.
	today := futureDate(0)
	bookings := []struct {
		patient *models.User
		date    string
		slot    string
	}{
		{patient1, today, "09:00 AM"},
		{patient2, today, "10:00 AM"},
		{patient1, futureDate(2), "09:00 AM"},
	}
	for _, b := range bookings {
		_, err := m.Book(context.Background(), b.patient.ID, BookingRequest{
			DoctorID: doctor.ID, Date: b.date, Time: b.slot,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
	}

	stats, err := m.DoctorStats(context.Background(), doctor.ID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TodayAppointments != 2 {
		t.Errorf("expected 2 appointments today, got %d", stats.TodayAppointments)
	}
	if stats.UniquePatients != 2 {
		t.Errorf("expected 2 unique patients, got %d", stats.UniquePatients)
	}
	if stats.Upcoming != 3 {
		t.Errorf("expected 3 upcoming appointments, got %d", stats.Upcoming)
	}
	if stats.Completed != 0 || stats.Earnings != 0 {
		t.Errorf("expected no completed visits yet, got %d/%v", stats.Completed, stats.Earnings)
	}
}

func TestDoctorStats_UnknownDoctor(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)

	if _, err := m.DoctorStats(context.Background(), "missing"); err != ErrDoctorNotFound {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	doctor := seedDoctor(t, db, "doc@example.com", 500)
	patient := seedUser(t, db, "pat@example.com", models.RolePatient)
	seedUser(t, db, "admin@example.com", models.RoleAdmin)

	appt, err := m.Book(context.Background(), patient.ID, BookingRequest{
		DoctorID: doctor.ID, Date: futureDate(1), Time: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := m.UpdateStatus(context.Background(), appt.ID, models.StatusCompleted); err != nil {
		t.Fatalf("completing failed: %v", err)
	}
	if _, err := m.Book(context.Background(), patient.ID, BookingRequest{
		DoctorID: doctor.ID, Date: futureDate(1), Time: "11:00 AM",
	}); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	stats, err := m.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalPatients != 1 || stats.TotalDoctors != 1 || stats.TotalAdmins != 1 {
		t.Errorf("unexpected role totals: %+v", stats)
	}
	if stats.TotalAppointments != 2 {
		t.Errorf("expected 2 appointments, got %d", stats.TotalAppointments)
	}
	if stats.AppointmentsByStatus[models.StatusCompleted] != 1 {
		t.Errorf("expected 1 completed appointment, got %d",
			stats.AppointmentsByStatus[models.StatusCompleted])
	}
	if stats.AppointmentsByStatus[models.StatusPending] != 1 {
		t.Errorf("expected 1 pending appointment, got %d",
			stats.AppointmentsByStatus[models.StatusPending])
	}
}

func TestPatientStats(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	doctor := seedDoctor(t, db, "doc@example.com", 500)
	patient := seedUser(t, db, "pat@example.com", models.RolePatient)

	if _, err := m.Book(context.Background(), patient.ID, BookingRequest{
		DoctorID: doctor.ID, Date: futureDate(5), Time: "10:00 AM",
	}); err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	sooner, err := m.Book(context.Background(), patient.ID, BookingRequest{
		DoctorID: doctor.ID, Date: futureDate(2), Time: "10:00 AM",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	stats, err := m.PatientStats(context.Background(), patient.ID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.ByStatus[models.StatusPending] != 2 {
		t.Errorf("expected 2 pending appointments, got %d", stats.ByStatus[models.StatusPending])
	}
	if stats.Next == nil {
		t.Fatal("expected a next appointment")
	}
	if stats.Next.ID != sooner.ID {
		t.Errorf("expected next appointment %s, got %s", sooner.ID, stats.Next.ID)
	}
}

func TestPatientStats_NoUpcoming(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	patient := seedUser(t, db, "pat@example.com", models.RolePatient)

	stats, err := m.PatientStats(context.Background(), patient.ID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Next != nil {
		t.Errorf("expected no next appointment, got %+v", stats.Next)
	}
}
