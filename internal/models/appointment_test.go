package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAppointmentStatus_Valid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []AppointmentStatus{"Upcoming", "pending", "Done", "Approved", ""} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestAppointmentStatus_ActiveHold(t *testing.T) {
	holds := map[AppointmentStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: false,
		StatusCancelled: false,
		StatusRejected:  false,
		StatusExpired:   false,
	}
	for s, want := range holds {
		if got := s.ActiveHold(); got != want {
			t.Errorf("%s.ActiveHold() = %v, want %v", s, got, want)
		}
	}
}

func TestAppointmentStatus_Terminal(t *testing.T) {
	terminal := map[AppointmentStatus]bool{
		StatusPending:   false,
		StatusConfirmed: false,
		StatusCompleted: true,
		StatusCancelled: true,
		StatusRejected:  false,
		StatusExpired:   true,
	}
	for s, want := range terminal {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2026-08-23" {
		t.Errorf("expected 2026-08-23, got %s", d.String())
	}

	for _, bad := range []string{"", "23-08-2026", "2026/08/23", "2026-13-01", "tomorrow"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDateOnly_JSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-08-23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2026-08-23"` {
		t.Errorf(`expected "2026-08-23", got %s`, data)
	}

	var back DateOnly
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.String() != d.String() {
		t.Errorf("round trip changed date: %s -> %s", d, back)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &back); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDateOnly_Before(t *testing.T) {
	earlier, _ := ParseDate("2026-08-22")
	later, _ := ParseDate("2026-08-23")
	if !earlier.Before(later) {
		t.Error("expected earlier < later")
	}
	if later.Before(earlier) {
		t.Error("expected later >= earlier")
	}
	if earlier.Before(earlier) {
		t.Error("a date is not before itself")
	}
}

func TestDateOnly_ScanDropsTimeOfDay(t *testing.T) {
	var d DateOnly

	if err := d.Scan(time.Date(2026, 8, 23, 15, 42, 7, 0, time.UTC)); err != nil {
		t.Fatalf("scan time.Time: %v", err)
	}
	if d.String() != "2026-08-23" {
		t.Errorf("expected 2026-08-23, got %s", d)
	}

	if err := d.Scan("2026-08-24 00:00:00+00:00"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2026-08-24" {
		t.Errorf("expected 2026-08-24, got %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}

func TestSlotKeyFor(t *testing.T) {
	d, _ := ParseDate("2026-08-23")
	got := SlotKeyFor("doc-1", d, "10:00 AM")
	want := "doc-1|2026-08-23|10:00 AM"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
