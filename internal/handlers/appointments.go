package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"medibook-server/internal/middleware"
	"medibook-server/internal/scheduling"
	"medibook-server/internal/utils"
)

// AppointmentHandler exposes the patient-facing appointment endpoints.
type AppointmentHandler struct {
	Manager *scheduling.Manager
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(manager *scheduling.Manager) *AppointmentHandler {
	return &AppointmentHandler{Manager: manager}
}

// BookAppointment handles a patient booking a slot with a doctor.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req scheduling.BookingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Manager.Book(c.Request.Context(), patientID, req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", gin.H{
		"id":     appointment.ID,
		"date":   appointment.Date,
		"time":   appointment.Time,
		"status": appointment.Status,
	})
}

// ListMyAppointments returns the authenticated patient's appointments.
func (h *AppointmentHandler) ListMyAppointments(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointments, err := h.Manager.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// Dashboard returns the patient's appointment summary.
func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.Manager.PatientStats(c.Request.Context(), patientID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Dashboard fetched successfully", stats)
}

// respondSchedulingError maps lifecycle manager errors onto HTTP responses.
// Slot conflicts answer 400 rather than 409 to match the public API contract.
func respondSchedulingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrMissingFields),
		errors.Is(err, scheduling.ErrInvalidDate),
		errors.Is(err, scheduling.ErrInvalidStatus),
		errors.Is(err, scheduling.ErrSlotTaken):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, scheduling.ErrSelfBooking):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, scheduling.ErrDoctorNotFound),
		errors.Is(err, scheduling.ErrPatientNotFound),
		errors.Is(err, scheduling.ErrNotFound):
		utils.NotFound(c, err.Error())
	default:
		_ = c.Error(err)
		utils.InternalServerError(c)
	}
}
