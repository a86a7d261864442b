package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/models"
	"medibook-server/internal/scheduling"
	"medibook-server/internal/utils"
)

// AdminHandler exposes the moderation endpoints: appointments, users,
// doctor approvals and feedback.
type AdminHandler struct {
	DB      *gorm.DB
	Manager *scheduling.Manager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB, manager *scheduling.Manager) *AdminHandler {
	return &AdminHandler{DB: db, Manager: manager}
}

// CreateAppointment books a slot on behalf of a patient, with an optional
// explicit status (default Confirmed).
func (h *AdminHandler) CreateAppointment(c *gin.Context) {
	var req scheduling.AdminBookingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Manager.AdminBook(c.Request.Context(), req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// UpdateAppointmentStatusRequest carries the new status for an appointment.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

// UpdateAppointmentStatus applies any of the six enumerated statuses to an
// appointment; transitions are unrestricted.
func (h *AdminHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Manager.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// DeleteAppointment removes an appointment permanently.
func (h *AdminHandler) DeleteAppointment(c *gin.Context) {
	if err := h.Manager.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}

// ListAppointments returns every appointment. Staleness is corrected by the
// background sweeper and the explicit sweep endpoint, not by this read.
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.Manager.ListAll(c.Request.Context())
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// MarkExpired runs the expiry sweep on demand and reports how many records
// were reclassified.
func (h *AdminHandler) MarkExpired(c *gin.Context) {
	count, err := h.Manager.SweepExpired(c.Request.Context())
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Expired appointments marked", gin.H{"modified": count})
}

// Dashboard returns global totals.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Manager.AdminStats(c.Request.Context())
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Dashboard fetched successfully", stats)
}

// ListUsers returns all users, sanitized.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("created_at desc").Find(&users).Error; err != nil {
		utils.InternalServerError(c)
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// DeleteUser removes a user account.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	result := h.DB.Delete(&models.User{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.InternalServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}

// SetDoctorApprovalRequest carries the moderation decision for a doctor profile.
type SetDoctorApprovalRequest struct {
	Status models.ApprovalStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

// SetDoctorApproval moderates a doctor's directory entry.
func (h *AdminHandler) SetDoctorApproval(c *gin.Context) {
	var req SetDoctorApprovalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var profile models.DoctorProfile
	if err := h.DB.Where("user_id = ?", c.Param("id")).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c)
		}
		return
	}

	profile.Status = req.Status
	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c)
		return
	}

	utils.Success(c, "Doctor approval updated successfully", profile)
}

// ListFeedbacks returns all feedback, published or not.
func (h *AdminHandler) ListFeedbacks(c *gin.Context) {
	var feedbacks []models.Feedback
	if err := h.DB.Preload("Patient").Order("created_at desc").Find(&feedbacks).Error; err != nil {
		utils.InternalServerError(c)
		return
	}
	utils.Success(c, "Feedbacks fetched successfully", feedbacks)
}

// SetFeedbackVisibilityRequest toggles whether a feedback entry is public.
type SetFeedbackVisibilityRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// SetFeedbackVisibility publishes or hides a feedback entry.
func (h *AdminHandler) SetFeedbackVisibility(c *gin.Context) {
	var req SetFeedbackVisibilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var feedback models.Feedback
	if err := h.DB.First(&feedback, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Feedback not found")
		} else {
			utils.InternalServerError(c)
		}
		return
	}

	feedback.Published = *req.Published
	if err := h.DB.Save(&feedback).Error; err != nil {
		utils.InternalServerError(c)
		return
	}

	utils.Success(c, "Feedback visibility updated successfully", feedback)
}

// DeleteFeedback removes a feedback entry.
func (h *AdminHandler) DeleteFeedback(c *gin.Context) {
	result := h.DB.Delete(&models.Feedback{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.InternalServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Feedback not found")
		return
	}
	utils.Success(c, "Feedback deleted successfully", nil)
}
