package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/scheduling"
	"medibook-server/internal/utils"
)

// DoctorHandler exposes the doctor directory and doctor-facing endpoints.
type DoctorHandler struct {
	DB      *gorm.DB
	Manager *scheduling.Manager
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, manager *scheduling.Manager) *DoctorHandler {
	return &DoctorHandler{DB: db, Manager: manager}
}

// ListDoctors returns every approved doctor profile. Public endpoint.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var profiles []models.DoctorProfile
	err := h.DB.Preload("User").
		Where("status = ?", models.ApprovalApproved).
		Order("specialization asc").
		Find(&profiles).Error
	if err != nil {
		utils.InternalServerError(c)
		return
	}

	type doctorView struct {
		models.DoctorProfile
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	views := make([]doctorView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, doctorView{
			DoctorProfile: p,
			FirstName:     p.User.FirstName,
			LastName:      p.User.LastName,
		})
	}

	utils.Success(c, "Doctors fetched successfully", views)
}

// UpdateDoctorProfileRequest is the body for doctors updating their own
// directory entry.
type UpdateDoctorProfileRequest struct {
	Specialization string   `json:"specialization"`
	Fees           *float64 `json:"fees"`
	Bio            string   `json:"bio"`
	Image          string   `json:"image"`
}

// UpdateProfile lets a doctor maintain their directory entry. Fee changes
// take effect immediately, including on earnings reported for past visits.
func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var profile models.DoctorProfile
	if err := h.DB.Where("user_id = ?", doctorID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c)
		}
		return
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Fees != nil {
		profile.Fees = *req.Fees
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Image != "" {
		profile.Image = req.Image
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c)
		return
	}

	utils.Success(c, "Doctor profile updated successfully", profile)
}

// ListMyAppointments returns the authenticated doctor's appointments.
func (h *DoctorHandler) ListMyAppointments(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointments, err := h.Manager.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// Dashboard returns the doctor's aggregate statistics.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.Manager.DoctorStats(c.Request.Context(), doctorID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Dashboard fetched successfully", stats)
}
