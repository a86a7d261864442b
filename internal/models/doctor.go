package models

// ApprovalStatus tracks doctor onboarding moderation.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// DoctorProfile holds the public directory entry for a doctor identity.
// Fees is read at query time for earnings estimates; it is not snapshotted
// onto appointments, so a fee change retroactively changes reported earnings.
type DoctorProfile struct {
	BaseModel
	UserID         string         `gorm:"size:36;uniqueIndex" json:"userId"`
	Specialization string         `gorm:"size:100" json:"specialization"`
	Fees           float64        `json:"fees"`
	Bio            string         `gorm:"type:text" json:"bio,omitempty"`
	Image          string         `gorm:"size:255" json:"image,omitempty"`
	Status         ApprovalStatus `gorm:"size:20;default:'pending'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
