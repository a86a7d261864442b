package models

// Feedback is a patient review, hidden until an admin publishes it.
type Feedback struct {
	BaseModel
	PatientID string `gorm:"size:36;index" json:"patientId"`
	DoctorID  string `gorm:"size:36;index" json:"doctorId,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`
	Published bool   `gorm:"default:false" json:"published"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
