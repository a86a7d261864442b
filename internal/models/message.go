package models

import (
	"time"
)

// Message is one entry in an appointment's consultation thread.
type Message struct {
	BaseModel
	AppointmentID string     `gorm:"size:36;index" json:"appointmentId"`
	SenderID      string     `gorm:"size:36;index" json:"senderId"`
	Content       string     `gorm:"type:text" json:"content"`
	ReadAt        *time.Time `json:"readAt,omitempty"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Sender      User        `gorm:"foreignKey:SenderID" json:"-"`
}
