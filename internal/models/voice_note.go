package models

import (
	"time"

	"gorm.io/datatypes"
)

// VoiceNote represents a recorded session belonging to a patient.
// Metadata is free-form: serialized JSON text in storage, a structured
// object at the API boundary.
type VoiceNote struct {
	BaseModel
	PatientID  string            `gorm:"size:36;not null;index" json:"patientId"`
	Title      string            `gorm:"size:200;not null" json:"title"`
	Duration   float64           `gorm:"not null" json:"duration"`
	RecordedAt time.Time         `json:"recordedAt"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`

	// Relations
	Summary *Summary `gorm:"foreignKey:VoiceNoteID;constraint:OnDelete:CASCADE" json:"-"`
}
