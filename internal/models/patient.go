package models

// Patient represents a patient whose voice notes are tracked.
type Patient struct {
	BaseModel
	FirstName   string  `gorm:"size:100;not null" json:"firstName"`
	LastName    string  `gorm:"size:100;not null" json:"lastName"`
	DateOfBirth string  `gorm:"size:64;not null" json:"dateOfBirth"`
	Email       *string `gorm:"size:255" json:"email,omitempty"`
	Phone       *string `gorm:"size:20" json:"phone,omitempty"`

	// Relations (not preloaded; deletion cascades through the store)
	VoiceNotes []VoiceNote `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}
