package store

import (
	"errors"

	"gorm.io/gorm"

	"voice-notes-api-server/internal/models"
)

// PatientStore performs patient persistence against the shared DB handle.
type PatientStore struct {
	db *gorm.DB
}

// NewPatientStore creates a new PatientStore.
func NewPatientStore(db *gorm.DB) *PatientStore {
	return &PatientStore{db: db}
}

// PatientPatch carries the fields of a partial patient update.
// Nil fields are left untouched.
type PatientPatch struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *string
	Email       *string
	Phone       *string
}

func (p PatientPatch) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.FirstName != nil {
		changes["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		changes["last_name"] = *p.LastName
	}
	if p.DateOfBirth != nil {
		changes["date_of_birth"] = *p.DateOfBirth
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.Phone != nil {
		changes["phone"] = *p.Phone
	}
	return changes
}

// Create persists a new patient, assigning its ID and timestamps in place.
func (s *PatientStore) Create(patient *models.Patient) error {
	return s.db.Create(patient).Error
}

// GetByID returns the patient with the given id, or (nil, nil) when absent.
func (s *PatientStore) GetByID(id string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// List returns all patients, most recently created first.
func (s *PatientStore) List() ([]models.Patient, error) {
	patients := make([]models.Patient, 0)
	if err := s.db.Order("created_at desc").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// Update applies the non-nil fields of patch to the patient with the given
// id. It returns (nil, nil) when the id is unknown, and the existing record
// unchanged (no timestamp bump) when the patch is empty.
func (s *PatientStore) Update(id string, patch PatientPatch) (*models.Patient, error) {
	patient, err := s.GetByID(id)
	if err != nil || patient == nil {
		return nil, err
	}

	changes := patch.changes()
	if len(changes) == 0 {
		return patient, nil
	}

	if err := s.db.Model(patient).Updates(changes).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the patient together with everything it owns: its voice
// notes and their summaries go in the same transaction. Reports whether a
// patient row was actually removed.
func (s *PatientStore) Delete(id string) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var noteIDs []string
		if err := tx.Model(&models.VoiceNote{}).Where("patient_id = ?", id).Pluck("id", &noteIDs).Error; err != nil {
			return err
		}
		if len(noteIDs) > 0 {
			if err := tx.Where("voice_note_id IN ?", noteIDs).Delete(&models.Summary{}).Error; err != nil {
				return err
			}
			if err := tx.Where("patient_id = ?", id).Delete(&models.VoiceNote{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Patient{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
