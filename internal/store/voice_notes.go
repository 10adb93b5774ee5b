package store

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"voice-notes-api-server/internal/models"
)

// VoiceNoteStore performs voice note persistence against the shared DB handle.
type VoiceNoteStore struct {
	db *gorm.DB
}

// NewVoiceNoteStore creates a new VoiceNoteStore.
func NewVoiceNoteStore(db *gorm.DB) *VoiceNoteStore {
	return &VoiceNoteStore{db: db}
}

// VoiceNotePatch carries the fields of a partial voice note update.
// Nil fields are left untouched; PatientID is immutable and not patchable.
type VoiceNotePatch struct {
	Title      *string
	Duration   *float64
	RecordedAt *time.Time
	Metadata   datatypes.JSONMap
}

func (p VoiceNotePatch) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Duration != nil {
		changes["duration"] = *p.Duration
	}
	if p.RecordedAt != nil {
		changes["recorded_at"] = *p.RecordedAt
	}
	if p.Metadata != nil {
		changes["metadata"] = p.Metadata
	}
	return changes
}

// Create persists a new voice note, assigning its ID and timestamps in place.
func (s *VoiceNoteStore) Create(note *models.VoiceNote) error {
	return s.db.Create(note).Error
}

// GetByID returns the voice note with the given id, or (nil, nil) when absent.
func (s *VoiceNoteStore) GetByID(id string) (*models.VoiceNote, error) {
	var note models.VoiceNote
	if err := s.db.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// List returns all voice notes, most recently recorded first.
func (s *VoiceNoteStore) List() ([]models.VoiceNote, error) {
	notes := make([]models.VoiceNote, 0)
	if err := s.db.Order("recorded_at desc").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ListByPatient returns the patient's voice notes, most recently recorded first.
func (s *VoiceNoteStore) ListByPatient(patientID string) ([]models.VoiceNote, error) {
	notes := make([]models.VoiceNote, 0)
	if err := s.db.Where("patient_id = ?", patientID).Order("recorded_at desc").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Update applies the non-nil fields of patch to the voice note with the
// given id. It returns (nil, nil) when the id is unknown, and the existing
// record unchanged (no timestamp bump) when the patch is empty.
func (s *VoiceNoteStore) Update(id string, patch VoiceNotePatch) (*models.VoiceNote, error) {
	note, err := s.GetByID(id)
	if err != nil || note == nil {
		return nil, err
	}

	changes := patch.changes()
	if len(changes) == 0 {
		return note, nil
	}

	if err := s.db.Model(note).Updates(changes).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the voice note and its summary, if present, in one
// transaction. Reports whether a voice note row was actually removed.
func (s *VoiceNoteStore) Delete(id string) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("voice_note_id = ?", id).Delete(&models.Summary{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.VoiceNote{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
