package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"voice-notes-api-server/internal/models"
)

// SummaryStore performs summary persistence against the shared DB handle.
type SummaryStore struct {
	db *gorm.DB
}

// NewSummaryStore creates a new SummaryStore.
func NewSummaryStore(db *gorm.DB) *SummaryStore {
	return &SummaryStore{db: db}
}

// SummaryPatch carries the fields of a partial summary update.
// Nil fields are left untouched; VoiceNoteID is immutable and not patchable.
type SummaryPatch struct {
	Content    *string
	KeyPoints  datatypes.JSONSlice[string]
	Sentiment  *models.Sentiment
	Confidence *float64
}

func (p SummaryPatch) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Content != nil {
		changes["content"] = *p.Content
	}
	if p.KeyPoints != nil {
		changes["key_points"] = p.KeyPoints
	}
	if p.Sentiment != nil {
		changes["sentiment"] = *p.Sentiment
	}
	if p.Confidence != nil {
		changes["confidence"] = *p.Confidence
	}
	return changes
}

// Create persists a new summary, assigning its ID and timestamps in place.
// Returns gorm.ErrDuplicatedKey when the voice note already has a summary.
func (s *SummaryStore) Create(summary *models.Summary) error {
	return s.db.Create(summary).Error
}

// GetByID returns the summary with the given id, or (nil, nil) when absent.
func (s *SummaryStore) GetByID(id string) (*models.Summary, error) {
	var summary models.Summary
	if err := s.db.First(&summary, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// GetByVoiceNoteID returns the summary owned by the given voice note, or
// (nil, nil) when the note has none.
func (s *SummaryStore) GetByVoiceNoteID(voiceNoteID string) (*models.Summary, error) {
	var summary models.Summary
	if err := s.db.First(&summary, "voice_note_id = ?", voiceNoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// List returns all summaries, most recently created first.
func (s *SummaryStore) List() ([]models.Summary, error) {
	summaries := make([]models.Summary, 0)
	if err := s.db.Order("created_at desc").Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Update applies the non-nil fields of patch to the summary with the given
// id. It returns (nil, nil) when the id is unknown, and the existing record
// unchanged (no timestamp bump) when the patch is empty.
func (s *SummaryStore) Update(id string, patch SummaryPatch) (*models.Summary, error) {
	summary, err := s.GetByID(id)
	if err != nil || summary == nil {
		return nil, err
	}

	changes := patch.changes()
	if len(changes) == 0 {
		return summary, nil
	}

	if err := s.db.Model(summary).Updates(changes).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the summary. Reports whether a row was actually removed.
func (s *SummaryStore) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.Summary{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
