package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"voice-notes-api-server/internal/middleware"
	"voice-notes-api-server/internal/models"
	"voice-notes-api-server/internal/store"
	"voice-notes-api-server/internal/utils"
)

// VoiceNoteHandler handles voice note CRUD requests.
type VoiceNoteHandler struct {
	VoiceNotes *store.VoiceNoteStore
	Patients   *store.PatientStore
}

// NewVoiceNoteHandler creates a new VoiceNoteHandler.
func NewVoiceNoteHandler(voiceNotes *store.VoiceNoteStore, patients *store.PatientStore) *VoiceNoteHandler {
	return &VoiceNoteHandler{VoiceNotes: voiceNotes, Patients: patients}
}

// CreateVoiceNoteRequest represents the request body for creating a voice note.
type CreateVoiceNoteRequest struct {
	PatientID  string                 `json:"patientId" binding:"required,uuid"`
	Title      string                 `json:"title" binding:"required,min=1,max=200"`
	Duration   float64                `json:"duration" binding:"required,gt=0"`
	RecordedAt string                 `json:"recordedAt" binding:"required,isodatetime"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// CreateVoiceNote handles creating a new voice note for an existing patient.
func (h *VoiceNoteHandler) CreateVoiceNote(c *gin.Context) {
	var req CreateVoiceNoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Patients.GetByID(req.PatientID)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error verifying patient")
		utils.InternalServerError(c, "Failed to create voice note")
		return
	}
	if patient == nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	recordedAt, err := time.Parse(time.RFC3339, req.RecordedAt)
	if err != nil {
		utils.ValidationFailed(c, []utils.FieldError{{Field: "recordedAt", Message: "must be an ISO 8601 date-time"}})
		return
	}

	note := models.VoiceNote{
		PatientID:  req.PatientID,
		Title:      req.Title,
		Duration:   req.Duration,
		RecordedAt: recordedAt,
		Metadata:   datatypes.JSONMap(req.Metadata),
	}
	if err := h.VoiceNotes.Create(&note); err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error creating voice note")
		utils.InternalServerError(c, "Failed to create voice note")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("voiceNoteId", note.ID).Msg("Voice note created")
	utils.Created(c, note)
}

// GetVoiceNote handles fetching a single voice note by ID.
func (h *VoiceNoteHandler) GetVoiceNote(c *gin.Context) {
	note, err := h.VoiceNotes.GetByID(c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching voice note")
		utils.InternalServerError(c, "Failed to fetch voice note")
		return
	}
	if note == nil {
		utils.NotFound(c, "Voice note not found")
		return
	}
	utils.OK(c, note)
}

// GetAllVoiceNotes handles fetching all voice notes.
func (h *VoiceNoteHandler) GetAllVoiceNotes(c *gin.Context) {
	notes, err := h.VoiceNotes.List()
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching voice notes")
		utils.InternalServerError(c, "Failed to fetch voice notes")
		return
	}
	utils.List(c, notes, len(notes))
}

// GetVoiceNotesByPatient handles fetching all voice notes of one patient.
// The patient must exist; an empty collection is not a 404.
func (h *VoiceNoteHandler) GetVoiceNotesByPatient(c *gin.Context) {
	patientID := c.Param("patientId")
	patient, err := h.Patients.GetByID(patientID)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error verifying patient")
		utils.InternalServerError(c, "Failed to fetch voice notes")
		return
	}
	if patient == nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	notes, err := h.VoiceNotes.ListByPatient(patientID)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching voice notes")
		utils.InternalServerError(c, "Failed to fetch voice notes")
		return
	}
	utils.List(c, notes, len(notes))
}

// UpdateVoiceNoteRequest represents the request body for a partial voice note
// update. Absent fields are left untouched; patientId is never accepted.
type UpdateVoiceNoteRequest struct {
	Title      *string                `json:"title" binding:"omitnil,min=1,max=200"`
	Duration   *float64               `json:"duration" binding:"omitnil,gt=0"`
	RecordedAt *string                `json:"recordedAt" binding:"omitnil,isodatetime"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// UpdateVoiceNote handles a partial update of an existing voice note.
func (h *VoiceNoteHandler) UpdateVoiceNote(c *gin.Context) {
	var req UpdateVoiceNoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patch := store.VoiceNotePatch{
		Title:    req.Title,
		Duration: req.Duration,
		Metadata: datatypes.JSONMap(req.Metadata),
	}
	if req.RecordedAt != nil {
		recordedAt, err := time.Parse(time.RFC3339, *req.RecordedAt)
		if err != nil {
			utils.ValidationFailed(c, []utils.FieldError{{Field: "recordedAt", Message: "must be an ISO 8601 date-time"}})
			return
		}
		patch.RecordedAt = &recordedAt
	}

	note, err := h.VoiceNotes.Update(c.Param("id"), patch)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error updating voice note")
		utils.InternalServerError(c, "Failed to update voice note")
		return
	}
	if note == nil {
		utils.NotFound(c, "Voice note not found")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("voiceNoteId", note.ID).Msg("Voice note updated")
	utils.OK(c, note)
}

// DeleteVoiceNote handles deleting a voice note, cascading to its summary.
func (h *VoiceNoteHandler) DeleteVoiceNote(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.VoiceNotes.Delete(id)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error deleting voice note")
		utils.InternalServerError(c, "Failed to delete voice note")
		return
	}
	if !deleted {
		utils.NotFound(c, "Voice note not found")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("voiceNoteId", id).Msg("Voice note deleted")
	utils.NoContent(c)
}
