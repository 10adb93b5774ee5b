package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"voice-notes-api-server/internal/middleware"
	"voice-notes-api-server/internal/models"
	"voice-notes-api-server/internal/store"
	"voice-notes-api-server/internal/utils"
)

// SummaryHandler handles summary CRUD requests.
type SummaryHandler struct {
	Summaries  *store.SummaryStore
	VoiceNotes *store.VoiceNoteStore
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaries *store.SummaryStore, voiceNotes *store.VoiceNoteStore) *SummaryHandler {
	return &SummaryHandler{Summaries: summaries, VoiceNotes: voiceNotes}
}

// CreateSummaryRequest represents the request body for creating a summary.
type CreateSummaryRequest struct {
	VoiceNoteID string   `json:"voiceNoteId" binding:"required,uuid"`
	Content     string   `json:"content" binding:"required,min=1"`
	KeyPoints   []string `json:"keyPoints"`
	Sentiment   *string  `json:"sentiment" binding:"omitnil,oneof=positive neutral negative"`
	Confidence  *float64 `json:"confidence" binding:"omitnil,gte=0,lte=1"`
}

// CreateSummary handles creating the summary of an existing voice note.
// A voice note owns at most one summary: a second create returns 409. The
// existence check below and the insert are separate statements, so the unique
// index on voiceNoteId is what actually guarantees a single winner under
// concurrent creates; the losing insert also maps to 409.
func (h *SummaryHandler) CreateSummary(c *gin.Context) {
	var req CreateSummaryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	note, err := h.VoiceNotes.GetByID(req.VoiceNoteID)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error verifying voice note")
		utils.InternalServerError(c, "Failed to create summary")
		return
	}
	if note == nil {
		utils.NotFound(c, "Voice note not found")
		return
	}

	existing, err := h.Summaries.GetByVoiceNoteID(req.VoiceNoteID)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error checking for existing summary")
		utils.InternalServerError(c, "Failed to create summary")
		return
	}
	if existing != nil {
		utils.Conflict(c, "Summary already exists for this voice note")
		return
	}

	summary := models.Summary{
		VoiceNoteID: req.VoiceNoteID,
		Content:     req.Content,
		KeyPoints:   datatypes.NewJSONSlice(req.KeyPoints),
		Confidence:  req.Confidence,
	}
	if req.Sentiment != nil {
		sentiment := models.Sentiment(*req.Sentiment)
		summary.Sentiment = &sentiment
	}

	if err := h.Summaries.Create(&summary); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Summary already exists for this voice note")
			return
		}
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error creating summary")
		utils.InternalServerError(c, "Failed to create summary")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("summaryId", summary.ID).Msg("Summary created")
	utils.Created(c, summary)
}

// GetSummary handles fetching a single summary by ID.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.Summaries.GetByID(c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching summary")
		utils.InternalServerError(c, "Failed to fetch summary")
		return
	}
	if summary == nil {
		utils.NotFound(c, "Summary not found")
		return
	}
	utils.OK(c, summary)
}

// GetSummaryByVoiceNote handles fetching the summary owned by a voice note.
func (h *SummaryHandler) GetSummaryByVoiceNote(c *gin.Context) {
	summary, err := h.Summaries.GetByVoiceNoteID(c.Param("voiceNoteId"))
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching summary")
		utils.InternalServerError(c, "Failed to fetch summary")
		return
	}
	if summary == nil {
		utils.NotFound(c, "Summary not found")
		return
	}
	utils.OK(c, summary)
}

// GetAllSummaries handles fetching all summaries.
func (h *SummaryHandler) GetAllSummaries(c *gin.Context) {
	summaries, err := h.Summaries.List()
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching summaries")
		utils.InternalServerError(c, "Failed to fetch summaries")
		return
	}
	utils.List(c, summaries, len(summaries))
}

// UpdateSummaryRequest represents the request body for a partial summary
// update. Absent fields are left untouched; voiceNoteId is never accepted.
type UpdateSummaryRequest struct {
	Content    *string  `json:"content" binding:"omitnil,min=1"`
	KeyPoints  []string `json:"keyPoints"`
	Sentiment  *string  `json:"sentiment" binding:"omitnil,oneof=positive neutral negative"`
	Confidence *float64 `json:"confidence" binding:"omitnil,gte=0,lte=1"`
}

// UpdateSummary handles a partial update of an existing summary.
func (h *SummaryHandler) UpdateSummary(c *gin.Context) {
	var req UpdateSummaryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patch := store.SummaryPatch{
		Content:    req.Content,
		Confidence: req.Confidence,
	}
	if req.KeyPoints != nil {
		patch.KeyPoints = datatypes.NewJSONSlice(req.KeyPoints)
	}
	if req.Sentiment != nil {
		sentiment := models.Sentiment(*req.Sentiment)
		patch.Sentiment = &sentiment
	}

	summary, err := h.Summaries.Update(c.Param("id"), patch)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error updating summary")
		utils.InternalServerError(c, "Failed to update summary")
		return
	}
	if summary == nil {
		utils.NotFound(c, "Summary not found")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("summaryId", summary.ID).Msg("Summary updated")
	utils.OK(c, summary)
}

// DeleteSummary handles deleting a summary.
func (h *SummaryHandler) DeleteSummary(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.Summaries.Delete(id)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error deleting summary")
		utils.InternalServerError(c, "Failed to delete summary")
		return
	}
	if !deleted {
		utils.NotFound(c, "Summary not found")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("summaryId", id).Msg("Summary deleted")
	utils.NoContent(c)
}
