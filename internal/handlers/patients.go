package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"voice-notes-api-server/internal/middleware"
	"voice-notes-api-server/internal/models"
	"voice-notes-api-server/internal/store"
	"voice-notes-api-server/internal/utils"
)

// PatientHandler handles patient CRUD requests.
type PatientHandler struct {
	Patients *store.PatientStore
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patients *store.PatientStore) *PatientHandler {
	return &PatientHandler{Patients: patients}
}

// CreatePatientRequest represents the request body for creating a patient.
type CreatePatientRequest struct {
	FirstName   string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName    string  `json:"lastName" binding:"required,min=1,max=100"`
	DateOfBirth string  `json:"dateOfBirth" binding:"required,isodate"`
	Email       *string `json:"email" binding:"omitnil,email"`
	Phone       *string `json:"phone" binding:"omitnil,min=10,max=20"`
}

// CreatePatient handles creating a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		Phone:       req.Phone,
	}
	if err := h.Patients.Create(&patient); err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error creating patient")
		utils.InternalServerError(c, "Failed to create patient")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("patientId", patient.ID).Msg("Patient created")
	utils.Created(c, patient)
}

// GetPatient handles fetching a single patient by ID.
func (h *PatientHandler) GetPatient(c *gin.Context) {
	patient, err := h.Patients.GetByID(c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching patient")
		utils.InternalServerError(c, "Failed to fetch patient")
		return
	}
	if patient == nil {
		utils.NotFound(c, "Patient not found")
		return
	}
	utils.OK(c, patient)
}

// GetAllPatients handles fetching all patients.
func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.Patients.List()
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error fetching patients")
		utils.InternalServerError(c, "Failed to fetch patients")
		return
	}
	utils.List(c, patients, len(patients))
}

// UpdatePatientRequest represents the request body for a partial patient
// update. Absent fields are left untouched.
type UpdatePatientRequest struct {
	FirstName   *string `json:"firstName" binding:"omitnil,min=1,max=100"`
	LastName    *string `json:"lastName" binding:"omitnil,min=1,max=100"`
	DateOfBirth *string `json:"dateOfBirth" binding:"omitnil,isodate"`
	Email       *string `json:"email" binding:"omitnil,email"`
	Phone       *string `json:"phone" binding:"omitnil,min=10,max=20"`
}

// UpdatePatient handles a partial update of an existing patient.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Patients.Update(c.Param("id"), store.PatientPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error updating patient")
		utils.InternalServerError(c, "Failed to update patient")
		return
	}
	if patient == nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("patientId", patient.ID).Msg("Patient updated")
	utils.OK(c, patient)
}

// DeletePatient handles deleting a patient, cascading to its voice notes and
// their summaries.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.Patients.Delete(id)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Error deleting patient")
		utils.InternalServerError(c, "Failed to delete patient")
		return
	}
	if !deleted {
		utils.NotFound(c, "Patient not found")
		return
	}

	log.Info().Str("requestId", middleware.GetRequestID(c)).Str("patientId", id).Msg("Patient deleted")
	utils.NoContent(c)
}
