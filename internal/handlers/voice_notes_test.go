package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVoiceNote(t *testing.T) {
	router := setupRouter(t)
	patient := createTestPatient(t, router)

	w := doRequest(t, router, http.MethodPost, "/api/voice-notes", gin.H{
		"patientId":  patient["id"],
		"title":      "Session 1",
		"duration":   120.5,
		"recordedAt": "2024-06-01T10:00:00Z",
		"metadata":   gin.H{"format": "wav", "fileSize": 2048},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, patient["id"], body["patientId"])
	assert.Equal(t, "Session 1", body["title"])
	assert.Equal(t, 120.5, body["duration"])

	metadata, ok := body["metadata"].(map[string]interface{})
	require.True(t, ok, "metadata must come back structured, got %v", body["metadata"])
	assert.Equal(t, "wav", metadata["format"])
	assert.Equal(t, float64(2048), metadata["fileSize"])
}

func TestCreateVoiceNoteUnknownPatient(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/voice-notes", gin.H{
		"patientId":  "b7a9e0c2-0000-0000-0000-000000000000",
		"title":      "Session 1",
		"duration":   120,
		"recordedAt": "2024-06-01T10:00:00Z",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Patient not found", decodeBody(t, w)["error"])
}

func TestCreateVoiceNoteValidation(t *testing.T) {
	router := setupRouter(t)
	patient := createTestPatient(t, router)

	tests := []struct {
		name   string
		body   gin.H
		fields []string
	}{
		{
			name: "zero duration",
			body: gin.H{
				"patientId":  patient["id"],
				"title":      "Session 1",
				"duration":   0,
				"recordedAt": "2024-06-01T10:00:00Z",
			},
			fields: []string{"duration"},
		},
		{
			name: "negative duration",
			body: gin.H{
				"patientId":  patient["id"],
				"title":      "Session 1",
				"duration":   -5,
				"recordedAt": "2024-06-01T10:00:00Z",
			},
			fields: []string{"duration"},
		},
		{
			name: "patientId not a UUID",
			body: gin.H{
				"patientId":  "not-a-uuid",
				"title":      "Session 1",
				"duration":   120,
				"recordedAt": "2024-06-01T10:00:00Z",
			},
			fields: []string{"patientId"},
		},
		{
			name: "recordedAt not a date-time",
			body: gin.H{
				"patientId":  patient["id"],
				"title":      "Session 1",
				"duration":   120,
				"recordedAt": "2024-06-01",
			},
			fields: []string{"recordedAt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/voice-notes", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.ElementsMatch(t, tt.fields, violatedFields(t, w))
		})
	}
}

func TestGetVoiceNoteNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/voice-notes/b7a9e0c2-0000-0000-0000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Voice note not found", decodeBody(t, w)["error"])
}

func TestListVoiceNotesByPatient(t *testing.T) {
	router := setupRouter(t)
	patientA := createTestPatient(t, router)
	patientB := createTestPatient(t, router)
	noteA := createTestVoiceNote(t, router, patientA["id"].(string))
	createTestVoiceNote(t, router, patientB["id"].(string))

	w := doRequest(t, router, http.MethodGet, "/api/voice-notes/patient/"+patientA["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, noteA["id"], data[0].(map[string]interface{})["id"])
}

func TestListVoiceNotesByUnknownPatient(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/voice-notes/patient/b7a9e0c2-0000-0000-0000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Patient not found", decodeBody(t, w)["error"])
}

func TestListVoiceNotesMostRecentFirst(t *testing.T) {
	router := setupRouter(t)
	patient := createTestPatient(t, router)

	older := doRequest(t, router, http.MethodPost, "/api/voice-notes", gin.H{
		"patientId":  patient["id"],
		"title":      "Older",
		"duration":   60,
		"recordedAt": "2024-01-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, older.Code)

	newer := doRequest(t, router, http.MethodPost, "/api/voice-notes", gin.H{
		"patientId":  patient["id"],
		"title":      "Newer",
		"duration":   60,
		"recordedAt": "2024-06-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, newer.Code)

	w := doRequest(t, router, http.MethodGet, "/api/voice-notes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Newer", data[0].(map[string]interface{})["title"])
	assert.Equal(t, "Older", data[1].(map[string]interface{})["title"])
}

func TestUpdateVoiceNoteIgnoresPatientID(t *testing.T) {
	router := setupRouter(t)
	patient := createTestPatient(t, router)
	other := createTestPatient(t, router)
	note := createTestVoiceNote(t, router, patient["id"].(string))

	w := doRequest(t, router, http.MethodPatch, "/api/voice-notes/"+note["id"].(string), gin.H{
		"title":     "Renamed",
		"patientId": other["id"],
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Renamed", body["title"])
	assert.Equal(t, patient["id"], body["patientId"])
}

func TestUpdateVoiceNoteValidation(t *testing.T) {
	router := setupRouter(t)
	patient := createTestPatient(t, router)
	note := createTestVoiceNote(t, router, patient["id"].(string))

	w := doRequest(t, router, http.MethodPatch, "/api/voice-notes/"+note["id"].(string), gin.H{
		"duration": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.ElementsMatch(t, []string{"duration"}, violatedFields(t, w))
}

func TestUpdateVoiceNoteNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPatch, "/api/voice-notes/b7a9e0c2-0000-0000-0000-000000000000", gin.H{
		"title": "Renamed",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteVoiceNote(t *testing.T) {
	router := setupRouter(t)
	patient := createTestPatient(t, router)
	note := createTestVoiceNote(t, router, patient["id"].(string))
	id := note["id"].(string)

	w := doRequest(t, router, http.MethodDelete, "/api/voice-notes/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/voice-notes/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteVoiceNoteRemovesItsSummary(t *testing.T) {
	router := setupRouter(t)
	patient := createTestPatient(t, router)
	note := createTestVoiceNote(t, router, patient["id"].(string))
	noteID := note["id"].(string)

	w := doRequest(t, router, http.MethodPost, "/api/summaries", gin.H{
		"voiceNoteId": noteID,
		"content":     "ok",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	summaryID := decodeBody(t, w)["id"].(string)

	w = doRequest(t, router, http.MethodDelete, "/api/voice-notes/"+noteID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/summaries/"+summaryID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
