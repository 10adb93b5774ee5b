package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"voice-notes-api-server/internal/config"
	"voice-notes-api-server/internal/models"
	"voice-notes-api-server/internal/routes"
)

const testAPIKey = "test-api-key-123"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))

	cfg := &config.Config{
		APIKeys:   []string{testAPIKey},
		RateLimit: config.RateLimitConfig{Window: time.Minute, Max: 10000},
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// violatedFields collects the field names out of a validation failure response.
func violatedFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	body := decodeBody(t, w)
	require.Equal(t, "Validation failed", body["error"])

	details, ok := body["details"].([]interface{})
	require.True(t, ok, "expected details list, got %v", body["details"])

	fields := make([]string, 0, len(details))
	for _, d := range details {
		entry, ok := d.(map[string]interface{})
		require.True(t, ok)
		fields = append(fields, entry["field"].(string))
	}
	return fields
}

func createTestPatient(t *testing.T, router *gin.Engine) map[string]interface{} {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/patients", gin.H{
		"firstName":   "John",
		"lastName":    "Doe",
		"dateOfBirth": "1990-01-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)
}

func createTestVoiceNote(t *testing.T, router *gin.Engine, patientID string) map[string]interface{} {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/voice-notes", gin.H{
		"patientId":  patientID,
		"title":      "Session 1",
		"duration":   120,
		"recordedAt": time.Now().UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)
}
