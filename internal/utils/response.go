package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape for every failure response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// ListResponse wraps collection results with their count.
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// OK sends a 200 response with the given record.
func OK(c *gin.Context, record interface{}) {
	c.JSON(http.StatusOK, record)
}

// Created sends a 201 response with the stored record.
func Created(c *gin.Context, record interface{}) {
	c.JSON(http.StatusCreated, record)
}

// List sends a 200 response with the {data, count} collection shape.
func List(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, ListResponse{Data: data, Count: count})
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// ValidationFailed sends a 400 response carrying per-field diagnostics.
func ValidationFailed(c *gin.Context, details []FieldError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: details})
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict error response.
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalServerError sends a 500 response. The message must stay generic;
// the underlying cause belongs in the log, not on the wire.
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
