package models

import (
	"gorm.io/datatypes"
)

// Sentiment labels the overall tone of a summary
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Summary represents the AI-generated summary of a voice note. The unique
// index on VoiceNoteID backs the one-summary-per-note rule so a lost
// check-then-insert race surfaces as a duplicate-key error, never a second row.
type Summary struct {
	BaseModel
	VoiceNoteID string                      `gorm:"size:36;not null;uniqueIndex" json:"voiceNoteId"`
	Content     string                      `gorm:"type:text;not null" json:"content"`
	KeyPoints   datatypes.JSONSlice[string] `json:"keyPoints,omitempty"`
	Sentiment   *Sentiment                  `gorm:"size:20" json:"sentiment,omitempty"`
	Confidence  *float64                    `json:"confidence,omitempty"`
}
