// Package entity defines the domain models for the entries feature.
package entity

import "time"

// Entry represents a single journal entry with its analyzed mood scores.
type Entry struct {
	ID        uint      // Auto-incremented identifier
	UserID    uint      // Owner of the entry
	Text      string    // Free-form journal text (may be empty for image-only entries)
	Sentiment float64   // Combined sentiment score, -1.0 (negative) to +1.0 (positive)
	Emotion   string    // Dominant emotion label (joy, sadness, anger, ...)
	CreatedAt time.Time // When the entry was written
}
