// Package entity defines the domain models for the trends feature.
package entity

import "time"

// TrendPoint is a single analyzed entry projected onto the mood timeline.
type TrendPoint struct {
	Time      time.Time // When the entry was written
	Sentiment float64   // Combined sentiment score, -1.0 to +1.0
	Emotion   string    // Dominant emotion label
}

// DailyMood aggregates the sentiment of one calendar day (UTC).
type DailyMood struct {
	Date    time.Time // Midnight UTC of the aggregated day
	Average float64   // Mean sentiment of that day's entries
	Count   int       // Number of entries that day
}

// EmotionCount is the frequency of one emotion label inside the window.
type EmotionCount struct {
	Emotion string
	Count   int
}

// MoodTrend bundles everything the trend chart needs for one time window.
type MoodTrend struct {
	Days     int            // Window length actually used, in days
	Series   []TrendPoint   // Raw points, ascending by time
	Daily    []DailyMood    // Per-day averages, ascending by date
	Emotions []EmotionCount // Emotion frequencies, most frequent first
	Average  float64        // Mean sentiment over the whole window
	Count    int            // Total entries in the window
}
