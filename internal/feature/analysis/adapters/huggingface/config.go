// Package huggingface provides a text classification client for the Hugging Face Inference API.
package huggingface

import (
	"os"
	"time"
)

const (
	// DefaultBaseURL is the public Hugging Face Inference API endpoint.
	DefaultBaseURL = "https://api-inference.huggingface.co"
	// DefaultSentimentModel classifies text into negative/neutral/positive.
	DefaultSentimentModel = "cardiffnlp/twitter-roberta-base-sentiment"
	// DefaultEmotionModel classifies text into seven emotion labels.
	DefaultEmotionModel = "j-hartmann/emotion-english-distilroberta-base"
)

// Config holds configuration for the Hugging Face Inference API client.
type Config struct {
	APIToken       string        // API token for authentication (optional for public models)
	BaseURL        string        // Base URL for the API (e.g., "https://api-inference.huggingface.co")
	SentimentModel string        // Model ID used for sentiment classification
	EmotionModel   string        // Model ID used for emotion classification
	Timeout        time.Duration // HTTP request timeout
}

// LoadConfig loads Hugging Face configuration from environment variables.
// Unset values fall back to the public endpoint and the default models.
func LoadConfig() Config {
	cfg := Config{
		APIToken:       os.Getenv("HF_API_TOKEN"),
		BaseURL:        os.Getenv("HF_BASE_URL"),
		SentimentModel: os.Getenv("HF_SENTIMENT_MODEL"),
		EmotionModel:   os.Getenv("HF_EMOTION_MODEL"),
		Timeout:        30 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SentimentModel == "" {
		cfg.SentimentModel = DefaultSentimentModel
	}
	if cfg.EmotionModel == "" {
		cfg.EmotionModel = DefaultEmotionModel
	}
	return cfg
}
