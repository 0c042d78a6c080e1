package gemini

import (
	"testing"
)

func TestParseClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		raw               string
		expectedSentiment float64
		expectedEmotion   string
		expectErr         bool
	}{
		{
			name:              "valid response",
			raw:               `{"sentiment": 0.8, "emotion": "joy", "confidence": 0.95}`,
			expectedSentiment: 0.8,
			expectedEmotion:   "joy",
		},
		{
			name:              "sentiment above range is clamped",
			raw:               `{"sentiment": 3.5, "emotion": "joy", "confidence": 0.9}`,
			expectedSentiment: 1.0,
			expectedEmotion:   "joy",
		},
		{
			name:              "sentiment below range is clamped",
			raw:               `{"sentiment": -2.0, "emotion": "sadness", "confidence": 0.9}`,
			expectedSentiment: -1.0,
			expectedEmotion:   "sadness",
		},
		{
			name:              "unknown emotion falls back to neutral",
			raw:               `{"sentiment": 0.1, "emotion": "melancholy", "confidence": 0.7}`,
			expectedSentiment: 0.1,
			expectedEmotion:   "neutral",
		},
		{
			name:              "emotion label is normalized",
			raw:               `{"sentiment": -0.5, "emotion": " Anger ", "confidence": 0.8}`,
			expectedSentiment: -0.5,
			expectedEmotion:   "anger",
		},
		{
			name:      "invalid json",
			raw:       `the entry sounds positive`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := parseClassification(tt.raw)

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Sentiment != tt.expectedSentiment {
				t.Errorf("expected sentiment %f, got %f", tt.expectedSentiment, result.Sentiment)
			}
			if result.Emotion != tt.expectedEmotion {
				t.Errorf("expected emotion %q, got %q", tt.expectedEmotion, result.Emotion)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		v        float64
		expected float64
	}{
		{"within range", 0.5, 0.5},
		{"above upper bound", 1.5, 1.0},
		{"below lower bound", -1.5, -1.0},
		{"at upper bound", 1.0, 1.0},
		{"at lower bound", -1.0, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := clamp(tt.v, -1.0, 1.0); got != tt.expected {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}
