// Package dto defines data transfer objects for Hugging Face Inference API responses.
package dto

// LabelScore is one label with its score from a text classification pipeline.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationResponse is the response of a text classification request.
// The API returns one inner list of label scores per input text.
type ClassificationResponse [][]LabelScore

// ErrorResponse is the JSON body the API returns on failures (e.g. while the
// model is still loading).
type ErrorResponse struct {
	Error string `json:"error"`
}
