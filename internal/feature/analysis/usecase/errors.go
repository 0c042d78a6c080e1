package usecase

import "errors"

var (
	// ErrNothingToAnalyze is returned when neither text nor an image was provided.
	ErrNothingToAnalyze = errors.New("nothing to analyze")

	// ErrImageTooLarge is returned when the uploaded image exceeds MaxImageSize.
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrTextAnalysisFailed marks failures of the external text classifier so
	// transport can map them to 502 instead of a client error.
	ErrTextAnalysisFailed = errors.New("text analysis failed")
)
