package vision

import (
	"testing"

	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
)

func TestDominantEmotion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		face     *visionpb.FaceAnnotation
		expected string
	}{
		{
			name: "joy dominates",
			face: &visionpb.FaceAnnotation{
				JoyLikelihood:    visionpb.Likelihood_VERY_LIKELY,
				SorrowLikelihood: visionpb.Likelihood_VERY_UNLIKELY,
				AngerLikelihood:  visionpb.Likelihood_VERY_UNLIKELY,
			},
			expected: "happy",
		},
		{
			name: "sorrow beats weaker anger",
			face: &visionpb.FaceAnnotation{
				SorrowLikelihood: visionpb.Likelihood_LIKELY,
				AngerLikelihood:  visionpb.Likelihood_POSSIBLE,
			},
			expected: "sad",
		},
		{
			name: "likely surprise is enough",
			face: &visionpb.FaceAnnotation{
				SurpriseLikelihood: visionpb.Likelihood_LIKELY,
			},
			expected: "surprise",
		},
		{
			name: "anger very likely",
			face: &visionpb.FaceAnnotation{
				AngerLikelihood: visionpb.Likelihood_VERY_LIKELY,
			},
			expected: "angry",
		},
		{
			name: "possible emotions are too weak",
			face: &visionpb.FaceAnnotation{
				JoyLikelihood:    visionpb.Likelihood_POSSIBLE,
				SorrowLikelihood: visionpb.Likelihood_POSSIBLE,
			},
			expected: "neutral",
		},
		{
			name:     "unknown likelihoods fall back to neutral",
			face:     &visionpb.FaceAnnotation{},
			expected: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := dominantEmotion(tt.face); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
