// Package vision はGoogle Cloud Vision APIを使用した顔感情検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"mindscan_backend/internal/feature/analysis/domain/entity"
	"mindscan_backend/internal/feature/analysis/usecase"
)

// VisionFaceDetector はGoogle Cloud Vision APIを使用して顔写真から感情を検出します。
type VisionFaceDetector struct {
	client *gvision.ImageAnnotatorClient
}

// VisionFaceDetectorがFaceEmotionDetectorを実装していることをコンパイル時に検証します。
var _ usecase.FaceEmotionDetector = (*VisionFaceDetector)(nil)

// NewVisionFaceDetector はADCを使用してVisionFaceDetectorの新しいインスタンスを生成します。
func NewVisionFaceDetector(ctx context.Context) (*VisionFaceDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionFaceDetector{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionFaceDetector) Close() error {
	return v.client.Close()
}

// DetectEmotion は画像バイト列から最も目立つ顔の感情を検出します。
// 顔が見つからない場合は (nil, nil) を返します。
func (v *VisionFaceDetector) DetectEmotion(ctx context.Context, imageData []byte) (*entity.FaceEmotion, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_FACE_DETECTION, MaxResults: 1},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}

	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	faces := resp.Responses[0].FaceAnnotations
	if len(faces) == 0 {
		return nil, nil
	}

	return &entity.FaceEmotion{
		Emotion:    dominantEmotion(faces[0]),
		Confidence: float64(faces[0].DetectionConfidence),
	}, nil
}

// dominantEmotion は顔アノテーションの感情尤度を比較して最有力のラベルを返します。
// LIKELY以上の感情がない場合はneutralです。
func dominantEmotion(face *visionpb.FaceAnnotation) string {
	candidates := []struct {
		label      string
		likelihood visionpb.Likelihood
	}{
		{"happy", face.JoyLikelihood},
		{"sad", face.SorrowLikelihood},
		{"angry", face.AngerLikelihood},
		{"surprise", face.SurpriseLikelihood},
	}

	top := usecase.NeutralEmotion
	best := visionpb.Likelihood_POSSIBLE
	for _, c := range candidates {
		if c.likelihood > best {
			best = c.likelihood
			top = c.label
		}
	}
	return top
}
