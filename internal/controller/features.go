package controller

import (
	"github.com/hyperjump/paperscope/internal/client"
	"github.com/hyperjump/paperscope/internal/models"
	"go.uber.org/zap"
)

// Default inputs shown before the user types anything.
const (
	DefaultText  = "We propose a transformer-based method for question answering."
	DefaultQuery = "transformer question answering"
)

// Fallback failure messages for errors that carry no text.
const (
	PredictFallback   = "Failed to predict subjects."
	RecommendFallback = "Failed to recommend papers."
)

// Prediction is the subject prediction controller.
type Prediction = Controller[models.PredictRequest, models.Prediction]

// Recommendation is the title recommendation controller.
type Recommendation = Controller[models.RecommendRequest, models.Recommendation]

// NewPrediction creates a prediction controller starting from initial.
// A zero TopK in initial is replaced by models.DefaultK; other values are clamped.
func NewPrediction(c *client.QueryClient, initial models.PredictRequest, logger *zap.Logger) *Prediction {
	if initial.TopK == 0 {
		initial.TopK = models.DefaultK
	}
	initial = initial.WithTopK(initial.TopK)
	return New(initial, Options[models.PredictRequest, models.Prediction]{
		Name:     "predict",
		Validate: models.PredictRequest.Submittable,
		Call:     c.Predict,
		Fallback: PredictFallback,
		Logger:   logger,
	})
}

// NewRecommendation creates a recommendation controller starting from initial.
// A zero K in initial is replaced by models.DefaultK; other values are clamped.
func NewRecommendation(c *client.QueryClient, initial models.RecommendRequest, logger *zap.Logger) *Recommendation {
	if initial.K == 0 {
		initial.K = models.DefaultK
	}
	initial = initial.WithK(initial.K)
	return New(initial, Options[models.RecommendRequest, models.Recommendation]{
		Name:     "recommend",
		Validate: models.RecommendRequest.Submittable,
		Call:     c.Recommend,
		Fallback: RecommendFallback,
		Logger:   logger,
	})
}
