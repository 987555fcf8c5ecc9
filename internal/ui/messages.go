// Package ui provides the Bubble Tea TUI for paperscope.
package ui

import (
	"github.com/hyperjump/paperscope/internal/controller"
	"github.com/hyperjump/paperscope/internal/models"
)

// PredictDone is sent when a prediction request finishes, successfully or not.
type PredictDone struct {
	Completion controller.Completion[models.Prediction]
}

// RecommendDone is sent when a recommendation request finishes.
type RecommendDone struct {
	Completion controller.Completion[models.Recommendation]
}
