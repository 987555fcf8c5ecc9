// Package format turns backend scores into display values.
//
// Prediction confidences are shown as a clamped integer percentage next to the
// raw score. Recommendation similarities are shown raw because they are not
// guaranteed to fall in [0,1].
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/hyperjump/paperscope/internal/models"
)

// ClampPercent rounds x half up and clamps it to [0, 100]. NaN yields 0.
func ClampPercent(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Floor(x + 0.5)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

// FormatScore renders x with four decimal places. NaN renders as "0.0000" and
// infinities as "+Inf" or "-Inf".
func FormatScore(x float64) string {
	if math.IsNaN(x) {
		x = 0
	}
	return strconv.FormatFloat(x, 'f', 4, 64)
}

// Percent converts a confidence in [0,1] into a display percentage.
func Percent(s models.Score) int {
	return ClampPercent(s.Float() * 100)
}

// PredictionRow is a display-ready prediction.
type PredictionRow struct {
	Label   string `json:"label"`
	Score   string `json:"score"`
	Percent int    `json:"percent"`
}

// RecommendationRow is a display-ready recommendation. Rank is 1-based.
type RecommendationRow struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
	Score string `json:"score"`
}

// PredictionRows derives display rows in the order given.
func PredictionRows(preds []models.Prediction) []PredictionRow {
	rows := make([]PredictionRow, len(preds))
	for i, p := range preds {
		rows[i] = PredictionRow{
			Label:   p.Label,
			Score:   FormatScore(p.Score.Float()),
			Percent: Percent(p.Score),
		}
	}
	return rows
}

// RecommendationRows derives ranked display rows in the order given.
func RecommendationRows(recs []models.Recommendation) []RecommendationRow {
	rows := make([]RecommendationRow, len(recs))
	for i, r := range recs {
		rows[i] = RecommendationRow{
			Rank:  i + 1,
			Title: r.Title,
			Score: FormatScore(r.Score.Float()),
		}
	}
	return rows
}

const (
	barFull  = "█"
	barEmpty = "░"
)

// Bar draws a horizontal bar of width cells with percent of them filled.
func Bar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	filled := ClampPercent(float64(percent)) * width
	filled = (filled + 50) / 100
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)
}

// Empty-state texts shown when a feature has no rows to display.
const (
	EmptyPredictions     = "No results yet. Click Predict."
	EmptyRecommendations = "No recommendations yet. Click Recommend."
)
