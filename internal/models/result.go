package models

import (
	"bytes"
	"encoding/json"
	"math"
)

// Score is a similarity or confidence value reported by the backend.
// The backend does not guarantee bounds. Any JSON value that is not a number
// decodes to NaN, which formatting treats as zero.
type Score float64

// Float returns the score as a float64.
func (s Score) Float() float64 { return float64(s) }

// Numeric reports whether the score carries a real number.
func (s Score) Numeric() bool { return !math.IsNaN(float64(s)) }

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Score(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*s = Score(math.NaN())
		return nil
	}
	*s = Score(f)
	return nil
}

// MarshalJSON implements json.Marshaler. NaN and infinities encode as null.
func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Prediction is one predicted subject label.
type Prediction struct {
	Label string `json:"label"`
	Score Score  `json:"score"`
}

// PredictResponse is the body returned by the prediction endpoint.
type PredictResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// Recommendation is one recommended paper title.
type Recommendation struct {
	Title string `json:"title"`
	Score Score  `json:"score"`
}

// RecommendResponse is the body returned by the recommendation endpoint.
type RecommendResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// DecodePredictions extracts the predictions list from a response body.
// A nil or unparsable body, or a missing or null field, yields an empty slice.
func DecodePredictions(raw json.RawMessage) []Prediction {
	var resp PredictResponse
	if !decodeLenient(raw, &resp) || resp.Predictions == nil {
		return []Prediction{}
	}
	return resp.Predictions
}

// DecodeRecommendations extracts the recommendations list from a response body.
// A nil or unparsable body, or a missing or null field, yields an empty slice.
func DecodeRecommendations(raw json.RawMessage) []Recommendation {
	var resp RecommendResponse
	if !decodeLenient(raw, &resp) || resp.Recommendations == nil {
		return []Recommendation{}
	}
	return resp.Recommendations
}

func decodeLenient(raw json.RawMessage, v any) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Health is the body returned by the backend health endpoint.
type Health struct {
	Status           string `json:"status"`
	ModelDir         string `json:"model_dir,omitempty"`
	SavedModelExists bool   `json:"saved_model_exists"`
	EmbeddingsExists bool   `json:"embeddings_exists"`
	SentencesExists  bool   `json:"sentences_exists"`
	LabelVocabExists bool   `json:"label_vocab_exists"`
}
