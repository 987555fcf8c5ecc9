// Package models defines the request, response and score types exchanged with the inference backend.
package models

import (
	"strings"
	"unicode/utf8"
)

// Endpoint paths served by the inference backend.
const (
	PredictPath   = "/predict-subjects"
	RecommendPath = "/recommend"
	HealthPath    = "/health"
)

const (
	// MinTextLength is the minimum trimmed length (in runes) of text sent for prediction.
	MinTextLength = 5
	// MinQueryLength is the minimum trimmed length (in runes) of a recommendation query.
	MinQueryLength = 2
	// MinK and MaxK bound top_k / k on both endpoints.
	MinK = 1
	MaxK = 30
	// DefaultK is the result count used when none is given.
	DefaultK = 5
)

// QueryRequest is a request body for one of the two query endpoints.
// Implemented by PredictRequest and RecommendRequest.
type QueryRequest interface {
	// Endpoint returns the path the request is posted to.
	Endpoint() string
	// Submittable reports whether the request passes client-side validation.
	Submittable() bool
	isQueryRequest()
}

// PredictRequest asks for the most likely subject labels of a text.
type PredictRequest struct {
	Text string `json:"text"`
	TopK int    `json:"top_k"`
}

// Endpoint implements QueryRequest.
func (r PredictRequest) Endpoint() string { return PredictPath }

// Submittable reports whether the trimmed text has at least MinTextLength runes.
func (r PredictRequest) Submittable() bool {
	return TrimmedLength(r.Text) >= MinTextLength
}

// WithTopK returns a copy of r with TopK clamped into [MinK, MaxK].
func (r PredictRequest) WithTopK(k int) PredictRequest {
	r.TopK = ClampK(k)
	return r
}

func (PredictRequest) isQueryRequest() {}

// RecommendRequest asks for titles similar to a free-text query.
type RecommendRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// Endpoint implements QueryRequest.
func (r RecommendRequest) Endpoint() string { return RecommendPath }

// Submittable reports whether the trimmed query has at least MinQueryLength runes.
func (r RecommendRequest) Submittable() bool {
	return TrimmedLength(r.Query) >= MinQueryLength
}

// WithK returns a copy of r with K clamped into [MinK, MaxK].
func (r RecommendRequest) WithK(k int) RecommendRequest {
	r.K = ClampK(k)
	return r
}

func (RecommendRequest) isQueryRequest() {}

// TrimmedLength returns the rune count of s with surrounding whitespace removed.
func TrimmedLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// ClampK clamps k into [MinK, MaxK].
func ClampK(k int) int {
	if k < MinK {
		return MinK
	}
	if k > MaxK {
		return MaxK
	}
	return k
}
