package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hyperjump/paperscope/internal/catalog"
	"github.com/hyperjump/paperscope/internal/models"
	"go.uber.org/zap"
)

const (
	predictNotLoaded   = "Models not loaded yet."
	recommendNotLoaded = "Recommendation models not loaded yet."
)

type predictBody struct {
	Text *string `json:"text"`
	TopK *int    `json:"top_k"`
}

type recommendBody struct {
	Query *string `json:"query"`
	K     *int    `json:"k"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body predictBody
	if !s.decode(w, r, &body) {
		return
	}
	errs := requireString("text", body.Text, models.MinTextLength)
	topK, kErrs := intInRange("top_k", body.TopK, models.MinK, models.MaxK, models.DefaultK)
	if errs = append(errs, kErrs...); len(errs) > 0 {
		s.respondValidation(w, errs)
		return
	}
	s.logger.Debug("predict request", zap.Int("text_len", len(*body.Text)), zap.Int("top_k", topK))

	preds, err := s.backend.Predict(*body.Text, topK)
	if err != nil {
		s.respondBackendError(w, err, predictNotLoaded)
		return
	}
	s.respondJSON(w, http.StatusOK, models.PredictResponse{Predictions: preds})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var body recommendBody
	if !s.decode(w, r, &body) {
		return
	}
	errs := requireString("query", body.Query, models.MinQueryLength)
	k, kErrs := intInRange("k", body.K, models.MinK, models.MaxK, models.DefaultK)
	if errs = append(errs, kErrs...); len(errs) > 0 {
		s.respondValidation(w, errs)
		return
	}
	s.logger.Debug("recommend request", zap.String("query", *body.Query), zap.Int("k", k))

	recs, err := s.backend.Recommend(*body.Query, k)
	if err != nil {
		s.respondBackendError(w, err, recommendNotLoaded)
		return
	}
	s.respondJSON(w, http.StatusOK, models.RecommendResponse{Recommendations: recs})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	loaded := s.backend.Loaded()
	dir := s.backend.Path()
	if dir == "" {
		dir = "built-in"
	}
	s.respondJSON(w, http.StatusOK, models.Health{
		Status:           "ok",
		ModelDir:         dir,
		SavedModelExists: loaded,
		EmbeddingsExists: loaded,
		SentencesExists:  loaded,
		LabelVocabExists: loaded,
	})
}

// decode reads a JSON request body into v. Type mismatches are reported as
// validation errors; anything else unreadable is a bad request.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		s.respondValidation(w, []fieldError{{
			Type: typeErr.Type.Kind().String() + "_type",
			Loc:  []string{"body", typeErr.Field},
			Msg:  "Input should be a valid " + typeErr.Type.Kind().String(),
		}})
		return false
	}
	s.respondError(w, http.StatusBadRequest, "invalid request body")
	return false
}

func (s *Server) respondBackendError(w http.ResponseWriter, err error, notLoaded string) {
	if errors.Is(err, catalog.ErrNotLoaded) {
		s.respondError(w, http.StatusServiceUnavailable, notLoaded)
		return
	}
	s.logger.Error("backend query failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondValidation(w http.ResponseWriter, errs []fieldError) {
	s.respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"detail": errs})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"detail": message})
}
