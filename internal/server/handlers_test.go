package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/paperscope/internal/catalog"
	"github.com/hyperjump/paperscope/internal/config"
	"github.com/hyperjump/paperscope/internal/models"
	"go.uber.org/zap"
)

type mockBackend struct {
	err      error
	loaded   bool
	gotText  string
	gotTopK  int
	gotQuery string
	gotK     int
	preds    []models.Prediction
	recs     []models.Recommendation
}

func (m *mockBackend) Predict(text string, topK int) ([]models.Prediction, error) {
	m.gotText, m.gotTopK = text, topK
	return m.preds, m.err
}

func (m *mockBackend) Recommend(query string, k int) ([]models.Recommendation, error) {
	m.gotQuery, m.gotK = query, k
	return m.recs, m.err
}

func (m *mockBackend) Loaded() bool { return m.loaded }
func (m *mockBackend) Path() string { return "" }

func newTestServer(b Backend) http.Handler {
	return NewServer(b, &config.StubConfig{Host: "127.0.0.1", Port: 8000}, zap.NewNop()).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandlePredict_OK(t *testing.T) {
	b := &mockBackend{loaded: true, preds: []models.Prediction{{Label: "cs.CL", Score: 0.8231}}}
	w := do(t, newTestServer(b), http.MethodPost, "/predict-subjects", `{"text":"hello world","top_k":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", w.Code, w.Body.String())
	}
	if b.gotText != "hello world" || b.gotTopK != 3 {
		t.Errorf("backend got text=%q top_k=%d", b.gotText, b.gotTopK)
	}
	preds := models.DecodePredictions(w.Body.Bytes())
	if len(preds) != 1 || preds[0].Label != "cs.CL" || preds[0].Score.Float() != 0.8231 {
		t.Errorf("predictions = %+v", preds)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q", got)
	}
}

func TestHandlePredict_DefaultTopK(t *testing.T) {
	b := &mockBackend{loaded: true}
	w := do(t, newTestServer(b), http.MethodPost, "/predict-subjects", `{"text":"hello world"}`)
	if w.Code != http.StatusOK || b.gotTopK != 5 {
		t.Errorf("status %d top_k %d", w.Code, b.gotTopK)
	}
}

func TestHandlers_Validation(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantType string
		wantLoc  string
	}{
		{"text too short", "/predict-subjects", `{"text":"abcd"}`, "string_too_short", "text"},
		{"text missing", "/predict-subjects", `{"top_k":3}`, "missing", "text"},
		{"top_k too small", "/predict-subjects", `{"text":"hello","top_k":0}`, "greater_than_equal", "top_k"},
		{"top_k too large", "/predict-subjects", `{"text":"hello","top_k":31}`, "less_than_equal", "top_k"},
		{"query too short", "/recommend", `{"query":"a"}`, "string_too_short", "query"},
		{"k too large", "/recommend", `{"query":"ab","k":99}`, "less_than_equal", "k"},
		{"k wrong type", "/recommend", `{"query":"ab","k":"five"}`, "int_type", "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &mockBackend{loaded: true}
			w := do(t, newTestServer(b), http.MethodPost, tt.path, tt.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status: got %d body %s", w.Code, w.Body.String())
			}
			var out struct {
				Detail []fieldError `json:"detail"`
			}
			if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}
			if len(out.Detail) == 0 || out.Detail[0].Type != tt.wantType || out.Detail[0].Loc[1] != tt.wantLoc {
				t.Errorf("detail = %+v", out.Detail)
			}
			if b.gotText != "" || b.gotQuery != "" {
				t.Error("invalid request reached the backend")
			}
		})
	}
}

func TestHandlers_InvalidJSON(t *testing.T) {
	w := do(t, newTestServer(&mockBackend{loaded: true}), http.MethodPost, "/recommend", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil || out["detail"] != "invalid request body" {
		t.Errorf("body = %v (%v)", out, err)
	}
}

func TestHandlers_NotLoaded(t *testing.T) {
	b := &mockBackend{err: catalog.ErrNotLoaded}
	h := newTestServer(b)

	w := do(t, h, http.MethodPost, "/predict-subjects", `{"text":"hello world"}`)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "Models not loaded yet.") {
		t.Errorf("predict: %d %s", w.Code, w.Body.String())
	}
	w = do(t, h, http.MethodPost, "/recommend", `{"query":"transformers"}`)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "Recommendation models not loaded yet.") {
		t.Errorf("recommend: %d %s", w.Code, w.Body.String())
	}
}

func TestHandleRecommend_BackendFailure(t *testing.T) {
	b := &mockBackend{loaded: true, err: errors.New("index closed")}
	w := do(t, newTestServer(b), http.MethodPost, "/recommend", `{"query":"transformers","k":2}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", w.Code)
	}
	if b.gotK != 2 {
		t.Errorf("k = %d", b.gotK)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil || out["detail"] != "index closed" {
		t.Errorf("body = %v (%v)", out, err)
	}
}

func TestHandleHealth(t *testing.T) {
	w := do(t, newTestServer(&mockBackend{loaded: true}), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var h models.Health
	if err := json.NewDecoder(w.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.ModelDir != "built-in" || !h.SavedModelExists || !h.LabelVocabExists {
		t.Errorf("health = %+v", h)
	}
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newTestServer(&mockBackend{}), http.MethodOptions, "/recommend", "")
	if w.Code != http.StatusOK {
		t.Errorf("preflight status: got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("missing allow-methods header")
	}
}

func TestServer_WithCatalogStore(t *testing.T) {
	store := catalog.NewStore(nil)
	if err := store.Load(""); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = store.Close()
	}()
	h := newTestServer(store)

	w := do(t, h, http.MethodPost, "/recommend", `{"query":"transformer question answering","k":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", w.Code, w.Body.String())
	}
	recs := models.DecodeRecommendations(w.Body.Bytes())
	if len(recs) == 0 || len(recs) > 3 {
		t.Errorf("recommendations = %+v", recs)
	}

	w = do(t, h, http.MethodPost, "/predict-subjects", `{"text":"We propose a transformer-based method for question answering.","top_k":30}`)
	preds := models.DecodePredictions(w.Body.Bytes())
	if len(preds) == 0 || preds[0].Label != "cs.CL" {
		t.Errorf("predictions = %+v", preds)
	}
	for _, p := range preds {
		if p.Label == catalog.UnknownLabel {
			t.Error("[UNK] must not be returned")
		}
	}
}
