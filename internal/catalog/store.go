package catalog

import (
	"errors"
	"sync"

	"github.com/hyperjump/paperscope/internal/models"
	"go.uber.org/zap"
)

// ErrNotLoaded is returned by Store queries before a catalog has been loaded.
var ErrNotLoaded = errors.New("catalog not loaded")

// Store holds the active predictor and recommender and swaps them on reload.
// Queries in progress finish against the snapshot they started with.
type Store struct {
	mu          sync.RWMutex
	path        string
	predictor   *Predictor
	recommender *Recommender
	logger      *zap.Logger
}

// NewStore creates an empty store. Call Load before serving queries.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Load reads the catalog at path (empty for the built-in one) and makes it active.
// On error the previous catalog, if any, stays active.
func (s *Store) Load(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	rec, err := NewRecommender(c.Titles)
	if err != nil {
		return err
	}
	pred := NewPredictor(c)

	s.mu.Lock()
	old := s.recommender
	s.path = path
	s.predictor = pred
	s.recommender = rec
	s.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	s.logger.Info("Catalog loaded",
		zap.String("path", sourceName(path)),
		zap.Int("labels", len(c.Labels)),
		zap.Int("titles", len(c.Titles)))
	return nil
}

// Reload re-reads the catalog from the path given to the last successful Load.
func (s *Store) Reload() error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()
	return s.Load(path)
}

// Path returns the catalog file path; empty means the built-in catalog.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Loaded reports whether queries can be served.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predictor != nil && s.recommender != nil
}

// Predict runs the active predictor.
func (s *Store) Predict(text string, topK int) ([]models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.predictor == nil {
		return nil, ErrNotLoaded
	}
	return s.predictor.Predict(text, topK), nil
}

// Recommend runs the active recommender.
func (s *Store) Recommend(query string, k int) ([]models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.recommender == nil {
		return nil, ErrNotLoaded
	}
	return s.recommender.Recommend(query, k)
}

// Close releases the active recommender. The store reports not loaded afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.recommender != nil {
		err = s.recommender.Close()
	}
	s.predictor = nil
	s.recommender = nil
	return err
}

func sourceName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
