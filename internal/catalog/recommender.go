package catalog

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/hyperjump/paperscope/internal/models"
)

// defaultFuzziness is the edit distance used when an exact match finds nothing.
const defaultFuzziness = 1

// Recommender ranks catalog titles against a free-text query using an
// in-memory Bleve index. Scores are raw Bleve scores and are not bounded.
type Recommender struct {
	index  bleve.Index
	titles []string
}

// NewRecommender indexes titles in memory.
func NewRecommender(titles []string) (*Recommender, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	// Standard analyzer: lowercase and tokenize without stemming, so "transformer"
	// does not also match "transform".
	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", titleField)
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	batch := index.NewBatch()
	for i, t := range titles {
		if err := batch.Index(strconv.Itoa(i), map[string]interface{}{"title": t}); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index title %d: %w", i, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to index titles: %w", err)
	}
	return &Recommender{index: index, titles: append([]string(nil), titles...)}, nil
}

// Recommend returns up to k titles for query, best first. When the exact match
// query finds nothing, a fuzzy query is tried for typo tolerance.
func (r *Recommender) Recommend(query string, k int) ([]models.Recommendation, error) {
	mq := bleve.NewMatchQuery(query)
	mq.SetField("title")
	out, err := r.search(mq, k)
	if err != nil || len(out) > 0 {
		return out, err
	}
	return r.search(buildFuzzyQuery(query, defaultFuzziness), k)
}

func (r *Recommender) search(q blevequery.Query, k int) ([]models.Recommendation, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = k
	res, err := r.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]models.Recommendation, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(r.titles) {
			continue
		}
		out = append(out, models.Recommendation{Title: r.titles[i], Score: models.Score(hit.Score)})
	}
	return out, nil
}

// Len returns the number of indexed titles.
func (r *Recommender) Len() int {
	return len(r.titles)
}

// Close releases the index.
func (r *Recommender) Close() error {
	return r.index.Close()
}

// buildFuzzyQuery creates a disjunction of fuzzy title queries, one per term.
func buildFuzzyQuery(queryStr string, fuzziness int) blevequery.Query {
	terms := Tokenize(queryStr)
	if len(terms) == 0 {
		mq := bleve.NewMatchQuery(queryStr)
		mq.SetField("title")
		return mq
	}
	queries := make([]blevequery.Query, 0, len(terms))
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(fuzziness)
		fq.SetField("title")
		queries = append(queries, fq)
	}
	return bleve.NewDisjunctionQuery(queries...)
}
