package catalog

import (
	"sort"

	"github.com/hyperjump/paperscope/internal/models"
	"github.com/hyperjump/paperscope/pkg/utils"
)

// Predictor scores subject labels by keyword votes.
type Predictor struct {
	labels   []string
	keywords []map[string]struct{}
}

// NewPredictor builds a predictor over the catalog labels.
func NewPredictor(c *Catalog) *Predictor {
	p := &Predictor{
		labels:   make([]string, len(c.Labels)),
		keywords: make([]map[string]struct{}, len(c.Labels)),
	}
	for i, l := range c.Labels {
		p.labels[i] = l.Name
		set := make(map[string]struct{}, len(l.Keywords))
		for _, kw := range l.Keywords {
			for _, tok := range Tokenize(kw) {
				set[tok] = struct{}{}
			}
		}
		p.keywords[i] = set
	}
	return p
}

// Predict returns up to topK labels ordered by descending probability.
// Probabilities are the softmax of per-label keyword hit counts. The unknown
// label is dropped after the cut, so fewer than topK results may be returned.
func (p *Predictor) Predict(text string, topK int) []models.Prediction {
	logits := make([]float64, len(p.labels))
	for _, tok := range Tokenize(text) {
		for i, set := range p.keywords {
			if _, ok := set[tok]; ok {
				logits[i]++
			}
		}
	}
	probs := utils.Softmax(logits)

	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return probs[order[a]] > probs[order[b]] })
	if topK < len(order) {
		order = order[:topK]
	}

	out := make([]models.Prediction, 0, len(order))
	for _, i := range order {
		if p.labels[i] == UnknownLabel {
			continue
		}
		out = append(out, models.Prediction{Label: p.labels[i], Score: models.Score(probs[i])})
	}
	return out
}

// Labels returns the label vocabulary in catalog order.
func (p *Predictor) Labels() []string {
	return append([]string(nil), p.labels...)
}
