// Package e2e runs the client against the stub backend over real HTTP.
package e2e

import (
	"fmt"

	"github.com/hyperjump/paperscope/internal/catalog"
	"gopkg.in/yaml.v3"
)

// PredictCase is an abstract whose top predicted label must be ExpectedLabel.
type PredictCase struct {
	Text          string
	ExpectedLabel string
}

// RecommendCase is a query whose first recommendation must be ExpectedTitle.
type RecommendCase struct {
	Query         string
	ExpectedTitle string
}

// Corpus is a generated catalog plus the cases it must satisfy.
type Corpus struct {
	Catalog        catalog.Catalog
	PredictCases   []PredictCase
	RecommendCases []RecommendCase
}

// topic pairs a label with a keyword no other topic uses and a title carrying that keyword.
type topic struct {
	label   string
	keyword string
	title   string
}

var topics = []topic{
	{"cs.CL", "summarization", "Abstractive Summarization with Pointer Networks"},
	{"cs.LG", "regularization", "Dropout as Regularization for Deep Networks"},
	{"cs.CV", "segmentation", "Panoptic Segmentation of Street Scenes"},
	{"cs.AI", "planning", "Hierarchical Planning for Embodied Agents"},
	{"stat.ML", "variational", "Variational Inference for Topic Models"},
	{"cs.IR", "reranking", "Neural Reranking for Passage Search"},
	{"cs.RO", "locomotion", "Quadruped Locomotion from Simulation"},
	{"math.OC", "convexity", "Strong Convexity and Linear Rates"},
	{"cs.CR", "cryptanalysis", "Differential Cryptanalysis of Block Ciphers"},
	{"cs.DC", "consensus", "Byzantine Consensus in Partial Synchrony"},
	{"cs.DB", "indexing", "Learned Indexing Structures for Range Queries"},
	{"cs.SE", "refactoring", "Automated Refactoring of Legacy Code"},
	{"cs.PL", "typechecking", "Bidirectional Typechecking for Dependent Types"},
	{"cs.HC", "accessibility", "Accessibility Audits of Mobile Interfaces"},
	{"cs.NI", "congestion", "Congestion Control for Datacenter Networks"},
	{"cs.SD", "beamforming", "Neural Beamforming for Speech Enhancement"},
	{"q-bio.GN", "genomics", "Foundation Models for Single Cell Genomics"},
	{"physics.comp-ph", "turbulence", "Turbulence Closure with Graph Networks"},
	{"econ.EM", "econometrics", "Causal Econometrics with Panel Data"},
	{"math.ST", "bootstrap", "Bootstrap Confidence Sets in High Dimensions"},
}

// BuildCorpus returns a catalog with one label and one title per topic, plus
// one prediction case and one recommendation case per topic.
func BuildCorpus() *Corpus {
	c := &Corpus{}
	for _, tp := range topics {
		c.Catalog.Labels = append(c.Catalog.Labels, catalog.Label{Name: tp.label, Keywords: []string{tp.keyword}})
		c.Catalog.Titles = append(c.Catalog.Titles, tp.title)
		c.PredictCases = append(c.PredictCases, PredictCase{
			Text:          fmt.Sprintf("We study %s in a new setting and report strong results.", tp.keyword),
			ExpectedLabel: tp.label,
		})
		c.RecommendCases = append(c.RecommendCases, RecommendCase{
			Query:         tp.keyword,
			ExpectedTitle: tp.title,
		})
	}
	c.Catalog.Labels = append(c.Catalog.Labels, catalog.Label{Name: catalog.UnknownLabel})
	return c
}

// YAML encodes the corpus catalog in the format catalog.Load reads.
func (c *Corpus) YAML() ([]byte, error) {
	return yaml.Marshal(&c.Catalog)
}
