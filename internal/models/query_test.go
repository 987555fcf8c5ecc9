package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPredictRequest_Submittable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"whitespace only", "      ", false},
		{"four chars", "abcd", false},
		{"four chars padded", "  abcd  ", false},
		{"five chars", "abcde", true},
		{"five chars padded", "\n abcde \t", true},
		{"multibyte runes", "日本語の論", true},
		{"long abstract", "We propose a transformer-based method.", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PredictRequest{Text: tt.text, TopK: DefaultK}
			if got := r.Submittable(); got != tt.want {
				t.Errorf("Submittable(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRecommendRequest_Submittable(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty", "", false},
		{"one char", "a", false},
		{"one char padded", "  a ", false},
		{"two chars", "ab", true},
		{"phrase", "graph neural networks", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RecommendRequest{Query: tt.query, K: DefaultK}
			if got := r.Submittable(); got != tt.want {
				t.Errorf("Submittable(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestClampK(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {5, 5}, {30, 30}, {31, 30}, {1000, 30},
	}
	for _, tt := range tests {
		if got := ClampK(tt.in); got != tt.want {
			t.Errorf("ClampK(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := (PredictRequest{}).WithTopK(99).TopK; got != MaxK {
		t.Errorf("WithTopK(99) = %d, want %d", got, MaxK)
	}
	if got := (RecommendRequest{}).WithK(0).K; got != MinK {
		t.Errorf("WithK(0) = %d, want %d", got, MinK)
	}
}

func TestRequest_EndpointsAndWireShape(t *testing.T) {
	var q QueryRequest = PredictRequest{Text: "hello world", TopK: 3}
	if q.Endpoint() != "/predict-subjects" {
		t.Errorf("predict endpoint = %q", q.Endpoint())
	}
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"text":"hello world","top_k":3}` {
		t.Errorf("predict body = %s", b)
	}

	q = RecommendRequest{Query: "bert", K: 7}
	if q.Endpoint() != "/recommend" {
		t.Errorf("recommend endpoint = %q", q.Endpoint())
	}
	b, err = json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"query":"bert","k":7}` {
		t.Errorf("recommend body = %s", b)
	}
}

func TestScore_UnmarshalNonNumeric(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		numeric bool
		want    float64
	}{
		{"number", `0.8231`, true, 0.8231},
		{"integer", `1`, true, 1},
		{"negative", `-0.5`, true, -0.5},
		{"null", `null`, false, 0},
		{"string", `"0.5"`, false, 0},
		{"bool", `true`, false, 0},
		{"object", `{"v":1}`, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if s.Numeric() != tt.numeric {
				t.Errorf("Numeric() = %v, want %v", s.Numeric(), tt.numeric)
			}
			if tt.numeric && s.Float() != tt.want {
				t.Errorf("Float() = %v, want %v", s.Float(), tt.want)
			}
		})
	}
}

func TestScore_MarshalNaNAsNull(t *testing.T) {
	b, err := json.Marshal(Prediction{Label: "cs.CL", Score: Score(math.NaN())})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"label":"cs.CL","score":null}` {
		t.Errorf("got %s", b)
	}
}

func TestDecodePredictions(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		labels []string
	}{
		{"two rows in order", `{"predictions":[{"label":"cs.CL","score":0.8231},{"label":"cs.LG","score":0.41}]}`, 2, []string{"cs.CL", "cs.LG"}},
		{"missing field", `{"other":[]}`, 0, nil},
		{"null field", `{"predictions":null}`, 0, nil},
		{"empty body", ``, 0, nil},
		{"not json", `<html>oops</html>`, 0, nil},
		{"wrong shape", `{"predictions":"nope"}`, 0, nil},
		{"non-numeric score kept", `{"predictions":[{"label":"x","score":"high"}]}`, 1, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodePredictions(json.RawMessage(tt.raw))
			if got == nil {
				t.Fatal("DecodePredictions returned nil, want empty slice")
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			for i, l := range tt.labels {
				if got[i].Label != l {
					t.Errorf("row %d label = %q, want %q", i, got[i].Label, l)
				}
			}
		})
	}
}

func TestDecodeRecommendations(t *testing.T) {
	got := DecodeRecommendations(json.RawMessage(`{"recommendations":[{"title":"Attention Is All You Need","score":0.912}]}`))
	if len(got) != 1 || got[0].Title != "Attention Is All You Need" || got[0].Score.Float() != 0.912 {
		t.Errorf("got %+v", got)
	}
	if got := DecodeRecommendations(nil); got == nil || len(got) != 0 {
		t.Errorf("nil body: got %#v, want empty slice", got)
	}
	if got := DecodeRecommendations(json.RawMessage(`{}`)); len(got) != 0 {
		t.Errorf("missing field: got %+v", got)
	}
}
