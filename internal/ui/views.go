package ui

import (
	"fmt"
	"strings"

	"github.com/hyperjump/paperscope/internal/controller"
	"github.com/hyperjump/paperscope/internal/format"
	"github.com/hyperjump/paperscope/pkg/utils"
)

const (
	maxPredictSkeleton   = 5
	maxRecommendSkeleton = 6
	maxTitleRunes        = 70
)

func (a App) renderPredict() string {
	in := a.predict.Input()
	state := a.predict.State()

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Abstract"))
	b.WriteString("\n")
	b.WriteString(a.text.View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render(kLabel("Top K")) + " " + a.predictK.View())
	b.WriteString("   ")
	b.WriteString(a.renderButton("Predict", "Predicting...", a.predict.Loading(), a.predict.CanSubmit()))
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("Minimum 5 characters. Returns the top-k subject labels with confidence scores."))
	b.WriteString("\n\n")
	b.WriteString(renderAlert(state.Phase, state.Message))

	switch {
	case state.Phase == controller.Loading:
		b.WriteString(skeleton(min(in.TopK, maxPredictSkeleton)))
	case len(state.Results) == 0:
		b.WriteString(HintStyle.Render(format.EmptyPredictions))
		b.WriteString("\n")
	default:
		rows := format.PredictionRows(state.Results)
		width := 0
		for _, r := range rows {
			width = max(width, len([]rune(r.Label)))
		}
		for _, r := range rows {
			pad := strings.Repeat(" ", width-len([]rune(r.Label)))
			fmt.Fprintf(&b, "%s%s  %s %s\n",
				LabelStyle.Render(r.Label), pad,
				BarStyle.Render(format.Bar(r.Percent, a.barWidth)),
				ScoreStyle.Render(fmt.Sprintf("%s · %d%%", r.Score, r.Percent)))
		}
	}
	return b.String()
}

func (a App) renderRecommend() string {
	in := a.recommend.Input()
	state := a.recommend.State()

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Query"))
	b.WriteString("\n")
	b.WriteString(a.query.View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render(kLabel("K")) + " " + a.recommendK.View())
	b.WriteString("   ")
	b.WriteString(a.renderButton("Recommend", "Searching...", a.recommend.Loading(), a.recommend.CanSubmit()))
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("Minimum 2 characters. Returns the most similar paper titles."))
	b.WriteString("\n\n")
	b.WriteString(renderAlert(state.Phase, state.Message))

	switch {
	case state.Phase == controller.Loading:
		b.WriteString(skeleton(min(in.K, maxRecommendSkeleton)))
	case len(state.Results) == 0:
		b.WriteString(HintStyle.Render(format.EmptyRecommendations))
		b.WriteString("\n")
	default:
		for _, r := range format.RecommendationRows(state.Results) {
			fmt.Fprintf(&b, "%d. %s\n", r.Rank, utils.Truncate(r.Title, maxTitleRunes))
			b.WriteString(ScoreStyle.Render("   Similarity: " + r.Score))
			b.WriteString("\n")
		}
	}
	return b.String()
}
