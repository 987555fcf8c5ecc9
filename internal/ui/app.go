package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hyperjump/paperscope/internal/controller"
	"github.com/hyperjump/paperscope/internal/models"
	"go.uber.org/zap"
)

// Tab identifies one of the two feature screens.
type Tab int

const (
	TabRecommend Tab = iota
	TabPredict
)

const (
	focusMain = iota
	focusK
	focusCount
)

const defaultBarWidth = 24

// App is the root Bubble Tea model.
// App never performs network calls itself: submissions return a tea.Cmd that
// runs the request and reports back with PredictDone or RecommendDone.
type App struct {
	predict   *controller.Prediction
	recommend *controller.Recommendation

	tab   Tab
	focus int

	text       textarea.Model
	predictK   textinput.Model
	query      textinput.Model
	recommendK textinput.Model
	spinner    spinner.Model

	baseURL  string
	barWidth int
	width    int
	height   int
	logger   *zap.Logger
}

// AppConfig holds the configuration for creating a new App.
type AppConfig struct {
	Predict   *controller.Prediction
	Recommend *controller.Recommendation
	BaseURL   string
	BarWidth  int
	Logger    *zap.Logger
}

// NewApp creates the TUI model. The form fields start from the controllers' inputs.
func NewApp(cfg AppConfig) App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	barWidth := cfg.BarWidth
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	ta := textarea.New()
	ta.Placeholder = "Paste an abstract..."
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(5)
	ta.SetValue(cfg.Predict.Input().Text)

	q := textinput.New()
	q.Placeholder = "Describe the papers you want..."
	q.Width = 56
	q.SetValue(cfg.Recommend.Input().Query)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorSpinner)

	a := App{
		predict:    cfg.Predict,
		recommend:  cfg.Recommend,
		tab:        TabRecommend,
		text:       ta,
		predictK:   newKInput(cfg.Predict.Input().TopK),
		query:      q,
		recommendK: newKInput(cfg.Recommend.Input().K),
		spinner:    s,
		baseURL:    cfg.BaseURL,
		barWidth:   barWidth,
		logger:     logger,
	}
	a.applyFocus()
	return a
}

func newKInput(k int) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 2
	ti.Width = 4
	ti.Prompt = ""
	ti.SetValue(strconv.Itoa(k))
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.predict.Loading() || a.recommend.Loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case PredictDone:
		if a.predict.Complete(msg.Completion) {
			a.logger.Debug("prediction finished", zap.String("phase", a.predict.State().Phase.String()))
		}
		return a, nil

	case RecommendDone:
		if a.recommend.Complete(msg.Completion) {
			a.logger.Debug("recommendation finished", zap.String("phase", a.recommend.State().Phase.String()))
		}
		return a, nil
	}

	return a.updateFocused(msg)
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit
	case "ctrl+t":
		a.syncK()
		if a.tab == TabRecommend {
			a.tab = TabPredict
		} else {
			a.tab = TabRecommend
		}
		a.focus = focusMain
		return a, a.applyFocus()
	case "tab":
		a.syncK()
		a.focus = (a.focus + 1) % focusCount
		return a, a.applyFocus()
	case "shift+tab":
		a.syncK()
		a.focus = (a.focus + focusCount - 1) % focusCount
		return a, a.applyFocus()
	case "ctrl+s":
		return a.submit()
	case "enter":
		if a.tab == TabRecommend || a.focus == focusK {
			return a.submit()
		}
	}
	return a.updateFocused(msg)
}

// updateFocused forwards msg to the focused field and copies the field values
// into the controller inputs.
func (a App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.tab == TabPredict && a.focus == focusMain:
		a.text, cmd = a.text.Update(msg)
	case a.tab == TabPredict:
		a.predictK, cmd = a.predictK.Update(msg)
	case a.focus == focusMain:
		a.query, cmd = a.query.Update(msg)
	default:
		a.recommendK, cmd = a.recommendK.Update(msg)
	}
	a.syncInputs()
	return a, cmd
}

// syncInputs copies field values into the controllers. A K field that does not
// parse leaves the previous value in place.
func (a *App) syncInputs() {
	in := a.predict.Input()
	in.Text = a.text.Value()
	if k, err := strconv.Atoi(strings.TrimSpace(a.predictK.Value())); err == nil {
		in = in.WithTopK(k)
	}
	a.predict.SetInput(in)

	rin := a.recommend.Input()
	rin.Query = a.query.Value()
	if k, err := strconv.Atoi(strings.TrimSpace(a.recommendK.Value())); err == nil {
		rin = rin.WithK(k)
	}
	a.recommend.SetInput(rin)
}

// syncK rewrites the K fields with the clamped values the controllers hold.
func (a *App) syncK() {
	a.syncInputs()
	a.predictK.SetValue(strconv.Itoa(a.predict.Input().TopK))
	a.recommendK.SetValue(strconv.Itoa(a.recommend.Input().K))
}

func (a *App) applyFocus() tea.Cmd {
	a.text.Blur()
	a.predictK.Blur()
	a.query.Blur()
	a.recommendK.Blur()
	switch {
	case a.tab == TabPredict && a.focus == focusMain:
		return a.text.Focus()
	case a.tab == TabPredict:
		return a.predictK.Focus()
	case a.focus == focusMain:
		return a.query.Focus()
	default:
		return a.recommendK.Focus()
	}
}

// submit starts a request for the active tab. It is a no-op while the gate is closed.
func (a App) submit() (tea.Model, tea.Cmd) {
	a.syncK()
	if a.tab == TabPredict {
		p, ok := a.predict.Submit()
		if !ok {
			return a, nil
		}
		a.logger.Debug("prediction submitted", zap.String("id", p.ID))
		run := func() tea.Msg {
			return PredictDone{Completion: p.Run(context.Background())}
		}
		return a, tea.Batch(run, a.spinner.Tick)
	}

	p, ok := a.recommend.Submit()
	if !ok {
		return a, nil
	}
	a.logger.Debug("recommendation submitted", zap.String("id", p.ID))
	run := func() tea.Msg {
		return RecommendDone{Completion: p.Run(context.Background())}
	}
	return a, tea.Batch(run, a.spinner.Tick)
}

// View renders the active tab next to the connection panel.
func (a App) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("paperscope"))
	b.WriteString("  ")
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	var body string
	if a.tab == TabPredict {
		body = a.renderPredict()
	} else {
		body = a.renderRecommend()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", a.renderSidePanel()))
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("ctrl+t switch tab · tab next field · ctrl+s submit · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (a App) renderTabs() string {
	rec, pred := InactiveTab, InactiveTab
	if a.tab == TabRecommend {
		rec = ActiveTab
	} else {
		pred = ActiveTab
	}
	return rec.Render("Recommend") + pred.Render("Predict")
}

func (a App) renderSidePanel() string {
	lines := []string{
		LabelStyle.Render("Backend"),
		a.baseURL,
		"",
		LabelStyle.Render("Endpoints"),
		"POST " + models.PredictPath,
		"POST " + models.RecommendPath,
		"",
		HintStyle.Render("API docs: " + a.baseURL + "/docs"),
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}

func (a App) renderButton(label, busyLabel string, loading, enabled bool) string {
	if loading {
		return DisabledButtonStyle.Render(a.spinner.View() + " " + busyLabel)
	}
	if !enabled {
		return DisabledButtonStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}

func renderAlert(phase controller.Phase, msg string) string {
	if phase != controller.Failure {
		return ""
	}
	return AlertStyle.Render(msg) + "\n"
}

func skeleton(rows int) string {
	var b strings.Builder
	for i := 0; i < rows; i++ {
		b.WriteString(SkeletonStyle.Render(strings.Repeat("░", 36)))
		b.WriteString("\n")
	}
	return b.String()
}

func kLabel(s string) string {
	return fmt.Sprintf("%s (%d-%d)", s, models.MinK, models.MaxK)
}
