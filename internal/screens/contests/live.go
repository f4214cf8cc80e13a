package contests

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/contest"
	"github.com/abhisek/placeprep/internal/router"
	"github.com/abhisek/placeprep/internal/screen"
	"github.com/abhisek/placeprep/internal/ui/components"
	"github.com/abhisek/placeprep/internal/ui/layout"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

type contestTickMsg time.Time

type sampleResultMsg struct {
	epoch  int
	result *content.ExecResult
	err    error
}

type submittedMsg struct {
	sub *contest.Submission
	err error
}

// LiveScreen is an active contest run: problem statement, code editor,
// countdown and integrity monitoring.
type LiveScreen struct {
	sess *contest.Session
	sink contest.SubmissionSink
	svc  *content.Service

	editor   components.CodeEditor
	editing  bool
	language string

	warning    string
	console    string
	confirming bool
	submitting bool
	done       *contest.Submission
	errMsg     string

	width  int
	height int
}

var _ screen.Screen = (*LiveScreen)(nil)
var _ screen.KeyHintProvider = (*LiveScreen)(nil)

// NewLive creates the live contest screen for an already joined session.
func NewLive(sess *contest.Session, sink contest.SubmissionSink, svc *content.Service) *LiveScreen {
	l := &LiveScreen{
		sess:     sess,
		sink:     sink,
		svc:      svc,
		language: defaultLanguage(sess.Current()),
	}
	l.loadEditor()
	return l
}

func defaultLanguage(p *content.CodingProblem) string {
	if p == nil || len(p.StarterCode) == 0 {
		return "python"
	}
	if _, ok := p.StarterCode["python"]; ok {
		return "python"
	}
	langs := make([]string, 0, len(p.StarterCode))
	for lang := range p.StarterCode {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs[0]
}

func (l *LiveScreen) Title() string {
	return "Contest"
}

func (l *LiveScreen) Init() tea.Cmd {
	return tea.Batch(l.editor.Init(), contestTick())
}

func (l *LiveScreen) KeyHints() []layout.KeyHint {
	switch {
	case l.done != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
	case l.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep working"},
		}
	case l.editing:
		return []layout.KeyHint{{Key: "Esc", Description: "Leave editor"}}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Problems"},
		{Key: "E", Description: "Edit code"},
		{Key: "R", Description: "Run sample"},
		{Key: "L", Description: "Language"},
		{Key: "S", Description: "Submit"},
	}
}

func (l *LiveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width, l.height = msg.Width, msg.Height
		l.editor.Resize(editorWidth(l.width), editorHeight(l.height))
		return l, nil

	case tea.BlurMsg:
		// Loss of terminal focus counts as an integrity violation.
		return l.handleViolation()

	case tea.FocusMsg:
		return l, nil

	case contestTickMsg:
		if l.done != nil || l.submitting {
			return l, nil
		}
		if l.sess.Tick(time.Now()) {
			return l, l.submitCmd()
		}
		return l, contestTick()

	case sampleResultMsg:
		if msg.epoch != l.sess.Epoch() {
			return l, nil
		}
		if msg.err != nil {
			l.console = "error: " + msg.err.Error()
		} else {
			l.console = msg.result.Output
			if msg.result.Error != "" {
				l.console += "\n" + msg.result.Error
			}
		}
		return l, nil

	case submittedMsg:
		l.submitting = false
		if msg.err != nil {
			l.errMsg = msg.err.Error()
			return l, nil
		}
		l.done = msg.sub
		return l, nil

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	if l.editing {
		var cmd tea.Cmd
		l.editor, cmd = l.editor.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LiveScreen) handleViolation() (screen.Screen, tea.Cmd) {
	if l.done != nil || l.submitting {
		return l, nil
	}
	remaining, forced := l.sess.RecordViolation()
	if forced {
		l.warning = "Focus lost too many times. Submitting your work."
		l.saveEditor()
		return l, l.submitCmd()
	}
	l.warning = fmt.Sprintf("Focus lost! %d chance(s) left before auto-submit.", remaining)
	return l, nil
}

func (l *LiveScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if l.done != nil {
		if key == "enter" || key == "esc" {
			return l, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return l, nil
	}

	if l.confirming {
		switch key {
		case "y", "Y":
			l.confirming = false
			l.saveEditor()
			return l, l.submitCmd()
		case "n", "N", "esc":
			l.confirming = false
		}
		return l, nil
	}

	if l.editing {
		if key == "esc" {
			l.editing = false
			l.editor.Blur()
			l.saveEditor()
			return l, nil
		}
		var cmd tea.Cmd
		l.editor, cmd = l.editor.Update(msg)
		return l, cmd
	}

	switch key {
	case "left", "h":
		l.saveEditor()
		l.sess.Navigate(-1)
		l.language = defaultLanguage(l.sess.Current())
		l.loadEditor()
		l.console = ""
	case "right", "l":
		l.saveEditor()
		l.sess.Navigate(1)
		l.language = defaultLanguage(l.sess.Current())
		l.loadEditor()
		l.console = ""
	case "e", "enter":
		l.editing = true
		return l, l.editor.Init()
	case "L":
		l.cycleLanguage()
	case "r", "R":
		l.saveEditor()
		return l, l.runSampleCmd()
	case "s", "S":
		l.confirming = true
	}
	return l, nil
}

func (l *LiveScreen) cycleLanguage() {
	p := l.sess.Current()
	if p == nil || len(p.StarterCode) < 2 {
		return
	}
	langs := make([]string, 0, len(p.StarterCode))
	for lang := range p.StarterCode {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for i, lang := range langs {
		if lang == l.language {
			l.language = langs[(i+1)%len(langs)]
			l.loadEditor()
			return
		}
	}
	l.language = langs[0]
	l.loadEditor()
}

// loadEditor seeds the editor with the recorded code for the current
// problem, falling back to starter code.
func (l *LiveScreen) loadEditor() {
	p := l.sess.Current()
	if p == nil {
		return
	}
	l.editor = components.NewCodeEditor(l.sess.Code(p.ID, l.language),
		editorWidth(l.width), editorHeight(l.height))
}

func (l *LiveScreen) saveEditor() {
	p := l.sess.Current()
	if p == nil {
		return
	}
	l.sess.RecordCode(p.ID, l.editor.Value())
}

func (l *LiveScreen) runSampleCmd() tea.Cmd {
	p := l.sess.Current()
	if p == nil {
		return nil
	}
	l.console = "running..."
	sess, svc, id, lang := l.sess, l.svc, p.ID, l.language
	epoch := l.sess.Epoch()

	return func() tea.Msg {
		result, err := sess.RunSample(context.Background(), svc, id, lang)
		return sampleResultMsg{epoch: epoch, result: result, err: err}
	}
}

func (l *LiveScreen) submitCmd() tea.Cmd {
	l.submitting = true
	sess, sink := l.sess, l.sink

	return func() tea.Msg {
		sub, err := sess.Submit(context.Background(), sink, time.Now())
		return submittedMsg{sub: sub, err: err}
	}
}

func (l *LiveScreen) View(width, height int) string {
	if l.done != nil {
		forced := ""
		if l.done.Forced {
			forced = "\n" + theme.Violation.Render("Submission was forced by integrity violations.")
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Title.Render("Submitted!")+"\n\n"+
				theme.Body.Render(fmt.Sprintf("Verdict: %s", l.done.Verdict))+forced+"\n\n"+
				theme.Hint.Render("Your code will be reviewed. Press Enter."))
	}
	if l.submitting {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Submitting..."))
	}
	if l.confirming {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Title.Render("Submit the contest?")+"\n\n"+
				theme.Hint.Render("all problems are submitted together  (y/n)"))
	}

	p := l.sess.Current()
	if p == nil {
		return ""
	}

	var b strings.Builder

	remaining := l.sess.Remaining(time.Now())
	hrs := int(remaining.Hours())
	mins := int(remaining.Minutes()) % 60
	secs := int(remaining.Seconds()) % 60

	c := l.sess.Contest()
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s — problem %d/%d", c.Title, l.sess.Index()+1, len(c.Problems)))
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s   %d:%02d:%02d", l.language, hrs, mins, secs))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine + "\n")

	if l.warning != "" {
		b.WriteString("  " + theme.Violation.Render(l.warning) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Title) + "\n")
	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Width(width - 4).
		Foreground(theme.TextDim).Render(p.Description) + "\n")
	for _, ex := range p.Examples {
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("in: %s  out: %s", ex.Input, ex.Output)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(l.editor.View()) + "\n")

	if l.console != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Render("console") + "\n")
		b.WriteString(lipgloss.NewStyle().Padding(0, 2).Foreground(theme.TextDim).Render(l.console) + "\n")
	}
	if l.errMsg != "" {
		b.WriteString("  " + theme.Incorrect.Render(l.errMsg) + "\n")
	}

	return b.String()
}

func editorWidth(total int) int {
	w := total - 8
	if w < 40 {
		w = 40
	}
	return w
}

func editorHeight(total int) int {
	h := total / 3
	if h < 6 {
		h = 6
	}
	return h
}

// contestTick returns a 1-second tick command.
func contestTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return contestTickMsg(t)
	})
}
