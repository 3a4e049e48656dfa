// Command inspector is a terminal harness that drives a converter.SessionConverter
// directly against a local composer.Composer and engine.Engine, with no
// network layer in between. It exists to let a developer exercise every
// Session Converter operation interactively and watch the resulting
// Preedit/Candidates/Result projection update live.
//
// Keys:
//
//	letters/digits  - typed into the composer as romaji keystrokes
//	space           - Convert
//	tab             - Suggest
//	shift+tab       - Predict
//	enter           - commit (Commit, CommitSuggestion, or CommitPreedit)
//	backspace       - delete last keystroke, or Cancel an active conversion
//	esc             - Cancel an active conversion
//	left/right      - segment focus (during conversion)
//	up/down         - candidate focus
//	pgup/pgdown     - candidate page
//	1-9             - candidate shortcut, while a candidate window is shown
//	ctrl+w / ctrl+q - segment width expand / shrink
//	ctrl+t          - cycle through transliterations
//	ctrl+k          - switch kana type
//	ctrl+u          - convert to half width
//	ctrl+f          - commit first segment
//	ctrl+g          - commit head (1 character)
//	ctrl+v          - revert
//	ctrl+n          - reset
//	ctrl+r          - open reverse-conversion prompt
//	ctrl+c          - quit
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naoya-sato/henkan/pkg/composer"
	"github.com/naoya-sato/henkan/pkg/converter"
	"github.com/naoya-sato/henkan/pkg/engine"
	"github.com/naoya-sato/henkan/pkg/output"
	"github.com/naoya-sato/henkan/pkg/transliteration"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	preeditStyle   = lipgloss.NewStyle().Bold(true)
	highlightStyle = lipgloss.NewStyle().Underline(true).Bold(true)
	focusedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	shortcutStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	resultStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type uiState int

const (
	stateCompose uiState = iota
	stateReverseInput
)

type model struct {
	comp *composer.Composer
	conv *converter.SessionConverter

	state uiState
	log   []string
	err   error

	transliterationCursor int

	viewport viewport.Model
	reverse  textarea.Model

	width, height int
}

func initialModel(dict *engine.Dictionary) model {
	ta := textarea.New()
	ta.Placeholder = "surface text to reverse-convert"
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)

	conv := converter.New(engine.New(dict))
	prefs := converter.DefaultOperationPreferences()
	prefs.CandidateShortcuts = "123456789"
	conv.SetOperationPreferences(prefs)

	return model{
		comp:     composer.New(),
		conv:     conv,
		state:    stateCompose,
		viewport: vp,
		reverse:  ta,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 6
		if m.viewport.Height < 0 {
			m.viewport.Height = 0
		}
		m.reverse.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.state == stateReverseInput {
			return m.updateReverseInput(msg)
		}
		return m.updateCompose(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) updateReverseInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = stateCompose
		m.reverse.SetValue("")
		return m, nil
	case tea.KeyEnter:
		source := strings.TrimSpace(m.reverse.Value())
		m.reverse.SetValue("")
		m.state = stateCompose
		if source == "" {
			return m, nil
		}
		if !m.conv.ConvertReverse(source, m.comp) {
			m.err = fmt.Errorf("convert reverse: rejected for %q", source)
		} else {
			m.err = nil
			m.pushLog(fmt.Sprintf("reverse-converted %q", source))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.reverse, cmd = m.reverse.Update(msg)
	return m, cmd
}

func (m model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	out := m.conv.FillOutput()
	candidatesVisible := out.Candidates != nil

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.conv.IsActive() {
			m.conv.Cancel()
		}
		return m, nil
	case tea.KeyEnter:
		m.commitCurrent(out)
		return m, nil
	case tea.KeyBackspace:
		if m.conv.IsActive() {
			m.conv.Cancel()
			return m, nil
		}
		if n := m.comp.GetLength(); n > 0 {
			m.comp.DeleteAt(n - 1)
		}
		return m, nil
	case tea.KeySpace:
		if !m.conv.Convert(m.comp) {
			m.err = fmt.Errorf("convert: rejected")
		} else {
			m.err = nil
		}
		return m, nil
	case tea.KeyTab:
		if !m.conv.Suggest(m.comp) {
			m.err = fmt.Errorf("suggest: rejected")
		} else {
			m.err = nil
		}
		return m, nil
	case tea.KeyShiftTab:
		if !m.conv.Predict(m.comp) {
			m.err = fmt.Errorf("predict: rejected")
		} else {
			m.err = nil
		}
		return m, nil
	case tea.KeyLeft:
		if m.conv.CheckState(converter.StatePrediction | converter.StateConversion) {
			m.conv.SegmentFocusLeft()
		} else {
			m.conv.CandidatePrev()
		}
		return m, nil
	case tea.KeyRight:
		if m.conv.CheckState(converter.StatePrediction | converter.StateConversion) {
			m.conv.SegmentFocusRight()
		} else {
			m.conv.CandidateNext(m.comp)
		}
		return m, nil
	case tea.KeyUp:
		m.conv.CandidatePrev()
		return m, nil
	case tea.KeyDown:
		m.conv.CandidateNext(m.comp)
		return m, nil
	case tea.KeyPgUp:
		m.conv.CandidatePrevPage()
		return m, nil
	case tea.KeyPgDown:
		m.conv.CandidateNextPage()
		return m, nil
	case tea.KeyRunes:
		r := msg.Runes[0]
		if candidatesVisible && r >= '1' && r <= '9' {
			if !m.conv.CandidateMoveToShortcut(r) {
				m.err = fmt.Errorf("no candidate bound to shortcut %q", r)
			}
			return m, nil
		}
		m.comp.InsertCharacterPreedit(string(msg.Runes))
		return m, nil
	}

	switch msg.String() {
	case "ctrl+w":
		m.conv.SegmentWidthExpand()
	case "ctrl+q":
		m.conv.SegmentWidthShrink()
	case "ctrl+t":
		m.transliterationCursor = (m.transliterationCursor + 1) % len(transliteration.Types)
		m.conv.ConvertToTransliteration(m.comp, transliteration.Types[m.transliterationCursor])
	case "ctrl+k":
		m.conv.SwitchKanaType(m.comp)
	case "ctrl+u":
		m.conv.ConvertToHalfWidth(m.comp)
	case "ctrl+f":
		m.conv.CommitFirstSegment(m.comp)
	case "ctrl+g":
		m.conv.CommitHead(1, m.comp)
	case "ctrl+v":
		m.conv.Revert()
	case "ctrl+n":
		m.conv.Reset()
		m.comp.Reset()
		m.err = nil
	case "ctrl+r":
		m.state = stateReverseInput
	}
	return m, nil
}

func (m *model) commitCurrent(out *output.Output) {
	var ok bool
	switch {
	case m.conv.CheckState(converter.StateSuggestion):
		idx := 0
		if out.Candidates != nil {
			idx = out.Candidates.FocusedIndex
		}
		ok = m.conv.CommitSuggestion(idx)
	case m.conv.CheckState(converter.StatePrediction | converter.StateConversion):
		ok = m.conv.Commit()
	case !m.comp.Empty():
		ok = m.conv.CommitPreedit(m.comp)
	default:
		return
	}
	if !ok {
		m.err = fmt.Errorf("commit: rejected")
		return
	}
	m.err = nil
	result := m.conv.FillOutput().Result
	if result != nil {
		m.pushLog(result.Value)
	}
}

func (m *model) pushLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > 200 {
		m.log = m.log[len(m.log)-200:]
	}
}

func (m model) View() string {
	out := m.conv.FillOutput()

	header := titleStyle.Render("henkan inspector")
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(renderPreedit(out))
	b.WriteString("\n")
	b.WriteString(renderCandidates(out))
	b.WriteString("\n")

	if len(m.log) > 0 {
		b.WriteString("committed: ")
		b.WriteString(resultStyle.Render(strings.Join(m.log[max(0, len(m.log)-5):], " | ")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.state == stateReverseInput {
		b.WriteString("\nreverse-convert source (enter to run, esc to cancel):\n")
		b.WriteString(m.reverse.View())
	} else {
		b.WriteString(footerStyle.Render(
			"space:convert tab:suggest shift+tab:predict enter:commit esc/bksp:cancel ctrl+r:reverse ctrl+n:reset ctrl+c:quit"))
	}

	return b.String()
}

func renderPreedit(out *output.Output) string {
	if out.Preedit == nil || len(out.Preedit.Segments) == 0 {
		return preeditStyle.Render("(empty)")
	}
	var parts []string
	for _, seg := range out.Preedit.Segments {
		v := seg.Value
		if seg.Highlight {
			v = highlightStyle.Render(v)
		}
		parts = append(parts, v)
	}
	return preeditStyle.Render(strings.Join(parts, ""))
}

func renderCandidates(out *output.Output) string {
	c := out.Candidates
	if c == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s page %d]\n", categoryName(c.Category), c.PageIndex+1)
	for i, e := range c.Entries {
		shortcut := " "
		if i < len(c.Shortcuts) {
			shortcut = string(c.Shortcuts[i])
		}
		line := fmt.Sprintf("%s %s", shortcutStyle.Render(shortcut), e.Value)
		if i == c.FocusedIndex {
			line = focusedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if c.Footer != "" {
		b.WriteString(footerStyle.Render(c.Footer))
		b.WriteString("\n")
	}
	if c.Transliteration != nil {
		b.WriteString(footerStyle.Render("(transliteration sub-window open)"))
		b.WriteString("\n")
	}
	return b.String()
}

func categoryName(c output.Category) string {
	switch c {
	case output.CategoryConversion:
		return "conversion"
	case output.CategoryPrediction:
		return "prediction"
	case output.CategorySuggestion:
		return "suggestion"
	case output.CategoryUsage:
		return "usage"
	case output.CategoryTransliteration:
		return "transliteration"
	default:
		return "?"
	}
}

func main() {
	dict, err := engine.LoadDictionary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspector: failed to load dictionary: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(dict), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "inspector: %v\n", err)
		os.Exit(1)
	}
}
