//go:build !gui

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metcalfc/bcc/internal/book"
	"github.com/metcalfc/bcc/internal/reveal"
)

type tab int

const (
	tabPosition tab = iota
	tabCharacters
	tabLocations
	tabRecap
	numTabs
)

var tabNames = [numTabs]string{"Position", "Characters", "Locations", "Recap"}

// headerHeight is the title, progress and tab rows plus a blank line.
const headerHeight = 4

type keyMap struct {
	Advance  key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	PrevPart key.Binding
	Restart  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Advance:  key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "mark read")),
		Back:     key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "un-read")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "jump to scene")),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
		PrevPart: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "section start")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Back, k.NextTab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Advance, k.Back, k.PrevPart, k.Restart},
		{k.Up, k.Down, k.Select},
		{k.NextTab, k.PrevTab, k.Help, k.Quit},
	}
}

// styles are derived from the book's theme so each book looks like itself.
type styles struct {
	title     lipgloss.Style
	author    lipgloss.Style
	status    lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	section   lipgloss.Style
	locked    lipgloss.Style
	read      lipgloss.Style
	current   lipgloss.Style
	next      lipgloss.Style
	future    lipgloss.Style
	micro     lipgloss.Style
	name      lipgloss.Style
	meta      lipgloss.Style
	inScene   lipgloss.Style
	complete  lipgloss.Style
	accent    string
}

func themeColor(c, fallback string) lipgloss.Color {
	if c == "" {
		c = fallback
	}
	return lipgloss.Color(c)
}

func newStyles(t book.Theme) styles {
	accent := themeColor(t.Accent, "#B8860B")
	light := themeColor(t.AccentLight, "#F5E6C4")
	dim := themeColor(t.TextSecondary, "#888888")
	inactive := themeColor(t.TabInactive, "#666666")

	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(light).Background(themeColor(t.HeaderBg, "#1F2A44")).Padding(0, 1),
		author:    lipgloss.NewStyle().Italic(true).Foreground(dim),
		status:    lipgloss.NewStyle().Foreground(dim).Padding(0, 1),
		tab:       lipgloss.NewStyle().Foreground(inactive).Padding(0, 1),
		activeTab: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true).Padding(0, 1),
		section:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		locked:    lipgloss.NewStyle().Foreground(inactive),
		read:      lipgloss.NewStyle().Foreground(dim),
		current:   lipgloss.NewStyle().Bold(true).Foreground(light),
		next:      lipgloss.NewStyle().Foreground(accent),
		future:    lipgloss.NewStyle().Foreground(inactive),
		micro:     lipgloss.NewStyle().Foreground(dim).Italic(true),
		name:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		meta:      lipgloss.NewStyle().Foreground(dim),
		inScene:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		complete:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true),
		accent:    string(accent),
	}
}

type model struct {
	*companion
	keys     keyMap
	help     help.Model
	progress progress.Model
	viewport viewport.Model
	styles   styles
	tab      tab
	cursor   int
	quitting bool
	width    int
	height   int
}

func newModel(c *companion) model {
	st := newStyles(c.Book.Theme)
	m := model{
		companion: c,
		keys:      newKeyMap(),
		help:      help.New(),
		progress:  progress.New(progress.WithSolidFill(st.accent), progress.WithoutPercentage()),
		viewport:  viewport.New(80, 24-headerHeight-1),
		styles:    st,
		cursor:    c.Position,
		width:     80,
		height:    24,
	}
	m.resize()
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.save()
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Advance):
			if m.Advance() {
				m.cursor = m.Position
				m.save()
			}

		case key.Matches(msg, m.keys.Back):
			if m.Back() {
				m.cursor = m.Position
				m.save()
			}

		case key.Matches(msg, m.keys.PrevPart):
			m.PrevPart()
			m.cursor = m.Position
			m.save()

		case key.Matches(msg, m.keys.Restart):
			m.restart()
			m.cursor = 0

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % numTabs
			m.viewport.GotoTop()

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + numTabs - 1) % numTabs
			m.viewport.GotoTop()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()

		case m.tab == tabPosition && key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case m.tab == tabPosition && key.Matches(msg, m.keys.Down):
			// The scene after the current one is the last that may be chosen.
			if m.cursor < m.Position+1 && m.cursor < m.Len()-1 {
				m.cursor++
			}

		case m.tab == tabPosition && key.Matches(msg, m.keys.Select):
			if m.JumpTo(m.cursor) {
				m.save()
			}

		case len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] < '1'+rune(numTabs):
			m.tab = tab(msg.Runes[0] - '1')
			m.viewport.GotoTop()

		default:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}

	m.refresh()
	return m, cmd
}

// resize fits the progress bar, help and viewport to the window.
func (m *model) resize() {
	m.help.Width = m.width
	m.progress.Width = max(m.width-24, 10)
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-headerHeight-lipgloss.Height(m.help.View(m.keys)), 1)
}

// refresh renders the active panel into the viewport.
func (m *model) refresh() {
	snap := m.Snapshot()
	width := max(m.width-2, 20)

	switch m.tab {
	case tabPosition:
		content, line := renderScenes(snap.Scenes, m.cursor, m.styles, width)
		m.viewport.SetContent(content)
		if line < m.viewport.YOffset {
			m.viewport.SetYOffset(line)
		} else if line >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	case tabCharacters:
		m.viewport.SetContent(renderCards(snap.Characters, m.styles, width, "No characters yet."))
	case tabLocations:
		m.viewport.SetContent(renderCards(snap.Locations, m.styles, width, "No locations yet."))
	case tabRecap:
		m.viewport.SetContent(renderRecap(snap.Recap, m.styles, width))
	}
}

func (m model) View() string {
	if m.quitting {
		if m.AtEnd() {
			return m.styles.complete.Render(fmt.Sprintf("\n  Finished %s!\n", m.Book.Title))
		}
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.styles.title.Render(m.Book.Title))
	sb.WriteString(" ")
	sb.WriteString(m.styles.author.Render(m.Book.Author))
	if section := m.CurrentSection(); section != "" {
		sb.WriteString(m.styles.status.Render("· " + section))
	}
	sb.WriteString("\n")

	read, total := m.Progress()
	sb.WriteString(m.progress.ViewAs(m.Percent() / 100))
	sb.WriteString(m.styles.status.Render(fmt.Sprintf("Scene %d/%d · %.0f%%", read, total, m.Percent())))
	sb.WriteString("\n")

	sb.WriteString(renderTabs(m.tab, m.styles))
	sb.WriteString("\n\n")

	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func renderTabs(active tab, st styles) string {
	tabs := make([]string, numTabs)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == active {
			tabs[i] = st.activeTab.Render(label)
		} else {
			tabs[i] = st.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// indent prefixes every line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

func wrap(style lipgloss.Style, text string, width int) string {
	return style.Width(max(width, 10)).Render(text)
}

// renderScenes lists every scene with its state and returns the line the
// cursor is on.
func renderScenes(scenes []reveal.Scene, cursor int, st styles, width int) (string, int) {
	var lines []string
	cursorLine := 0

	for _, s := range scenes {
		if s.Section != "" {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			if s.SectionLocked {
				lines = append(lines, st.locked.Render("🔒 "+s.Section))
			} else {
				lines = append(lines, st.section.Render(s.Section))
			}
		}

		pointer := "  "
		if s.Index == cursor {
			pointer = "> "
			cursorLine = len(lines)
		}

		var line string
		switch s.State {
		case reveal.SceneRead:
			line = st.read.Render("✓ " + s.Title)
		case reveal.SceneCurrent:
			line = st.current.Render("▶ "+s.Title) + st.meta.Render("  (you are here)")
		case reveal.SceneNext:
			line = st.next.Render("○ " + s.Title)
		default:
			line = st.future.Render("· " + s.Title)
		}
		lines = append(lines, pointer+line)

		if s.Micro != "" && (s.State != reveal.SceneRead || s.Index == cursor) {
			lines = append(lines, indent(wrap(st.micro, s.Micro, width-6), 6))
		}
	}

	return strings.Join(lines, "\n"), cursorLine
}

func renderCards(cards []reveal.Card, st styles, width int, empty string) string {
	if len(cards) == 0 {
		return st.meta.Render(empty)
	}

	var blocks []string
	for _, c := range cards {
		name := st.name
		if c.Color != "" {
			name = name.Foreground(lipgloss.Color(c.Color))
		}

		head := name.Render(strings.TrimSpace(c.Icon + " " + c.Name))
		if c.Badge != "" {
			head += " " + st.meta.Render("["+c.Badge+"]")
		}
		if c.Category != "" {
			head += st.meta.Render(" · " + c.Category)
		}
		head += st.meta.Render(fmt.Sprintf("  ×%d", c.Count))
		if c.InScene {
			head += " " + st.inScene.Render("● in scene")
		}

		lines := []string{head}
		if c.Description != "" {
			lines = append(lines, indent(wrap(lipgloss.NewStyle(), c.Description, width-4), 4))
		}
		if c.LastSeen != "" && !c.InScene {
			lines = append(lines, indent(st.meta.Render("Last seen: "+c.LastSeen), 4))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderRecap(entries []reveal.RecapEntry, st styles, width int) string {
	if len(entries) == 0 {
		return st.meta.Render("Nothing read yet.")
	}

	var lines []string
	for _, e := range entries {
		if e.Section != "" {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, st.section.Render(e.Section))
		}
		title := st.read.Render("• " + e.Title)
		if e.Current {
			title = st.current.Render("▶ " + e.Title)
		}
		lines = append(lines, "  "+title)
		if e.Micro != "" {
			lines = append(lines, indent(wrap(st.micro, e.Micro, width-4), 4))
		}
	}
	return strings.Join(lines, "\n")
}

func runCompanion(c *companion) error {
	p := tea.NewProgram(newModel(c), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
