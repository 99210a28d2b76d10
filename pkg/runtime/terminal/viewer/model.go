package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/services/session"
)

// reserved lines: tabs, blank, blank, status, help
const chromeHeight = 5

type rowsMsg struct {
	tab    int
	rows   []domain.Row
	status string
}

type changedMsg struct {
	tab int
}

// Tab is one view and the buffer its fetch failures land in. Tabs load
// concurrently, so each keeps its own.
type Tab struct {
	Provider resources.Provider
	Status   *StatusNotifier
}

// NewTabs builds one tab per view on top of the session.
func NewTabs(s *session.Session) []Tab {
	statuses := make(map[domain.View]*StatusNotifier)
	set := resources.NewSetPerView(s, func(view domain.View) resources.Notifier {
		n := &StatusNotifier{}
		statuses[view] = n
		return n
	})
	tabs := make([]Tab, 0, len(statuses))
	for _, p := range set.All() {
		tabs = append(tabs, Tab{Provider: p, Status: statuses[p.View()]})
	}
	return tabs
}

// Model browses the three resource views in tabs.
type Model struct {
	ctx     context.Context
	tabs    []Tab
	changes chan int

	keys  KeyMap
	theme Theme

	tab    int
	rows   [][]domain.Row
	loaded []bool
	cursor []int

	detail bool
	status string

	width  int
	height int
	ready  bool
}

// NewModel subscribes to every provider so a refresh, or a new client after
// reconfiguration, reloads that tab.
func NewModel(ctx context.Context, tabs []Tab) Model {
	for i := range tabs {
		if tabs[i].Status == nil {
			tabs[i].Status = &StatusNotifier{}
		}
	}
	m := Model{
		ctx:     ctx,
		tabs:    tabs,
		changes: make(chan int, len(tabs)),
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		rows:    make([][]domain.Row, len(tabs)),
		loaded:  make([]bool, len(tabs)),
		cursor:  make([]int, len(tabs)),
	}
	for i, t := range tabs {
		tab := i
		t.Provider.OnDidChange(func() {
			select {
			case m.changes <- tab:
			default:
			}
		})
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs)+1)
	for i := range m.tabs {
		cmds = append(cmds, m.load(i))
	}
	cmds = append(cmds, listenForChange(m.changes))
	return tea.Batch(cmds...)
}

func listenForChange(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		tab, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg{tab: tab}
	}
}

func (m Model) load(tab int) tea.Cmd {
	t := m.tabs[tab]
	ctx := m.ctx
	return func() tea.Msg {
		rows := t.Provider.Children(ctx, nil)
		return rowsMsg{tab: tab, rows: rows, status: t.Status.Take()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case rowsMsg:
		m.rows[msg.tab] = msg.rows
		m.loaded[msg.tab] = true
		if m.cursor[msg.tab] >= len(msg.rows) {
			m.cursor[msg.tab] = max(len(msg.rows)-1, 0)
		}
		if msg.status != "" {
			m.status = msg.status
		}
		return m, nil

	case changedMsg:
		return m, tea.Batch(m.load(msg.tab), listenForChange(m.changes))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.tab] < len(m.rows[m.tab])-1 {
			m.cursor[m.tab]++
		}
	case key.Matches(msg, m.keys.TabWorkloads):
		m.switchTab(0)
	case key.Matches(msg, m.keys.TabProjects):
		m.switchTab(1)
	case key.Matches(msg, m.keys.TabClusters):
		m.switchTab(2)
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab((m.tab + 1) % len(m.tabs))
	case key.Matches(msg, m.keys.Refresh):
		p := m.tabs[m.tab].Provider
		p.Refresh()
		m.status = fmt.Sprintf("%s refreshed", title(p.View()))
	case key.Matches(msg, m.keys.Select):
		m.selectRow()
	}
	return m, nil
}

func (m *Model) switchTab(tab int) {
	if tab < 0 || tab >= len(m.tabs) {
		return
	}
	m.tab = tab
	m.detail = false
}

func (m *Model) selectRow() {
	row, ok := m.current()
	if !ok {
		return
	}
	switch {
	case row.Command == domain.CommandConfigure:
		m.status = "Run `runai configure` to connect to Run:AI"
	case row.Workload != nil:
		m.detail = !m.detail
	}
}

func (m Model) current() (domain.Row, bool) {
	rows := m.rows[m.tab]
	if len(rows) == 0 {
		return domain.Row{}, false
	}
	return rows[m.cursor[m.tab]], true
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	tabs := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		label := fmt.Sprintf("%d:%s", i+1, title(t.Provider.View()))
		if i == m.tab {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.InactiveTab.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if !m.loaded[m.tab] {
		b.WriteString(m.theme.Faint.Render("Fetching..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderRows())
	}

	if m.detail {
		if row, ok := m.current(); ok && row.Workload != nil {
			b.WriteString(m.theme.Detail.Render(workloadDetail(*row.Workload)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Faint.Render(m.help()))
	return b.String()
}

func (m Model) renderRows() string {
	rows := m.rows[m.tab]
	cursor := m.cursor[m.tab]

	visible := m.height - chromeHeight
	if m.detail {
		visible -= 10
	}
	visible = max(visible, 1)

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		row := rows[i]
		marker := "  "
		label := row.Label
		if i == cursor {
			marker = "> "
			label = m.theme.Selected.Render(label)
		}
		b.WriteString(marker)
		b.WriteString(m.theme.icon(row.Icon.Color).Render(export.Glyph(row.Icon)))
		b.WriteString(" ")
		b.WriteString(label)
		if row.Description != "" {
			b.WriteString("  ")
			b.WriteString(m.theme.Faint.Render(row.Description))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) help() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func workloadDetail(w domain.Workload) string {
	lines := []string{
		w.Name,
		"Status:  " + w.Phase,
		"Type:    " + w.Type,
		"Project: " + w.ProjectName,
		"Created: " + dialog.FormatCreated(w.CreatedAt),
	}
	if r := w.AllocatedResources; r != nil && r.GPU > 0 {
		lines = append(lines, fmt.Sprintf("GPU:     %g", r.GPU))
	}
	return strings.Join(lines, "\n")
}

func title(view domain.View) string {
	switch view {
	case domain.ViewWorkloads:
		return "Workloads"
	case domain.ViewProjects:
		return "Projects"
	case domain.ViewClusters:
		return "Clusters"
	}
	return string(view)
}
