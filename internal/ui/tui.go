// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/practice-routines/internal/routine"
)

// DefaultRefreshInterval is how often the viewer reloads the store.
const DefaultRefreshInterval = 2 * time.Second

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refresh time.Duration
	output  io.Writer
}

// WithRefreshInterval sets how often the store file is reloaded.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// WithOutput sets the terminal the viewer draws on. It must be a TTY.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// RunTUI starts the read-only routine viewer on store.
func RunTUI(ctx context.Context, store *routine.Store, opts ...TUIOption) error {
	c := &tuiConfig{
		refresh: DefaultRefreshInterval,
		output:  os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.output) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, c.refresh)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(c.output))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	store        *routine.Store
	loadErr      error
	routines     []routine.Routine
	tickInterval time.Duration
	category     routine.Category // Filter by category
	state        routine.State    // Filter by state
	showHelp     bool             // Show help screen
	showTags     bool             // Show tags next to each routine
}

type tuiData struct {
	total           int
	categoryCounts  map[routine.Category]int
	stateCounts     map[routine.State]int
	byCategory      map[routine.Category][]routine.Routine
	matchingFilters int
}

type tickMsg time.Time

func newTUIModel(store *routine.Store, interval time.Duration) *tuiModel {
	return &tuiModel{
		store:        store,
		tickInterval: interval,
		showTags:     true,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

// categoryKeys maps number keys to category filters.
var categoryKeys = map[string]routine.Category{
	"1": routine.CategoryDaily,
	"2": routine.CategoryOneDay,
	"3": routine.CategoryTwoThreeDays,
	"4": routine.CategoryOneWeek,
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "t":
			m.showTags = !m.showTags
			return m, nil
		case "s":
			m.state = nextState(m.state)
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "0":
			m.category = ""
			m.state = ""
			return m, nil
		}
		if category, ok := categoryKeys[key]; ok {
			m.category = category
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeFilter(&b, m.category, m.state)

	if m.loadErr != nil {
		b.WriteString("Error loading routine file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.routines == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	data := buildTUIData(m.routines, m.category, m.state)
	writeOverview(&b, data)
	writeRoutines(&b, data, m.showTags)
	writeStore(&b, m.store.Path)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	routines, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		m.routines = nil
		return
	}
	m.loadErr = nil
	m.routines = routines
}

// nextState cycles the state filter: off, then each state in order.
func nextState(current routine.State) routine.State {
	states := routine.States()
	if current == "" {
		return states[0]
	}
	for i, s := range states {
		if s == current && i+1 < len(states) {
			return states[i+1]
		}
	}
	return ""
}

// buildTUIData counts all routines and groups the ones matching the filters.
// Empty filters match everything.
func buildTUIData(routines []routine.Routine, category routine.Category, state routine.State) *tuiData {
	data := &tuiData{
		total:          len(routines),
		categoryCounts: make(map[routine.Category]int),
		stateCounts:    make(map[routine.State]int),
		byCategory:     make(map[routine.Category][]routine.Routine),
	}

	for _, r := range routines {
		data.categoryCounts[r.Category]++
		data.stateCounts[r.State]++
		if category != "" && r.Category != category {
			continue
		}
		if state != "" && r.State != state {
			continue
		}
		data.byCategory[r.Category] = append(data.byCategory[r.Category], r)
		data.matchingFilters++
	}
	return data
}

func writeTitle(b *strings.Builder) {
	title := "Practice Routines"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeFilter(b *strings.Builder, category routine.Category, state routine.State) {
	if category == "" && state == "" {
		return
	}
	var parts []string
	if category != "" {
		parts = append(parts, "category="+string(category))
	}
	if state != "" {
		parts = append(parts, "state="+string(state))
	}
	fmt.Fprintf(b, "Filter: %s (0 to clear)\n\n", strings.Join(parts, " "))
}

func writeOverview(b *strings.Builder, data *tuiData) {
	b.WriteString("Overview\n\n")
	fmt.Fprintf(b, "  Total: %d  Daily: %d  One day: %d  2-3 days: %d  One week: %d\n",
		data.total,
		data.categoryCounts[routine.CategoryDaily],
		data.categoryCounts[routine.CategoryOneDay],
		data.categoryCounts[routine.CategoryTwoThreeDays],
		data.categoryCounts[routine.CategoryOneWeek],
	)
	fmt.Fprintf(b, "  Not completed: %d  In progress: %d  Completed: %d\n\n",
		data.stateCounts[routine.StateNotCompleted],
		data.stateCounts[routine.StateInProgress],
		data.stateCounts[routine.StateCompleted],
	)
}

func writeRoutines(b *strings.Builder, data *tuiData, showTags bool) {
	if data.matchingFilters == 0 {
		if data.total == 0 {
			b.WriteString("  No routines yet. Add some with 'routines manual' or 'routines image'.\n\n")
		} else {
			b.WriteString("  No routines match the current filter.\n\n")
		}
		return
	}
	for _, category := range routine.Categories() {
		list := data.byCategory[category]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(b, "%s (%d)\n\n", category, len(list))
		for i := range list {
			b.WriteString(formatRoutine(&list[i], showTags))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func writeStore(b *strings.Builder, path string) {
	fmt.Fprintf(b, "Store: %s\n\n", path)
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload routine file\n")
	b.WriteString("  t            Toggle tags\n")
	b.WriteString("  s            Cycle state filter\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by daily\n")
	b.WriteString("  2            Filter by one_day\n")
	b.WriteString("  3            Filter by two_three_days\n")
	b.WriteString("  4            Filter by one_week\n")
	b.WriteString("  0            Clear filters\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}

// stateIcon marks a routine's progress in list views.
func stateIcon(s routine.State) string {
	switch s {
	case routine.StateInProgress:
		return ">"
	case routine.StateCompleted:
		return "x"
	}
	return " "
}

func formatRoutine(r *routine.Routine, showTags bool) string {
	text := r.Text
	if runes := []rune(text); len(runes) > 60 {
		text = string(runes[:57]) + "..."
	}
	line := fmt.Sprintf("  [%s] %s", stateIcon(r.State), text)
	if !showTags || len(r.Tags) == 0 {
		return line
	}
	return line + "  #" + strings.Join(r.Tags, " #")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
