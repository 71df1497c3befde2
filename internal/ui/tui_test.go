package ui

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/practice-routines/internal/logging"
	"github.com/nibzard/practice-routines/internal/routine"
)

func testStore(t *testing.T, routines []routine.Routine) *routine.Store {
	t.Helper()
	store := routine.NewStore(filepath.Join(t.TempDir(), "routines.json"), logging.Discard())
	if routines != nil {
		if err := store.Save(routines); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	return store
}

func sampleRoutines() []routine.Routine {
	return []routine.Routine{
		{Text: "C major scale", Category: routine.CategoryDaily, Tags: []string{"scales"}, State: routine.StateNotCompleted},
		{Text: "Barre chord changes", Category: routine.CategoryDaily, Tags: []string{"chords"}, State: routine.StateInProgress},
		{Text: "Learn a new song", Category: routine.CategoryOneWeek, Tags: []string{"general"}, State: routine.StateCompleted},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRunTUIRequiresTTY(t *testing.T) {
	var out bytes.Buffer
	err := RunTUI(context.Background(), testStore(t, nil), WithOutput(&out))
	if err == nil || !strings.Contains(err.Error(), "TTY") {
		t.Fatalf("expected TTY error, got %v", err)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer should not be a TTY")
	}
}

func TestViewOverview(t *testing.T) {
	m := newTUIModel(testStore(t, sampleRoutines()), time.Second)
	m.Init()

	view := m.View()
	for _, want := range []string{
		"Practice Routines",
		"Total: 3  Daily: 2  One day: 0  2-3 days: 0  One week: 1",
		"Not completed: 1  In progress: 1  Completed: 1",
		"daily (2)",
		"  [ ] C major scale  #scales",
		"  [>] Barre chord changes  #chords",
		"one_week (1)",
		"  [x] Learn a new song  #general",
		"Refreshing every 1s",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewEmptyStore(t *testing.T) {
	m := newTUIModel(testStore(t, nil), time.Second)
	m.Init()

	if view := m.View(); !strings.Contains(view, "No routines yet") {
		t.Errorf("expected empty message, got:\n%s", view)
	}
}

func TestViewBeforeLoad(t *testing.T) {
	m := newTUIModel(testStore(t, nil), time.Second)
	if view := m.View(); !strings.Contains(view, "Loading...") {
		t.Errorf("expected loading message, got:\n%s", view)
	}
}

func TestViewLoadError(t *testing.T) {
	// A directory cannot be read as a file.
	store := routine.NewStore(t.TempDir(), logging.Discard())
	m := newTUIModel(store, time.Second)
	m.Init()

	if view := m.View(); !strings.Contains(view, "Error loading routine file") {
		t.Errorf("expected load error, got:\n%s", view)
	}
}

func TestCategoryFilter(t *testing.T) {
	m := newTUIModel(testStore(t, sampleRoutines()), time.Second)
	m.Init()

	m.Update(key("4"))
	if m.category != routine.CategoryOneWeek {
		t.Fatalf("category: got %q, want one_week", m.category)
	}
	view := m.View()
	if !strings.Contains(view, "Filter: category=one_week") {
		t.Errorf("missing filter indicator:\n%s", view)
	}
	if strings.Contains(view, "C major scale") {
		t.Errorf("daily routine shown under one_week filter:\n%s", view)
	}
	if !strings.Contains(view, "Learn a new song") {
		t.Errorf("one_week routine missing:\n%s", view)
	}

	m.Update(key("2"))
	if view := m.View(); !strings.Contains(view, "No routines match the current filter") {
		t.Errorf("expected no-match message:\n%s", view)
	}

	m.Update(key("0"))
	if m.category != "" || m.state != "" {
		t.Errorf("0 should clear filters, got %q/%q", m.category, m.state)
	}
}

func TestStateFilterCycles(t *testing.T) {
	m := newTUIModel(testStore(t, sampleRoutines()), time.Second)
	m.Init()

	want := []routine.State{routine.StateNotCompleted, routine.StateCompleted, routine.StateInProgress, ""}
	for i, w := range want {
		m.Update(key("s"))
		if m.state != w {
			t.Fatalf("press %d: state got %q, want %q", i+1, m.state, w)
		}
	}

	m.Update(key("s"))
	m.Update(key("s"))
	m.Update(key("s"))
	view := m.View()
	if !strings.Contains(view, "Barre chord changes") || strings.Contains(view, "C major scale") {
		t.Errorf("in_progress filter shows wrong routines:\n%s", view)
	}
}

func TestToggleTagsAndHelp(t *testing.T) {
	m := newTUIModel(testStore(t, sampleRoutines()), time.Second)
	m.Init()

	m.Update(key("t"))
	if strings.Contains(m.View(), "#scales") {
		t.Error("tags should be hidden after t")
	}

	m.Update(key("?"))
	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("expected help screen:\n%s", view)
	}
	if strings.Contains(view, "Overview") {
		t.Error("help screen should replace the overview")
	}
}

func TestRefreshPicksUpChanges(t *testing.T) {
	store := testStore(t, nil)
	m := newTUIModel(store, time.Second)
	m.Init()

	if err := store.Append(sampleRoutines()[0]); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(m.View(), "C major scale") {
		t.Fatal("view should not change before refresh")
	}

	m.Update(key("r"))
	if !strings.Contains(m.View(), "C major scale") {
		t.Error("refresh should reload the store")
	}

	if err := store.Append(sampleRoutines()[2]); err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !strings.Contains(m.View(), "Learn a new song") {
		t.Error("tick should reload the store")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		m := newTUIModel(testStore(t, nil), time.Second)
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestFormatRoutineTruncates(t *testing.T) {
	r := &routine.Routine{Text: strings.Repeat("é", 70), State: routine.StateNotCompleted}
	got := formatRoutine(r, true)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long text should be truncated: %q", got)
	}
	if n := len([]rune(got)); n != len("  [ ] ")+60 {
		t.Errorf("truncated line length: got %d runes", n)
	}
}
