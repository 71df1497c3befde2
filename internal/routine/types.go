package routine

import (
	"fmt"
	"strings"
)

// Category is the practice frequency of a routine.
type Category string

const (
	CategoryDaily        Category = "daily"
	CategoryOneDay       Category = "one_day"
	CategoryTwoThreeDays Category = "two_three_days"
	CategoryOneWeek      Category = "one_week"
)

// State is the completion state of a routine.
type State string

const (
	StateNotCompleted State = "not_completed"
	StateCompleted    State = "completed"
	StateInProgress   State = "in_progress"
)

// DefaultState is assigned when no state is given.
const DefaultState = StateNotCompleted

// GeneralTag is the tag used when no keyword group matches.
const GeneralTag = "general"

// Routine is a single practice item.
type Routine struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Tags     []string `json:"tags"`
	State    State    `json:"state"`
}

// Categories returns the valid categories in display order.
func Categories() []Category {
	return []Category{CategoryDaily, CategoryOneDay, CategoryTwoThreeDays, CategoryOneWeek}
}

// States returns the valid states in display order.
func States() []State {
	return []State{StateNotCompleted, StateCompleted, StateInProgress}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDaily, CategoryOneDay, CategoryTwoThreeDays, CategoryOneWeek:
		return true
	}
	return false
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case StateNotCompleted, StateCompleted, StateInProgress:
		return true
	}
	return false
}

// ParseCategory returns the category named by s. Matching is exact.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q, must be one of: %s", s, CategoryList())
	}
	return c, nil
}

// ParseState returns the state named by s. An empty string yields
// DefaultState. Matching is exact.
func ParseState(s string) (State, error) {
	if s == "" {
		return DefaultState, nil
	}
	st := State(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid state %q, must be one of: %s", s, StateList())
	}
	return st, nil
}

// CategoryList returns the categories joined for display.
func CategoryList() string {
	names := make([]string, 0, 4)
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// StateList returns the states joined for display.
func StateList() string {
	names := make([]string, 0, 3)
	for _, s := range States() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Check performs the field checks a routine must pass before it is stored.
// path prefixes the returned error location, e.g. "[3]".
func (r *Routine) Check(path string) *ValidationError {
	if strings.TrimSpace(r.Text) == "" {
		return &ValidationError{
			Path: path + ".text",
			Err:  fmt.Errorf("missing required field"),
		}
	}
	if !r.Category.Valid() {
		return &ValidationError{
			Path: path + ".category",
			Err:  fmt.Errorf("invalid category %q, must be one of: %s", r.Category, CategoryList()),
		}
	}
	if !r.State.Valid() {
		return &ValidationError{
			Path: path + ".state",
			Err:  fmt.Errorf("invalid state %q, must be one of: %s", r.State, StateList()),
		}
	}
	return nil
}

// HasTag reports whether the routine carries tag.
func (r *Routine) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
