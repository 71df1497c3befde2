// Package classify infers a category and tags for a line of practice text.
//
// Both functions are keyword heuristics: the text is lower-cased and each
// keyword is checked as a plain substring. There is no stemming and no
// word-boundary check, so "scaled" matches "scale".
package classify

import (
	"strings"

	"github.com/nibzard/practice-routines/internal/routine"
)

// categoryRule maps a keyword list to a category. Rules are checked in order
// and the first rule with a matching keyword wins.
type categoryRule struct {
	category routine.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{routine.CategoryDaily, []string{"daily", "everyday", "routine"}},
	{routine.CategoryOneWeek, []string{"week", "weekly"}},
	{routine.CategoryTwoThreeDays, []string{"couple", "few", "two", "three"}},
}

// fallbackCategory is returned when no rule matches.
const fallbackCategory = routine.CategoryOneDay

// TagGroup is a tag label and the keywords that attach it.
type TagGroup struct {
	Tag      string
	Keywords []string
}

var tagGroups = []TagGroup{
	{"scales", []string{"scale", "scales", "major", "minor", "pentatonic"}},
	{"chords", []string{"chord", "chords", "progression"}},
	{"technique", []string{"technique", "picking", "fingering", "fretting"}},
	{"ear training", []string{"ear", "listening", "hearing"}},
	{"theory", []string{"theory", "harmony", "interval"}},
	{"improv", []string{"improv", "improvise", "improvisation", "jam"}},
	{"rhythm", []string{"rhythm", "timing", "metronome"}},
	{"practice", []string{"practice", "exercise", "drill"}},
}

// TagGroups returns a copy of the tag table in evaluation order.
func TagGroups() []TagGroup {
	out := make([]TagGroup, len(tagGroups))
	for i, g := range tagGroups {
		out[i] = TagGroup{Tag: g.Tag, Keywords: append([]string(nil), g.Keywords...)}
	}
	return out
}

// Categorize returns the practice frequency suggested by text.
// The result is always one of the four categories.
func Categorize(text string) routine.Category {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return fallbackCategory
}

// ExtractTags returns every tag whose keywords appear in text, in table
// order. Groups are evaluated independently. If none match the result is
// exactly [general].
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, g := range tagGroups {
		if containsAny(lower, g.Keywords) {
			tags = append(tags, g.Tag)
		}
	}
	if len(tags) == 0 {
		return []string{routine.GeneralTag}
	}
	return tags
}

// Classify builds a new routine for text. Derived routines always start as
// not completed.
func Classify(text string) routine.Routine {
	return routine.Routine{
		Text:     text,
		Category: Categorize(text),
		Tags:     ExtractTags(text),
		State:    routine.StateNotCompleted,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
