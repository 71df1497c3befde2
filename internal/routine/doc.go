// Package routine defines practice routines and the JSON file that stores them.
//
// The store file (practice_routines.json by default) is a plain array:
//
//	[
//	  {
//	    "text": "C major scale",
//	    "category": "daily",
//	    "tags": ["scales", "theory"],
//	    "state": "not_completed"
//	  }
//	]
//
// # Categories
//
//   - "daily": practiced every day
//   - "one_day": a single session
//   - "two_three_days": spread over a couple of days
//   - "one_week": spread over a week
//
// # States
//
//   - "not_completed": the default for new routines
//   - "in_progress"
//   - "completed"
//
// # Store semantics
//
// The whole file is read on Load and rewritten on Save. A missing file
// loads as an empty list. A file that is not valid JSON also loads as an
// empty list after a warning is logged; its content is left on disk but
// the next Save replaces it. There is no locking: one process owns the
// file for the duration of a command.
//
// # File Format
//
// When writing, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Field order text, category, tags, state
package routine
