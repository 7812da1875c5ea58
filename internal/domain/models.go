package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// AllCategories is the pseudo category that matches every event
const AllCategories = "All"

// Event represents a single entry on the timeline
type Event struct {
	ID          string `json:"id" toml:"id" yaml:"id"`
	Year        int    `json:"year" toml:"year" yaml:"year"`
	Title       string `json:"title" toml:"title" yaml:"title"`
	Description string `json:"description" toml:"description" yaml:"description"`
	ImageURL    string `json:"imageURL" toml:"imageURL" yaml:"imageURL"`
	Category    string `json:"category" toml:"category" yaml:"category"`
	Location    string `json:"location" toml:"location" yaml:"location"`
	Cause       string `json:"cause" toml:"cause" yaml:"cause"`
}

// DisplayYear formats the year, using BCE for negative values
func (e *Event) DisplayYear() string {
	if e.Year < 0 {
		return fmt.Sprintf("%d BCE", -e.Year)
	}
	return fmt.Sprintf("%d", e.Year)
}

// Heading returns the "<year> – <title>" line used by the detail view
func (e *Event) Heading() string {
	return e.DisplayYear() + " – " + e.Title
}

// Slug derives a stable identifier from a title. Letters and digits of any
// script are kept; everything else collapses to a single dash. A title with
// no letters or digits yields "".
func Slug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// LoadProgress represents the current loading state of the event source
type LoadProgress struct {
	IsLoading bool
	Location  string
	Err       error
}
