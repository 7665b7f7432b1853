// Package candidate holds the generated name candidate model and the coarse
// filter applied before any network work is spent on a candidate.
package candidate

import (
	"fmt"
	"strings"

	"namecheck/domain/verdict"
)

// Style classifies how a candidate name was constructed.
type Style string

const (
	StyleDescriptive Style = "descriptive"
	StyleSuggestive  Style = "suggestive"
	StyleCoined      Style = "coined"
	StyleBlend       Style = "blend"
	StyleMetaphor    Style = "metaphor"
)

// Candidate is one generated brand-name candidate. Owned by the pipeline for
// a single run and discarded after ranking.
type Candidate struct {
	Name      string `json:"name"`
	Style     Style  `json:"style"`
	Rationale string `json:"rationale"`
}

const (
	MinNameLength = 3
	MaxNameLength = 15
)

// forbiddenSubstrings are rejected outright: they make poor brand names and
// some trip platform profanity filters during handle probes.
var forbiddenSubstrings = []string{
	"sex", "porn", "nazi", "fuck", "shit",
	"admin", "login", "signup",
	"http", "www",
}

var validStyles = map[Style]bool{
	StyleDescriptive: true,
	StyleSuggestive:  true,
	StyleCoined:      true,
	StyleBlend:       true,
	StyleMetaphor:    true,
}

// Filter validates a candidate for further checking. Returns a reason string
// when the candidate is rejected; empty reason means it passed.
func Filter(c Candidate) (ok bool, reason string) {
	name := verdict.NormalizeName(c.Name)
	if len(name) < MinNameLength {
		return false, fmt.Sprintf("shorter than %d characters", MinNameLength)
	}
	if len(name) > MaxNameLength {
		return false, fmt.Sprintf("longer than %d characters", MaxNameLength)
	}
	for _, bad := range forbiddenSubstrings {
		if strings.Contains(name, bad) {
			return false, fmt.Sprintf("contains forbidden substring %q", bad)
		}
	}
	if !strings.ContainsAny(name, "aeiouy") {
		return false, "no vowel, unpronounceable"
	}
	return true, ""
}

// Normalize returns a copy of the candidate with its name normalized and an
// unrecognized style coerced to coined.
func Normalize(c Candidate) Candidate {
	c.Name = verdict.NormalizeName(c.Name)
	if !validStyles[c.Style] {
		c.Style = StyleCoined
	}
	return c
}
