// Package parser converts loosely formatted generated text into adventure
// data. Parsing never fails: missing or malformed fields fall back to the
// defaults in package vault.
package parser

import (
	"fmt"
	"strings"

	"github.com/f3rmion/mindvault/internal/vault"
)

// mainStoryHeaders are the accepted spellings of the storyline header.
var mainStoryHeaders = []string{"main_story:", "mainstory:", "main story:"}

// ParseStory splits storyline text into MainStory and Location_1..Location_n
// sections. Text before the first recognized header belongs to MainStory.
func ParseStory(raw string, n int) vault.StorySections {
	sections := vault.StorySections{vault.SectionMainStory: ""}
	current := vault.SectionMainStory

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		plain := strings.ReplaceAll(line, "*", "")

		// Location headers take priority over the storyline header
		if key, rest, ok := matchLocation(plain, n); ok {
			current = key
			sections[current] = rest
			continue
		}

		if rest, ok := matchMainStory(plain); ok {
			current = vault.SectionMainStory
			sections[current] = rest
			continue
		}

		sections[current] = appendText(sections[current], line)
	}

	return sections
}

// matchLocation finds a "Location_i:" token for i in 1..n and returns the
// section key with the text following the token.
func matchLocation(line string, n int) (string, string, bool) {
	for i := 1; i <= n; i++ {
		token := vault.LocationKey(i) + ":"
		if idx := strings.Index(line, token); idx >= 0 {
			return vault.LocationKey(i), cleanValue(line[idx+len(token):]), true
		}
	}
	return "", "", false
}

func matchMainStory(line string) (string, bool) {
	for _, header := range mainStoryHeaders {
		if idx := indexFold(line, header); idx >= 0 {
			return cleanValue(line[idx+len(header):]), true
		}
	}
	return "", false
}

// indexFold is strings.Index with ASCII case folding.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

// field identifies a labeled riddle field.
type field int

const (
	fieldNone field = iota
	fieldRiddle
	fieldAnswer
	fieldHint
)

// labels maps line prefixes to fields. "answers" precedes "answer" so the
// plural form is matched whole.
var labels = []struct {
	name  string
	field field
}{
	{"riddle", fieldRiddle},
	{"answers", fieldAnswer},
	{"answer", fieldAnswer},
	{"hint", fieldHint},
}

// ParseRiddle extracts the Riddle, Answer and Hint fields from generated
// text. A field's value continues over unlabeled lines until the next label.
// The returned record has no location; callers assign it.
func ParseRiddle(raw string) vault.RiddleRecord {
	values := map[field]string{}
	current := fieldNone

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if f, rest, ok := matchLabel(line); ok {
			current = f
			values[current] = rest
			continue
		}

		// Preamble before the first label is ignored
		if current == fieldNone {
			continue
		}
		values[current] = appendText(values[current], line)
	}

	record := vault.RiddleRecord{
		Riddle:  values[fieldRiddle],
		Answers: ParseAnswers(values[fieldAnswer]),
		Hint:    values[fieldHint],
	}
	if record.Riddle == "" {
		record.Riddle = vault.FallbackRiddle
	}
	if record.Hint == "" {
		record.Hint = vault.FallbackHint
	}
	return record
}

// matchLabel recognizes "Label:" at the start of a line, tolerating markdown
// decoration ("**Answer:** moon", "- Hint: ...") and a riddle number
// ("Riddle 2:").
func matchLabel(line string) (field, string, bool) {
	clean := strings.TrimLeft(line, "*#->_ \t")

	for _, l := range labels {
		if len(clean) < len(l.name) || !strings.EqualFold(clean[:len(l.name)], l.name) {
			continue
		}
		rest := strings.TrimLeft(clean[len(l.name):], "*_ \t0123456789")
		if !strings.HasPrefix(rest, ":") {
			continue
		}
		return l.field, cleanValue(rest[1:]), true
	}
	return fieldNone, "", false
}

// ParseAnswers splits a comma-separated answer field into trimmed, lowercased
// candidates. Empty candidates are dropped; if none remain the result is the
// fallback answer.
func ParseAnswers(s string) []string {
	var answers []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		answers = append(answers, part)
	}
	if len(answers) == 0 {
		return []string{vault.FallbackAnswer}
	}
	return answers
}

// Normalize prepares a submitted or accepted answer for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// cleanValue strips leftover markdown emphasis and whitespace from a header
// value.
func cleanValue(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_"))
}

func appendText(existing, line string) string {
	if existing == "" {
		return line
	}
	return fmt.Sprintf("%s %s", existing, line)
}
