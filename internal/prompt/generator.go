// Package prompt builds the generation prompts for escape room content.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/f3rmion/mindvault/internal/vault"
)

// System messages sent alongside the prompts.
const (
	StorySystem  = "You are creating an immersive escape room adventure."
	RiddleSystem = "You are creating unique, challenging riddles for each part of an escape room."
)

// Generator renders prompts from templates.
type Generator struct {
	story  *template.Template
	riddle *template.Template
	image  *template.Template
	style  Style
}

// Style configures the background image prompt.
type Style struct {
	Name   string // e.g., "immersive digital painting"
	Suffix string // Added to end of the image prompt
}

// DefaultStyle returns the backdrop style used by the game.
func DefaultStyle() Style {
	return Style{
		Name:   "immersive",
		Suffix: "rich details and light colors, suitable as a background for an escape room",
	}
}

// StoryData feeds the storyline template.
type StoryData struct {
	Theme       string
	Tone        string
	RiddleCount int
	Locations   []int
}

// RiddleData feeds the riddle template.
type RiddleData struct {
	Theme    string
	Tone     string
	Location string
	Previous []string
}

// ImageData feeds the backdrop template.
type ImageData struct {
	Theme string
	Tone  string
	Style Style
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// NewGenerator creates a prompt generator with the default templates.
func NewGenerator() *Generator {
	return &Generator{
		story:  template.Must(template.New("story").Parse(storyTemplate)),
		riddle: template.Must(template.New("riddle").Funcs(funcs).Parse(riddleTemplate)),
		image:  template.Must(template.New("image").Parse(imageTemplate)),
		style:  DefaultStyle(),
	}
}

// SetStyle updates the backdrop style.
func (g *Generator) SetStyle(style Style) {
	g.style = style
}

// Story renders the storyline prompt for n locations.
func (g *Generator) Story(theme vault.Theme, n int) (string, error) {
	locations := make([]int, n)
	for i := range locations {
		locations[i] = i + 1
	}
	return execute(g.story, StoryData{
		Theme:       theme.Title(),
		Tone:        Tone(theme),
		RiddleCount: n,
		Locations:   locations,
	})
}

// Riddle renders the riddle prompt for one location. Previous riddle texts
// are listed so the model steers away from repeats.
func (g *Generator) Riddle(theme vault.Theme, location string, previous []string) (string, error) {
	return execute(g.riddle, RiddleData{
		Theme:    theme.Title(),
		Tone:     Tone(theme),
		Location: location,
		Previous: previous,
	})
}

// Image renders the backdrop prompt.
func (g *Generator) Image(theme vault.Theme) (string, error) {
	return execute(g.image, ImageData{
		Theme: theme.Title(),
		Tone:  Tone(theme),
		Style: g.style,
	})
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Tone returns the narrative tone phrase for a theme.
func Tone(theme vault.Theme) string {
	switch theme {
	case vault.ThemeMysteryMansion:
		return "gothic suspense, creaking floors and hidden passages"
	case vault.ThemeAncientRuins:
		return "archaeological wonder, forgotten gods and crumbling stone"
	case vault.ThemeSpaceOdyssey:
		return "cosmic awe, failing starship systems and distant stars"
	case vault.ThemeEnchantedForest:
		return "whimsical magic, talking trees and glowing mushrooms"
	default:
		return "mystery and adventure"
	}
}

const storyTemplate = `Create a short, engaging escape room storyline related to the theme: {{ .Theme }}.
The mood is {{ .Tone }}.
The story should connect {{ .RiddleCount }} different locations or challenges, each with its own riddle.
Make the storyline cohesive but each location/challenge distinct.
Format your response as:
Main_Story: [brief overall story]
{{- range .Locations }}
Location_{{ . }}: [location name: challenge description]
{{- end }}`

const riddleTemplate = `Create a fun and engaging riddle for this escape room location: {{ .Location }}
The theme is: {{ .Theme }} ({{ .Tone }}).
The riddle should be tricky but solvable and MUST BE DIFFERENT from any previous riddles.
{{- if .Previous }}
Previous riddles generated (make this one different):
{{- range $i, $r := .Previous }}
Riddle {{ inc $i }}: {{ $r }}
{{- end }}
{{- end }}
Format your response as:
Riddle: [your riddle here]
Answer: [clear answer; separate acceptable alternatives with commas]
Hint: [specific, helpful hint]`

const imageTemplate = `Create an {{ .Style.Name }} {{ .Theme }} setting evoking {{ .Tone }}, with {{ .Style.Suffix }}.`
