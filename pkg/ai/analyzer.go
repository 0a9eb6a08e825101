// Package ai adapts the Gemini generative-language backend for the journal.
// Every operation degrades to a fixed default on failure: the AI features
// are an enhancement, never a blocking dependency, and callers cannot tell
// a fallback from a genuine answer.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mood is the result of analyzing a journal entry's text.
type Mood struct {
	Vibe  string `json:"vibe"`
	Quote string `json:"quote"`
}

// Fallbacks, kept byte-for-byte from the app this service replaces.
var (
	moodDefaultEmpty = Mood{Vibe: "Peaceful", Quote: "The journey of a thousand miles begins with a single step."}
	moodFallback     = Mood{Vibe: "Reflective", Quote: "Keep moving forward."}

	fallbackVibe  = "Reflective"
	fallbackQuote = "Your mind is a garden, your thoughts are the seeds."

	weatherDefault  = "☁️"
	weatherFallback = "✨"
)

const maxLocationSuggestions = 5

// Generator is the slice of GeminiClient the analyzer needs; tests swap in
// a fake.
type Generator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	GenerateJSON(ctx context.Context, model, prompt string, schema *Schema) (string, error)
	GenerateWithImage(ctx context.Context, model, prompt, mimeType, base64Data string) (string, error)
}

// Analyzer exposes the journal's three analysis operations (plus the
// sticker studio's subject check) on top of a Generator. A nil Generator
// (no API key configured) makes every operation take its fallback path.
type Analyzer struct {
	gen   Generator
	model string
}

func NewAnalyzer(gen Generator, model string) *Analyzer {
	return &Analyzer{gen: gen, model: model}
}

// AnalyzeMood asks for a short vibe label and an inspirational quote for
// the entry text. Blank text returns the default pair without a request.
func (a *Analyzer) AnalyzeMood(ctx context.Context, text string) Mood {
	if strings.TrimSpace(text) == "" {
		return moodDefaultEmpty
	}
	if a.gen == nil {
		return moodFallback
	}

	prompt := fmt.Sprintf(`Analyze the mood of this journal entry and provide a short vibe (1-3 words) and an inspiring quote: %q`, text)
	schema := &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"vibe":  {Type: "STRING"},
			"quote": {Type: "STRING"},
		},
		Required: []string{"vibe", "quote"},
	}

	out, err := a.gen.GenerateJSON(ctx, a.model, prompt, schema)
	if err != nil {
		return moodFallback
	}

	var mood Mood
	if err := json.Unmarshal([]byte(out), &mood); err != nil {
		return moodFallback
	}
	if mood.Vibe == "" {
		mood.Vibe = fallbackVibe
	}
	if mood.Quote == "" {
		mood.Quote = fallbackQuote
	}
	return mood
}

// WeatherEmoji asks for a single emoji representing the weather at the
// named location.
func (a *Analyzer) WeatherEmoji(ctx context.Context, location string) string {
	if a.gen == nil {
		return weatherFallback
	}
	prompt := fmt.Sprintf(`Provide only one single emoji representing the typical or current weather for this location: %q. Return only the emoji.`, location)
	out, err := a.gen.GenerateText(ctx, a.model, prompt)
	if err != nil {
		return weatherFallback
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return weatherDefault
	}
	return out
}

// SuggestLocations returns up to five real-world place names relevant to
// the partial input. Inputs shorter than 2 characters return nothing
// without a request, so the first keystroke never produces a call.
func (a *Analyzer) SuggestLocations(ctx context.Context, input string) []string {
	if utf8.RuneCountInString(input) < 2 {
		return []string{}
	}
	if a.gen == nil {
		return []string{}
	}

	prompt := fmt.Sprintf(`Provide a JSON array of 5 real-world location names (City, Country) that start with or are highly relevant to: %q`, input)
	schema := &Schema{
		Type:  "ARRAY",
		Items: &Schema{Type: "STRING"},
	}

	out, err := a.gen.GenerateJSON(ctx, a.model, prompt, schema)
	if err != nil {
		return []string{}
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(out), &suggestions); err != nil {
		return []string{}
	}
	if len(suggestions) > maxLocationSuggestions {
		suggestions = suggestions[:maxLocationSuggestions]
	}
	return suggestions
}

// ExtractSubject reports whether the image has a clear subject suitable
// for the studio's lift style. Failures degrade to true so a flaky backend
// never blocks sticker creation.
func (a *Analyzer) ExtractSubject(ctx context.Context, imageDataURI string) bool {
	if a.gen == nil {
		return true
	}
	base64Data := imageDataURI
	if idx := strings.Index(base64Data, ","); idx != -1 {
		base64Data = base64Data[idx+1:]
	}

	out, err := a.gen.GenerateWithImage(ctx, a.model,
		"Identify the main subject of this image for background removal. Is there a clear object or person?",
		"image/jpeg", base64Data)
	if err != nil {
		return true
	}
	return out != ""
}
