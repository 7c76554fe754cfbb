package summary

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/moseskang00/book-summary-service/common/constants"
)

var languageNames = map[string]string{
	"en":      "English",
	"hi":      "Hindi",
	"es":      "Spanish",
	"fr":      "French",
	"de":      "German",
	"pt":      "Portuguese",
	"it":      "Italian",
	"ru":      "Russian",
	"ja":      "Japanese",
	"zh-Hans": "Chinese (Simplified)",
	"ar":      "Arabic",
}

// TargetLanguage resolves a language code to the display name used in the
// prompt and in the cache key. Unmapped values pass through as given.
func TargetLanguage(code string) string {
	if code == "" {
		return languageNames[constants.DefaultLanguage]
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// systemPrompt instructs the model on language, structure, length, and the
// exact JSON key set the normalizer expects.
func systemPrompt(language string, desiredWords int, tolerance float64) string {
	var sb strings.Builder
	sb.WriteString("You are TRL Summarizer for The Reader's Lawn®.\n")
	fmt.Fprintf(&sb,
		"Write the MAIN SUMMARY in %s. It must be exactly three substantial paragraphs separated by one blank line, "+
			"totaling about %d words (±%d%%). Avoid spoilers where possible.\n",
		language, desiredWords, int(math.Round(tolerance*100)))
	sb.WriteString("After the three paragraphs, also include:\n")
	sb.WriteString("1) Reader's Takeaway — 5–8 crisp bullets.\n")
	sb.WriteString("2) Reader's Treat — 4–5 lines introducing the author and mentioning a few of their important works.\n")
	sb.WriteString("3) Reader's Suggestion — EXACTLY 3 similar books (same topic/genre). Return only titles and optional author names; no reasons.\n")
	sb.WriteString("Return STRICT JSON with keys: summary, readers_takeaway, readers_treat, readers_suggestion.\n")
	sb.WriteString("Format readers_suggestion as an array of objects: [{\"title\": string, \"author\"?: string}].\n")
	sb.WriteString("Put ONLY the three paragraphs (separated by blank lines) inside the `summary` string.")
	return sb.String()
}

// userPrompt carries the book metadata. The description is truncated so a
// pathological catalog entry cannot blow up the token budget.
func userPrompt(req Request) string {
	payload := map[string]any{
		"title":              req.Title,
		"authors":            req.Authors,
		"publishedDate":      req.PublishedDate,
		"categories":         req.Categories,
		"descriptionSnippet": snippet(req.Description, constants.DescriptionSnippetLimit),
	}
	data, _ := json.MarshalIndent(payload, "", "  ")
	return "BOOK METADATA (JSON):\n" + string(data) + "\n\nReturn only JSON."
}

func snippet(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
