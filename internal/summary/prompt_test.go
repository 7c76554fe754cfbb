package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetLanguage(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "en", want: "English"},
		{code: "EN", want: "English"},
		{code: "hi", want: "Hindi"},
		{code: "zh-Hans", want: "Chinese (Simplified)"},
		{code: "", want: "English"},
		{code: "Klingon", want: "Klingon"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetLanguage(tt.code))
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	prompt := systemPrompt("Hindi", 2000, 0.15)

	assert.Contains(t, prompt, "Write the MAIN SUMMARY in Hindi.")
	assert.Contains(t, prompt, "about 2000 words")
	assert.Contains(t, prompt, "±15%")
	assert.Contains(t, prompt, "exactly three substantial paragraphs")
	assert.Contains(t, prompt, "EXACTLY 3 similar books")
	assert.Contains(t, prompt, "summary, readers_takeaway, readers_treat, readers_suggestion")
}

func TestUserPrompt_TruncatesDescription(t *testing.T) {
	req := Request{
		Title:       "Sapiens",
		Description: strings.Repeat("a", 1300) + "OVERFLOW",
	}

	prompt := userPrompt(req)
	assert.Contains(t, prompt, "BOOK METADATA (JSON):")
	assert.Contains(t, prompt, "Return only JSON.")
	assert.NotContains(t, prompt, "OVERFLOW")
}
