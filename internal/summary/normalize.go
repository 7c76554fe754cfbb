package summary

import "strings"

const maxSuggestions = 3

var keySeparators = strings.NewReplacer("-", "_", " ", "_")

// Normalize coerces the summarizer's loosely-typed JSON into a Result.
// The one hard gate is a non-empty summary: without it the whole payload is
// rejected and nil is returned. Every other field degrades to an empty
// value when missing or malformed.
//
// Field lookup is case and separator insensitive, because the model does
// not reliably honor exact key casing: "Readers-Takeaway", "readers
// takeaway", and "readers_takeaway" all resolve to the same field.
func Normalize(raw map[string]any) *Result {
	if raw == nil {
		return nil
	}
	fields := foldKeys(raw)

	res := &Result{
		ReadersTakeaway:   []string{},
		ReadersSuggestion: []Suggestion{},
	}

	if s, ok := fields["summary"].(string); ok {
		res.Summary = s
	}

	res.ReadersTakeaway = firstStringList(fields["readers_takeaway"], fields["reader_s_takeaway"])

	suggestions := fields["readers_suggestion"]
	if suggestions == nil {
		suggestions = fields["reader_s_suggestion"]
	}
	res.ReadersSuggestion = NormalizeSuggestions(suggestions)

	switch treat := fields["readers_treat"].(type) {
	case string:
		res.ReadersTreat = treat
	case []any:
		res.ReadersTreat = strings.Join(stringItems(treat), " ")
	}

	if res.Summary == "" {
		return nil
	}
	return res
}

// NormalizeSuggestions coerces a heterogeneous list into at most three
// unique title/author pairs, deduplicated case-insensitively by title in
// first-occurrence order. Malformed elements are skipped, never errored:
// suggestions are cosmetic, unlike the summary itself.
func NormalizeSuggestions(raw any) []Suggestion {
	list, ok := raw.([]any)
	if !ok {
		return []Suggestion{}
	}

	out := make([]Suggestion, 0, maxSuggestions)
	seen := make(map[string]struct{}, maxSuggestions)
	for _, item := range list {
		var s Suggestion
		switch v := item.(type) {
		case string:
			s.Title = strings.TrimSpace(v)
		case map[string]any:
			fields := foldKeys(v)
			s.Title = strings.TrimSpace(firstString(fields["title"], fields["book"], fields["name"]))
			s.Author = firstString(fields["author"])
			if s.Author == "" {
				if authors, ok := fields["authors"].([]any); ok && len(authors) > 0 {
					s.Author = firstString(authors[0])
				}
			}
		default:
			continue
		}
		if s.Title == "" {
			continue
		}
		key := strings.ToLower(s.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func foldKeys(raw map[string]any) map[string]any {
	folded := make(map[string]any, len(raw))
	for k, v := range raw {
		folded[keySeparators.Replace(strings.ToLower(k))] = v
	}
	return folded
}

// firstStringList returns the string elements of the first candidate that
// is a list. Non-string elements within that list are dropped.
func firstStringList(candidates ...any) []string {
	for _, v := range candidates {
		if list, ok := v.([]any); ok {
			return stringItems(list)
		}
	}
	return []string{}
}

func stringItems(list []any) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func firstString(values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
