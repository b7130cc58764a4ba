package nlp

import "strings"

// MatchSkills returns the vocabulary entries found in text.
//
// Matching is a case-insensitive substring test with no word boundaries, so a
// short term such as "Go" also matches inside "Google". Results keep the
// vocabulary's casing and first-seen order, each entry at most once.
func MatchSkills(text string, vocabulary []string) []string {
	out := make([]string, 0)
	if text == "" || len(vocabulary) == 0 {
		return out
	}

	hay := strings.ToLower(text)
	seen := make(map[string]struct{}, len(vocabulary))
	for _, term := range vocabulary {
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		if strings.Contains(hay, strings.ToLower(term)) {
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}
