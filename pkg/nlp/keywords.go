package nlp

import "strings"

// SplitKeywords parses a comma or newline separated keyword list, dropping blanks
// and duplicates (by normalized form) while keeping the caller's spelling.
func SplitKeywords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == ';' })
	out := []string{}
	seen := map[string]struct{}{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		key := NormalizeText(f)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

// MatchKeywords splits keywords into those present in text (under any alias) and
// those missing. Order follows keywords.
func MatchKeywords(text string, keywords []string) (matched, missing []string) {
	hay := NormalizeText(text)
	matched, missing = []string{}, []string{}
	for _, k := range keywords {
		found := false
		for _, v := range SkillVariants(k) {
			if ContainsPhrase(hay, v) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}
	return matched, missing
}
