package nlp

import "strings"

// aliases maps a normalized skill to its equivalent spellings.
var aliases = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd"},
	"cicd":       {"ci cd"},
}

// SkillVariants returns normalized variants for matching (synonyms/aliases).
// The first element is the normalized skill itself.
func SkillVariants(skill string) []string {
	base := NormalizeText(skill)
	if base == "" {
		return []string{}
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = NormalizeText(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(base)
	for _, a := range aliases[base] {
		add(a)
	}

	// multi-word skills: swap each token for its alias ("golang developer" -> "go developer")
	parts := strings.Split(base, " ")
	if len(parts) > 1 {
		for i, p := range parts {
			for _, a := range aliases[p] {
				swapped := append([]string(nil), parts...)
				swapped[i] = a
				add(strings.Join(swapped, " "))
			}
		}
	}
	return out
}
