package llm

import "strings"

// JSONArrayBlock returns the greedy region from the first '[' to the last ']'.
func JSONArrayBlock(raw string) (string, bool) {
	return block(raw, "[", "]")
}

// JSONObjectBlock returns the greedy region from the first '{' to the last '}'.
func JSONObjectBlock(raw string) (string, bool) {
	return block(raw, "{", "}")
}

func block(raw, open, close string) (string, bool) {
	i := strings.Index(raw, open)
	if i < 0 {
		return "", false
	}
	j := strings.LastIndex(raw, close)
	if j <= i {
		return "", false
	}
	return raw[i : j+1], true
}
