package interview

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/artem13815/mockinterview/pkg/llm"
)

var scorePattern = regexp.MustCompile(`(?i)Score\s*\(out of 10\)\s*:\s*(\d+)`)

const maxScore = 10

// ExtractQuestions splits raw model text into trimmed, non-blank lines. Numbering
// prefixes stay part of the question text.
// The bundled providers already report blank content as llm.ErrEmptyCompletion
// (UpstreamUnavailable); ErrEmptyGeneration covers a ChatModel that passes
// whitespace-only text through.
func ExtractQuestions(raw string) ([]string, error) {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, newRawError(ErrEmptyGeneration, raw, nil)
	}
	return out, nil
}

// ExtractScore finds "Score (out of 10): N" and returns N clamped to [0,10].
// A missing pattern yields 0 and found=false; it never fails.
func ExtractScore(raw string) (score int, found bool) {
	m := scorePattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// digits only, so this is overflow
		return maxScore, true
	}
	if n > maxScore {
		n = maxScore
	}
	return n, true
}

// ExtractIdealAnswers parses the greedy [...] region of raw into ideal answers.
// Items without a question take the session question at the same position.
// A list whose every idealAnswer is blank is a parse failure.
func ExtractIdealAnswers(raw string, questions []string) ([]IdealAnswer, error) {
	block, ok := llm.JSONArrayBlock(raw)
	if !ok {
		return nil, newRawError(ErrParse, raw, nil)
	}
	var items []IdealAnswer
	if err := json.Unmarshal([]byte(block), &items); err != nil {
		return nil, newRawError(ErrParse, raw, err)
	}
	if len(items) == 0 {
		return nil, newRawError(ErrParse, raw, nil)
	}
	answered := false
	for _, it := range items {
		if strings.TrimSpace(it.IdealAnswer) != "" {
			answered = true
			break
		}
	}
	if !answered {
		return nil, newRawError(ErrParse, raw, errors.New("no item carries an idealAnswer"))
	}
	for i := range items {
		if strings.TrimSpace(items[i].Question) == "" && i < len(questions) {
			items[i].Question = questions[i]
		}
	}
	return items, nil
}
