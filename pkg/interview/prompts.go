package interview

import (
	"fmt"
	"strings"
)

const (
	DefaultRole          = "Software Engineer"
	DefaultDifficulty    = "Beginner"
	DefaultQuestionCount = 3
	MaxQuestionCount     = 20
	// MaxResumeChars bounds the resume excerpt embedded into the question prompt.
	MaxResumeChars = 4000
)

// Prompts holds the system prompts of the completion calls. Zero fields fall back
// to the defaults.
type Prompts struct {
	Interviewer string `yaml:"interviewer"`
	Coach       string `yaml:"coach"`
	Senior      string `yaml:"senior"`
}

func DefaultPrompts() Prompts {
	return Prompts{
		Interviewer: "You are a professional interviewer.",
		Coach:       "You are an interview coach.",
		Senior:      "You are a senior interviewer.",
	}
}

// Merge fills empty fields of p from defaults.
func (p Prompts) Merge(defaults Prompts) Prompts {
	if strings.TrimSpace(p.Interviewer) == "" {
		p.Interviewer = defaults.Interviewer
	}
	if strings.TrimSpace(p.Coach) == "" {
		p.Coach = defaults.Coach
	}
	if strings.TrimSpace(p.Senior) == "" {
		p.Senior = defaults.Senior
	}
	return p
}

// BuildQuestionPrompt picks the generic or the resume-grounded question prompt.
// Resume context longer than MaxResumeChars is cut silently.
func BuildQuestionPrompt(role, difficulty string, questionCount int, resumeContext string) string {
	resumeContext = strings.TrimSpace(resumeContext)
	if resumeContext == "" {
		return fmt.Sprintf(
			"Ask exactly %d short and to the point %s-level interview questions for a %s.\n"+
				"Return only numbered questions.",
			questionCount, difficulty, role,
		)
	}
	if r := []rune(resumeContext); len(r) > MaxResumeChars {
		resumeContext = string(r[:MaxResumeChars])
	}
	return fmt.Sprintf(
		"Ask exactly %d short and to the point %s-level interview questions for a %s.\n"+
			"The candidate's resume is between the markers:\n<<<\n%s\n>>>\n"+
			"Ground at least half of the questions in specific projects, skills or experience from the resume.\n"+
			"If the resume is sparse or unrelated, ask generic questions relevant to the %s role instead.\n"+
			"Return only numbered questions.",
		questionCount, difficulty, role, resumeContext, role,
	)
}

func buildAnswerPrompt(question, answer string) string {
	return fmt.Sprintf(
		"Question: %s\nCandidate Answer: %s\n"+
			"Evaluate briefly and respond exactly like this:\n"+
			"Score (out of 10): <number>\n"+
			"Feedback: <one sentence>",
		question, answer,
	)
}

func buildIdealAnswersPrompt(role, difficulty string, questions []string) string {
	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return fmt.Sprintf(
		"For each interview question, generate an IDEAL (10/10) answer.\n"+
			"Answers should be clear, short, structured, and interview-ready.\n"+
			"Job Role: %s\nLevel: %s\n"+
			"Return the response STRICTLY in JSON like this:\n"+
			"[\n  { \"question\": \"Question text\", \"idealAnswer\": \"Perfect answer text\" }\n]\n"+
			"Questions:\n%s",
		role, difficulty, b.String(),
	)
}
