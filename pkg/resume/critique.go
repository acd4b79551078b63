package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/pkg/llm"
	"github.com/artem13815/mockinterview/pkg/logger"
	"github.com/artem13815/mockinterview/pkg/nlp"
)

const (
	// MaxCritiqueChars bounds the resume text sent to the model.
	MaxCritiqueChars  = 12_000
	critiqueMaxTokens = 1024
	critiqueTemp      = 0.3
	maxRawLen         = 2000
)

const DefaultCritiquePrompt = "You are an applicant tracking system (ATS) expert and career coach. " +
	"You review resumes for keyword coverage, structure and readability, and you answer only with JSON."

var (
	ErrCompletion    = errors.New("completion service unavailable")
	ErrCritiqueParse = errors.New("could not parse resume critique")
)

// ParseError keeps the model output that could not be read as a critique.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", ErrCritiqueParse, e.Err)
	}
	return ErrCritiqueParse.Error()
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCritiqueParse, e.Err}
	}
	return []error{ErrCritiqueParse}
}

// Extraction is resume text ready to be used as interview context.
type Extraction struct {
	Text  string `json:"text"`
	Chars int    `json:"chars"`
}

type AnalyzeParams struct {
	Filename string
	Data     []byte
	// Role is the target position, optional.
	Role string
	// Keywords, when set, are matched against the resume text instead of trusting the model.
	Keywords []string
}

// Critique is the ATS-style review of one resume.
type Critique struct {
	AtsScore        int      `json:"atsScore"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	FormattingNotes []string `json:"formattingNotes"`
	Summary         string   `json:"summary"`
	Model           string   `json:"model"`
	Excerpted       bool     `json:"excerpted"`
}

// Service describes the resume use cases.
type Service interface {
	Extract(filename string, data []byte) (Extraction, error)
	Analyze(ctx context.Context, p AnalyzeParams) (Critique, error)
}

type service struct {
	llm       llm.ChatModel
	modelName string
	system    string
	log       *zap.Logger
}

// NewService creates the default implementation. An empty system prompt keeps the default.
func NewService(model llm.ChatModel, modelName, systemPrompt string, log *zap.Logger) Service {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultCritiquePrompt
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{llm: model, modelName: modelName, system: systemPrompt, log: log}
}

func (s *service) Extract(filename string, data []byte) (Extraction, error) {
	text, err := ParseResumeText(filename, data)
	if err != nil {
		return Extraction{}, err
	}
	return Extraction{Text: text, Chars: len([]rune(text))}, nil
}

func (s *service) Analyze(ctx context.Context, p AnalyzeParams) (Critique, error) {
	text, err := ParseResumeText(p.Filename, p.Data)
	if err != nil {
		return Critique{}, err
	}
	excerpted := false
	if r := []rune(text); len(r) > MaxCritiqueChars {
		text = string(r[:MaxCritiqueChars])
		excerpted = true
	}

	raw, err := s.llm.Complete(ctx, llm.Request{
		Operation:    "resume_critique",
		SystemPrompt: s.system,
		UserPrompt:   buildCritiquePrompt(text, p.Role, p.Keywords),
		MaxTokens:    critiqueMaxTokens,
		Temperature:  critiqueTemp,
	})
	if err != nil {
		return Critique{}, fmt.Errorf("%w: %w", ErrCompletion, err)
	}

	c, err := parseCritique(raw)
	if err != nil {
		s.log.Warn("resume critique unparsable", zap.Error(err), zap.String("raw", logger.Truncate(raw, 500)))
		return Critique{}, err
	}
	if len(p.Keywords) > 0 {
		c.MatchedKeywords, c.MissingKeywords = nlp.MatchKeywords(text, p.Keywords)
	}
	c.Model = s.modelName
	c.Excerpted = excerpted
	return c, nil
}

func buildCritiquePrompt(text, role string, keywords []string) string {
	var b strings.Builder
	b.WriteString("Review the resume between the markers as an ATS would.\n")
	if role = strings.TrimSpace(role); role != "" {
		fmt.Fprintf(&b, "Target role: %s.\n", role)
	}
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Required keywords: %s.\n", strings.Join(keywords, ", "))
	}
	fmt.Fprintf(&b, "<<<\n%s\n>>>\n", text)
	b.WriteString("Respond with a single JSON object and nothing else:\n" +
		`{"atsScore": <0-100>, "matchedKeywords": [..], "missingKeywords": [..], ` +
		`"formattingNotes": [..], "summary": "<two or three sentences>"}`)
	return b.String()
}

type critiqueWire struct {
	AtsScore        float64  `json:"atsScore"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	FormattingNotes []string `json:"formattingNotes"`
	Summary         string   `json:"summary"`
}

func parseCritique(raw string) (Critique, error) {
	block, ok := llm.JSONObjectBlock(raw)
	if !ok {
		return Critique{}, newParseError(raw, errors.New("no JSON object in response"))
	}
	var w critiqueWire
	if err := json.Unmarshal([]byte(block), &w); err != nil {
		return Critique{}, newParseError(raw, err)
	}
	return Critique{
		AtsScore:        clampScore(w.AtsScore),
		MatchedKeywords: nonNil(w.MatchedKeywords),
		MissingKeywords: nonNil(w.MissingKeywords),
		FormattingNotes: nonNil(w.FormattingNotes),
		Summary:         strings.TrimSpace(w.Summary),
	}, nil
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func newParseError(raw string, err error) *ParseError {
	if r := []rune(raw); len(r) > maxRawLen {
		raw = string(r[:maxRawLen])
	}
	return &ParseError{Raw: raw, Err: err}
}
