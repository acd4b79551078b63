package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/pkg/llm"
	"github.com/artem13815/mockinterview/pkg/logger"
	"github.com/artem13815/mockinterview/pkg/metrics"
)

// Completion parameters per call.
const (
	questionsMaxTokens = 512
	scoreMaxTokens     = 256
	idealMaxTokens     = 1024
	temperature        = 0.7
)

// Question sources, used as the metrics label of started sessions.
const (
	SourceGenerated = "generated"
	SourceResume    = "resume"
	SourceSupplied  = "supplied"
)

// StartParams describes a new session. Blank fields take defaults.
type StartParams struct {
	Role          string
	Difficulty    string
	QuestionCount int
	ResumeContext string
	// SuppliedQuestions, when non-empty, is used verbatim and no model call is made.
	SuppliedQuestions []string
}

type StartResult struct {
	SessionID uuid.UUID `json:"interviewId"`
	Questions []string  `json:"questions"`
}

type AnswerParams struct {
	SessionID uuid.UUID
	Question  string
	Answer    string
	// QuestionIndex, when set, must name the next unanswered slot.
	QuestionIndex *int
}

type Feedback struct {
	Text  string `json:"feedback"`
	Score int    `json:"score"`
}

// UseCase is the interview session lifecycle.
type UseCase interface {
	Start(ctx context.Context, ownerID uuid.UUID, p StartParams) (StartResult, error)
	SubmitAnswer(ctx context.Context, ownerID uuid.UUID, p AnswerParams) (Feedback, error)
	Summary(ctx context.Context, ownerID, sessionID uuid.UUID) (Summary, error)
	IdealAnswers(ctx context.Context, ownerID, sessionID uuid.UUID) ([]IdealAnswer, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Overview, error)
}

type service struct {
	repo    Repository
	llm     llm.ChatModel
	prompts Prompts
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() uuid.UUID
}

type Option func(*service)

func WithLogger(l *zap.Logger) Option { return func(s *service) { s.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *service) { s.metrics = m } }

func WithPrompts(p Prompts) Option {
	return func(s *service) { s.prompts = p.Merge(DefaultPrompts()) }
}

func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

func NewService(repo Repository, model llm.ChatModel, opts ...Option) UseCase {
	s := &service{
		repo:    repo,
		llm:     model,
		prompts: DefaultPrompts(),
		log:     zap.NewNop(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.New,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Start(ctx context.Context, ownerID uuid.UUID, p StartParams) (StartResult, error) {
	role := strings.TrimSpace(p.Role)
	if role == "" {
		role = DefaultRole
	}
	difficulty := strings.TrimSpace(p.Difficulty)
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	var (
		questions []string
		source    string
	)
	if len(p.SuppliedQuestions) > 0 {
		questions = append([]string(nil), p.SuppliedQuestions...)
		source = SourceSupplied
	} else {
		// questionCount only shapes generation; a supplied list is kept as given.
		count := p.QuestionCount
		if count <= 0 {
			count = DefaultQuestionCount
		}
		if count > MaxQuestionCount {
			return StartResult{}, invalid(fmt.Sprintf("questionCount must be at most %d", MaxQuestionCount))
		}
		source = SourceGenerated
		if strings.TrimSpace(p.ResumeContext) != "" {
			source = SourceResume
		}
		raw, err := s.complete(ctx, llm.Request{
			Operation:    "questions",
			SystemPrompt: s.prompts.Interviewer,
			UserPrompt:   BuildQuestionPrompt(role, difficulty, count, p.ResumeContext),
			MaxTokens:    questionsMaxTokens,
			Temperature:  temperature,
		})
		if err != nil {
			return StartResult{}, err
		}
		questions, err = ExtractQuestions(raw)
		if err != nil {
			s.log.Warn("model returned no questions", zap.String("raw", logger.Truncate(raw, 500)))
			return StartResult{}, err
		}
	}

	sess := Session{
		ID:         s.newID(),
		OwnerID:    ownerID,
		Role:       role,
		Difficulty: difficulty,
		Questions:  questions,
		Answers:    []string{},
		Scores:     []int{},
		CreatedAt:  s.now(),
	}
	if err := s.repo.Insert(ctx, sess); err != nil {
		return StartResult{}, fmt.Errorf("save interview: %w", err)
	}
	s.metrics.SessionStarted(source)
	s.log.Info("interview started",
		zap.String("interviewId", sess.ID.String()),
		zap.String("ownerId", ownerID.String()),
		zap.String("source", source),
		zap.Int("questions", len(questions)))
	return StartResult{SessionID: sess.ID, Questions: questions}, nil
}

func (s *service) SubmitAnswer(ctx context.Context, ownerID uuid.UUID, p AnswerParams) (Feedback, error) {
	sess, err := s.repo.GetByIDAndOwner(ctx, p.SessionID, ownerID)
	if err != nil {
		return Feedback{}, err
	}
	if strings.TrimSpace(p.Answer) == "" {
		return Feedback{}, invalid("answer is required")
	}
	if sess.Complete() {
		return Feedback{}, invalid("interview already completed")
	}
	next := sess.NextIndex()
	if p.QuestionIndex != nil && *p.QuestionIndex != next {
		return Feedback{}, invalid(fmt.Sprintf("expected answer for question %d, got %d", next, *p.QuestionIndex))
	}
	question := p.Question
	if strings.TrimSpace(question) == "" {
		question = sess.Questions[next]
	}

	raw, err := s.complete(ctx, llm.Request{
		Operation:    "score",
		SystemPrompt: s.prompts.Coach,
		UserPrompt:   buildAnswerPrompt(question, p.Answer),
		MaxTokens:    scoreMaxTokens,
		Temperature:  temperature,
	})
	if err != nil {
		return Feedback{}, err
	}
	score, found := ExtractScore(raw)
	if !found {
		s.log.Warn("score pattern missing, defaulting to 0",
			zap.String("interviewId", sess.ID.String()),
			zap.String("raw", logger.Truncate(raw, 500)))
	}

	answers := append(append([]string(nil), sess.Answers...), p.Answer)
	scores := append(append([]int(nil), sess.Scores...), score)
	if err := s.repo.UpdateAnswersAndScores(ctx, sess.ID, len(sess.Answers), answers, scores); err != nil {
		return Feedback{}, err
	}
	s.metrics.AnswerScored()
	return Feedback{Text: raw, Score: score}, nil
}

func (s *service) Summary(ctx context.Context, ownerID, sessionID uuid.UUID) (Summary, error) {
	sess, err := s.repo.GetByIDAndOwner(ctx, sessionID, ownerID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(sess), nil
}

func (s *service) IdealAnswers(ctx context.Context, ownerID, sessionID uuid.UUID) ([]IdealAnswer, error) {
	sess, err := s.repo.GetByIDAndOwner(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if !sess.Complete() {
		return nil, ErrIncompleteSession
	}
	raw, err := s.complete(ctx, llm.Request{
		Operation:    "ideal_answers",
		SystemPrompt: s.prompts.Senior,
		UserPrompt:   buildIdealAnswersPrompt(sess.Role, sess.Difficulty, sess.Questions),
		MaxTokens:    idealMaxTokens,
		Temperature:  temperature,
	})
	if err != nil {
		return nil, err
	}
	out, err := ExtractIdealAnswers(raw, sess.Questions)
	if err != nil {
		s.log.Warn("failed to parse ideal answers",
			zap.String("interviewId", sess.ID.String()),
			zap.String("raw", logger.Truncate(raw, 500)))
		return nil, err
	}
	if len(out) != len(sess.Questions) {
		s.log.Warn("ideal answer count differs from question count",
			zap.String("interviewId", sess.ID.String()),
			zap.Int("answers", len(out)),
			zap.Int("questions", len(sess.Questions)))
	}
	return out, nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Overview, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// complete runs exactly one model call; every failure becomes ErrUpstreamUnavailable.
func (s *service) complete(ctx context.Context, req llm.Request) (string, error) {
	s.log.Debug("completion request",
		zap.String("operation", req.Operation),
		zap.Int("promptChars", len(req.UserPrompt)))
	raw, err := s.llm.Complete(ctx, req)
	if err != nil {
		s.log.Error("completion failed", zap.String("operation", req.Operation), zap.Error(err))
		return "", newRawError(ErrUpstreamUnavailable, err.Error(), err)
	}
	return raw, nil
}

// IsClientError reports whether err is a caller-side failure rather than a fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrIncompleteSession)
}
