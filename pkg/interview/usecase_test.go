package interview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	alice = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	fixed = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

func newTestService(repo Repository, model *scriptedModel) UseCase {
	return NewService(repo, model, WithClock(func() time.Time { return fixed }))
}

func startWith(t *testing.T, svc UseCase, owner uuid.UUID, questions ...string) uuid.UUID {
	t.Helper()
	res, err := svc.Start(context.Background(), owner, StartParams{SuppliedQuestions: questions})
	require.NoError(t, err)
	return res.SessionID
}

func intPtr(i int) *int { return &i }

func TestStartGeneratesQuestionsWithDefaults(t *testing.T) {
	repo := newMemRepo()
	model := (&scriptedModel{}).push("1. What is Go?\n\n2. What is a goroutine?\n3. What is a channel?", nil)
	svc := newTestService(repo, model)

	res, err := svc.Start(context.Background(), alice, StartParams{Role: "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"1. What is Go?", "2. What is a goroutine?", "3. What is a channel?"}, res.Questions)

	require.Equal(t, 1, model.calls())
	req := model.requests[0]
	assert.Equal(t, "questions", req.Operation)
	assert.Equal(t, 512, req.MaxTokens)
	assert.Contains(t, req.UserPrompt, "exactly 3")
	assert.Contains(t, req.UserPrompt, DefaultDifficulty)
	assert.Contains(t, req.UserPrompt, DefaultRole)

	stored, err := repo.GetByID(context.Background(), res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, alice, stored.OwnerID)
	assert.Equal(t, DefaultRole, stored.Role)
	assert.Equal(t, res.Questions, stored.Questions)
	assert.Empty(t, stored.Answers)
	assert.Empty(t, stored.Scores)
	assert.Equal(t, fixed, stored.CreatedAt)
}

func TestStartUsesResumePrompt(t *testing.T) {
	model := (&scriptedModel{}).push("1. Tell me about Kafka at Acme", nil)
	svc := newTestService(newMemRepo(), model)

	_, err := svc.Start(context.Background(), alice, StartParams{Role: "Data Engineer", QuestionCount: 1, ResumeContext: "Kafka at Acme"})
	require.NoError(t, err)
	assert.Contains(t, model.requests[0].UserPrompt, "Kafka at Acme")
}

func TestStartWithSuppliedQuestionsSkipsModel(t *testing.T) {
	repo := newMemRepo()
	model := &scriptedModel{}
	svc := newTestService(repo, model)

	supplied := []string{"1. Same question?", "  2. Kept verbatim  "}
	res, err := svc.Start(context.Background(), alice, StartParams{SuppliedQuestions: supplied, QuestionCount: 7})
	require.NoError(t, err)
	assert.Equal(t, 0, model.calls())
	assert.Equal(t, supplied, res.Questions)

	stored, err := repo.GetByID(context.Background(), res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, supplied, stored.Questions)
}

func TestStartSuppliedQuestionsIgnoreQuestionCount(t *testing.T) {
	repo := newMemRepo()
	model := &scriptedModel{}
	svc := newTestService(repo, model)

	res, err := svc.Start(context.Background(), alice, StartParams{QuestionCount: MaxQuestionCount + 5, SuppliedQuestions: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, 0, model.calls())

	stored, err := repo.GetByID(context.Background(), res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, stored.Questions)
}

func TestStartFailures(t *testing.T) {
	t.Run("upstream error", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo, (&scriptedModel{}).push("", errors.New("connection refused")))
		_, err := svc.Start(context.Background(), alice, StartParams{})
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		assert.Empty(t, repo.sessions)
	})
	t.Run("blank generation", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo, (&scriptedModel{}).push("\n  \n", nil))
		_, err := svc.Start(context.Background(), alice, StartParams{})
		assert.ErrorIs(t, err, ErrEmptyGeneration)
		assert.Empty(t, repo.sessions)
	})
	t.Run("too many questions", func(t *testing.T) {
		model := &scriptedModel{}
		svc := newTestService(newMemRepo(), model)
		_, err := svc.Start(context.Background(), alice, StartParams{QuestionCount: MaxQuestionCount + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, 0, model.calls())
	})
}

func TestSubmitAnswerAppendsScore(t *testing.T) {
	repo := newMemRepo()
	model := (&scriptedModel{}).push("Score (out of 10): 7\nFeedback: good", nil)
	svc := newTestService(repo, model)
	id := startWith(t, svc, alice, "Q1", "Q2")

	fb, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Question: "Q1", Answer: "A1", QuestionIndex: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 7, fb.Score)
	assert.Equal(t, "Score (out of 10): 7\nFeedback: good", fb.Text)
	assert.Contains(t, model.requests[0].UserPrompt, "Question: Q1")
	assert.Contains(t, model.requests[0].UserPrompt, "Candidate Answer: A1")

	stored, _ := repo.GetByID(context.Background(), id)
	assert.Equal(t, []string{"A1"}, stored.Answers)
	assert.Equal(t, []int{7}, stored.Scores)
}

func TestSubmitAnswerMissingScoreDefaultsToZero(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, (&scriptedModel{}).push("Nice try, keep practicing.", nil))
	id := startWith(t, svc, alice, "Q1")

	fb, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A1"})
	require.NoError(t, err)
	assert.Equal(t, 0, fb.Score)
	assert.Equal(t, "Nice try, keep practicing.", fb.Text)
}

func TestSubmitAnswerUsesStoredQuestionWhenBlank(t *testing.T) {
	model := (&scriptedModel{}).push("Score (out of 10): 5", nil)
	svc := newTestService(newMemRepo(), model)
	id := startWith(t, svc, alice, "What is a mutex?")

	_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A lock"})
	require.NoError(t, err)
	assert.Contains(t, model.requests[0].UserPrompt, "Question: What is a mutex?")
}

func TestSubmitAnswerRejections(t *testing.T) {
	tests := []struct {
		name  string
		owner uuid.UUID
		p     func(id uuid.UUID) AnswerParams
		want  error
	}{
		{
			name:  "other owner",
			owner: bob,
			p:     func(id uuid.UUID) AnswerParams { return AnswerParams{SessionID: id, Answer: "A"} },
			want:  ErrNotFound,
		},
		{
			name:  "missing session",
			owner: alice,
			p:     func(uuid.UUID) AnswerParams { return AnswerParams{SessionID: uuid.New(), Answer: "A"} },
			want:  ErrNotFound,
		},
		{
			name:  "blank answer",
			owner: alice,
			p:     func(id uuid.UUID) AnswerParams { return AnswerParams{SessionID: id, Answer: " \n\t "} },
			want:  ErrInvalidInput,
		},
		{
			name:  "wrong slot",
			owner: alice,
			p: func(id uuid.UUID) AnswerParams {
				return AnswerParams{SessionID: id, Answer: "A", QuestionIndex: intPtr(1)}
			},
			want: ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			model := &scriptedModel{}
			svc := newTestService(repo, model)
			id := startWith(t, svc, alice, "Q1", "Q2")

			_, err := svc.SubmitAnswer(context.Background(), tt.owner, tt.p(id))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, model.calls())
			stored, _ := repo.GetByID(context.Background(), id)
			assert.Empty(t, stored.Answers)
		})
	}
}

func TestSubmitAnswerUpstreamFailureLeavesSessionUntouched(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, (&scriptedModel{}).push("", errors.New("503")))
	id := startWith(t, svc, alice, "Q1")
	writes := repo.writes

	_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, writes, repo.writes)
}

func TestSubmitAnswerRejectsCompletedSession(t *testing.T) {
	repo := newMemRepo()
	model := (&scriptedModel{}).push("Score (out of 10): 6", nil)
	svc := newTestService(repo, model)
	id := startWith(t, svc, alice, "Q1")

	_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A1"})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A2"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, model.calls())

	stored, _ := repo.GetByID(context.Background(), id)
	assert.Len(t, stored.Answers, 1)
	assert.Len(t, stored.Scores, 1)
}

func TestConcurrentSubmitsNeverBreakInvariant(t *testing.T) {
	repo := newMemRepo()
	model := &scriptedModel{}
	for i := 0; i < 8; i++ {
		model.push("Score (out of 10): 8", nil)
	}
	svc := newTestService(repo, model)
	id := startWith(t, svc, alice, "Q1", "Q2", "Q3")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A"})
			if err != nil {
				assert.True(t, errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidInput), err.Error())
			}
		}()
	}
	wg.Wait()

	stored, _ := repo.GetByID(context.Background(), id)
	assert.Equal(t, len(stored.Answers), len(stored.Scores))
	assert.LessOrEqual(t, len(stored.Answers), len(stored.Questions))
}

func TestSummaryIsReadOnlyAndOwnerScoped(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, (&scriptedModel{}).push("Score (out of 10): 7", nil).push("Score (out of 10): 8", nil))
	id := startWith(t, svc, alice, "Q1", "Q2", "Q3")
	for _, a := range []string{"A1", "A2"} {
		_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: a})
		require.NoError(t, err)
	}
	writes := repo.writes

	first, err := svc.Summary(context.Background(), alice, id)
	require.NoError(t, err)
	second, err := svc.Summary(context.Background(), alice, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, writes, repo.writes)

	assert.Equal(t, Summary{
		Role:           DefaultRole,
		TotalQuestions: 3,
		AverageScore:   7.5,
		Scores:         []int{7, 8},
		Verdict:        VerdictStrong,
	}, first)

	_, err = svc.Summary(context.Background(), bob, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIdealAnswersCompletenessGate(t *testing.T) {
	repo := newMemRepo()
	model := (&scriptedModel{}).
		push("Score (out of 10): 5", nil).
		push("Score (out of 10): 6", nil).
		push("Score (out of 10): 7", nil).
		push(`[{"question":"Q1","idealAnswer":"I1"},{"question":"Q2","idealAnswer":"I2"},{"question":"Q3","idealAnswer":"I3"}]`, nil).
		push(`[{"question":"Q1","idealAnswer":"I1"},{"question":"Q2","idealAnswer":"I2"},{"question":"Q3","idealAnswer":"I3"}]`, nil)
	svc := newTestService(repo, model)
	id := startWith(t, svc, alice, "Q1", "Q2", "Q3")

	for _, a := range []string{"A1", "A2"} {
		_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: a})
		require.NoError(t, err)
	}
	_, err := svc.IdealAnswers(context.Background(), alice, id)
	require.ErrorIs(t, err, ErrIncompleteSession)
	assert.Equal(t, 2, model.calls())

	_, err = svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A3"})
	require.NoError(t, err)
	writes := repo.writes

	first, err := svc.IdealAnswers(context.Background(), alice, id)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, IdealAnswer{Question: "Q2", IdealAnswer: "I2"}, first[1])
	assert.Equal(t, "ideal_answers", model.requests[3].Operation)
	assert.Equal(t, 1024, model.requests[3].MaxTokens)

	second, err := svc.IdealAnswers(context.Background(), alice, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, writes, repo.writes)

	_, err = svc.IdealAnswers(context.Background(), bob, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIdealAnswersParseError(t *testing.T) {
	model := (&scriptedModel{}).push("Score (out of 10): 9", nil).push("Sorry, I can't help.", nil)
	svc := newTestService(newMemRepo(), model)
	id := startWith(t, svc, alice, "Q1")
	_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A1"})
	require.NoError(t, err)

	_, err = svc.IdealAnswers(context.Background(), alice, id)
	require.ErrorIs(t, err, ErrParse)
	assert.Equal(t, "Sorry, I can't help.", Raw(err))
}

func TestIdealAnswersWarnsOnCountMismatch(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	model := (&scriptedModel{}).
		push("Score (out of 10): 4", nil).
		push("Score (out of 10): 6", nil).
		push(`[{"question":"Q1","idealAnswer":"I1"}]`, nil)
	svc := NewService(newMemRepo(), model,
		WithClock(func() time.Time { return fixed }),
		WithLogger(zap.New(core)))
	id := startWith(t, svc, alice, "Q1", "Q2")
	for _, a := range []string{"A1", "A2"} {
		_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: a})
		require.NoError(t, err)
	}

	out, err := svc.IdealAnswers(context.Background(), alice, id)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	entries := logs.FilterMessage("ideal answer count differs from question count").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 2, entries[0].ContextMap()["questions"])
}

func TestIdealAnswersUpstreamFailure(t *testing.T) {
	model := (&scriptedModel{}).push("Score (out of 10): 9", nil).push("", errors.New("timeout"))
	svc := newTestService(newMemRepo(), model)
	id := startWith(t, svc, alice, "Q1")
	_, err := svc.SubmitAnswer(context.Background(), alice, AnswerParams{SessionID: id, Answer: "A1"})
	require.NoError(t, err)

	_, err = svc.IdealAnswers(context.Background(), alice, id)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestListMineIsOwnerScoped(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &scriptedModel{})
	startWith(t, svc, alice, "Q1")
	startWith(t, svc, bob, "Q1")

	mine, err := svc.ListMine(context.Background(), alice, 50, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice, mine[0].OwnerID)
}
