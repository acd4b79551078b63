package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is one interview attempt. Answers and Scores grow in lockstep and never
// outnumber Questions.
type Session struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Role       string    `json:"role"`
	Difficulty string    `json:"difficulty"`
	Questions  []string  `json:"questions"`
	Answers    []string  `json:"answers"`
	Scores     []int     `json:"scores"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NextIndex is the question slot the next answer fills.
func (s Session) NextIndex() int { return len(s.Answers) }

// Complete reports whether every question has an answer.
func (s Session) Complete() bool { return len(s.Answers) >= len(s.Questions) }

// Overview is the list projection of a session (dashboards, admin views).
type Overview struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"userId"`
	OwnerEmail string    `json:"email,omitempty"`
	Role       string    `json:"role"`
	Scores     []int     `json:"scores"`
	CreatedAt  time.Time `json:"date"`
}

// Summary is the aggregate view returned after (or during) a session.
type Summary struct {
	Role           string  `json:"role"`
	TotalQuestions int     `json:"totalQuestions"`
	AverageScore   float64 `json:"averageScore"`
	Scores         []int   `json:"scores"`
	Verdict        string  `json:"verdict"`
}

// IdealAnswer pairs a question with a model-written 10/10 answer.
type IdealAnswer struct {
	Question    string `json:"question"`
	IdealAnswer string `json:"idealAnswer"`
}

// Repository is the persistence port for sessions.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (Session, error)
	Insert(ctx context.Context, s Session) error
	// UpdateAnswersAndScores replaces both sequences in one write, but only while the
	// stored answer count still equals expectedAnswers; otherwise ErrConflict.
	UpdateAnswersAndScores(ctx context.Context, id uuid.UUID, expectedAnswers int, answers []string, scores []int) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Overview, error)
	// admin
	ListAll(ctx context.Context, limit, offset int) ([]Overview, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
