package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/mockinterview/pkg/interview"
	"github.com/artem13815/mockinterview/pkg/repository/jsontext"
)

// InterviewRepository implements interview.Repository backed by PostgreSQL (pgx).
type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

const selectSession = `
SELECT id, owner_id, role, difficulty, questions, answers, scores, created_at
FROM interviews`

func scanSession(row pgx.Row) (interview.Session, error) {
	var (
		s          interview.Session
		qs, as, sc string
		created    time.Time
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Role, &s.Difficulty, &qs, &as, &sc, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.Session{}, interview.ErrNotFound
		}
		return interview.Session{}, err
	}
	var err error
	if s.Questions, err = jsontext.DecodeStrings(qs); err != nil {
		return interview.Session{}, fmt.Errorf("decode questions: %w", err)
	}
	if s.Answers, err = jsontext.DecodeStrings(as); err != nil {
		return interview.Session{}, fmt.Errorf("decode answers: %w", err)
	}
	if s.Scores, err = jsontext.DecodeInts(sc); err != nil {
		return interview.Session{}, fmt.Errorf("decode scores: %w", err)
	}
	s.CreatedAt = created.UTC()
	return s, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (interview.Session, error) {
	return scanSession(r.pool.QueryRow(ctx, selectSession+` WHERE id = $1`, id))
}

func (r *InterviewRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (interview.Session, error) {
	return scanSession(r.pool.QueryRow(ctx, selectSession+` WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *InterviewRepository) Insert(ctx context.Context, s interview.Session) error {
	qs, err := jsontext.EncodeStrings(s.Questions)
	if err != nil {
		return err
	}
	as, err := jsontext.EncodeStrings(s.Answers)
	if err != nil {
		return err
	}
	sc, err := jsontext.EncodeInts(s.Scores)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO interviews (id, owner_id, role, difficulty, questions, answers, scores, answer_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, s.ID, s.OwnerID, s.Role, s.Difficulty, qs, as, sc, len(s.Answers), s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return interview.ErrConflict
		}
		return err
	}
	return nil
}

func (r *InterviewRepository) UpdateAnswersAndScores(ctx context.Context, id uuid.UUID, expectedAnswers int, answers []string, scores []int) error {
	as, err := jsontext.EncodeStrings(answers)
	if err != nil {
		return err
	}
	sc, err := jsontext.EncodeInts(scores)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE interviews SET answers = $1, scores = $2, answer_count = $3
WHERE id = $4 AND answer_count = $5
`, as, sc, len(answers), id, expectedAnswers)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM interviews WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return interview.ErrNotFound
	}
	return interview.ErrConflict
}

func (r *InterviewRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]interview.Overview, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT i.id, i.owner_id, u.email, i.role, i.scores, i.created_at
FROM interviews i JOIN users u ON u.id = i.owner_id
WHERE i.owner_id = $3
ORDER BY i.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	return collectOverviews(rows)
}

func (r *InterviewRepository) ListAll(ctx context.Context, limit, offset int) ([]interview.Overview, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT i.id, i.owner_id, u.email, i.role, i.scores, i.created_at
FROM interviews i JOIN users u ON u.id = i.owner_id
ORDER BY i.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectOverviews(rows)
}

func collectOverviews(rows pgx.Rows) ([]interview.Overview, error) {
	defer rows.Close()
	res := []interview.Overview{}
	for rows.Next() {
		var (
			o       interview.Overview
			sc      string
			created time.Time
		)
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.OwnerEmail, &o.Role, &sc, &created); err != nil {
			return nil, err
		}
		scores, err := jsontext.DecodeInts(sc)
		if err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
		o.Scores = scores
		o.CreatedAt = created.UTC()
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r *InterviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (r *InterviewRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM interviews WHERE owner_id = $1`, ownerID)
	return err
}
