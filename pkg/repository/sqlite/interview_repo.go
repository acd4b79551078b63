package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/mockinterview/pkg/interview"
	"github.com/artem13815/mockinterview/pkg/repository/jsontext"
)

// InterviewRepository implements interview.Repository on SQLite.
type InterviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const selectSession = `
SELECT id, owner_id, role, difficulty, questions, answers, scores, created_at
FROM interviews`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (interview.Session, error) {
	var (
		s                   interview.Session
		qs, as, sc, created string
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Role, &s.Difficulty, &qs, &as, &sc, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	if s.CreatedAt, err = parseTime(created); err != nil {
		return interview.Session{}, fmt.Errorf("decode created_at: %w", err)
	}
	return s, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (interview.Session, error) {
	return scanSession(r.db.QueryRowContext(ctx, selectSession+` WHERE id = ?`, id.String()))
}

func (r *InterviewRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (interview.Session, error) {
	return scanSession(r.db.QueryRowContext(ctx, selectSession+` WHERE id = ? AND owner_id = ?`, id.String(), ownerID.String()))
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
	_, err = r.db.ExecContext(ctx, `
INSERT INTO interviews (id, owner_id, role, difficulty, questions, answers, scores, answer_count, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.ID.String(), s.OwnerID.String(), s.Role, s.Difficulty, qs, as, sc, len(s.Answers), formatTime(s.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
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
	res, err := r.db.ExecContext(ctx, `
UPDATE interviews SET answers = ?, scores = ?, answer_count = ?
WHERE id = ? AND answer_count = ?
`, as, sc, len(answers), id.String(), expectedAnswers)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM interviews WHERE id = ?)`, id.String()).Scan(&exists); err != nil {
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
	rows, err := r.db.QueryContext(ctx, `
SELECT i.id, i.owner_id, u.email, i.role, i.scores, i.created_at
FROM interviews i JOIN users u ON u.id = i.owner_id
WHERE i.owner_id = ?
ORDER BY i.created_at DESC
LIMIT ? OFFSET ?
`, ownerID.String(), limit, offset)
	if err != nil {
		return nil, err
	}
	return collectOverviews(rows)
}

func (r *InterviewRepository) ListAll(ctx context.Context, limit, offset int) ([]interview.Overview, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT i.id, i.owner_id, u.email, i.role, i.scores, i.created_at
FROM interviews i JOIN users u ON u.id = i.owner_id
ORDER BY i.created_at DESC
LIMIT ? OFFSET ?
`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectOverviews(rows)
}

func collectOverviews(rows *sql.Rows) ([]interview.Overview, error) {
	defer rows.Close()
	res := []interview.Overview{}
	for rows.Next() {
		var (
			o           interview.Overview
			sc, created string
		)
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.OwnerEmail, &o.Role, &sc, &created); err != nil {
			return nil, err
		}
		scores, err := jsontext.DecodeInts(sc)
		if err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
		o.Scores = scores
		if o.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("decode created_at: %w", err)
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r *InterviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (r *InterviewRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interviews WHERE owner_id = ?`, ownerID.String())
	return err
}
