package interview

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/mockinterview/pkg/llm"
)

type memRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
	writes   int
}

func newMemRepo() *memRepo { return &memRepo{sessions: map[uuid.UUID]Session{}} }

func clone(s Session) Session {
	s.Questions = append([]string{}, s.Questions...)
	s.Answers = append([]string{}, s.Answers...)
	s.Scores = append([]int{}, s.Scores...)
	return s
}

func (r *memRepo) GetByID(ctx context.Context, id uuid.UUID) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return clone(s), nil
}

func (r *memRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (Session, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil || s.OwnerID != ownerID {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *memRepo) Insert(ctx context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return ErrConflict
	}
	r.sessions[s.ID] = clone(s)
	r.writes++
	return nil
}

func (r *memRepo) UpdateAnswersAndScores(ctx context.Context, id uuid.UUID, expected int, answers []string, scores []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if len(s.Answers) != expected {
		return ErrConflict
	}
	s.Answers = append([]string{}, answers...)
	s.Scores = append([]int{}, scores...)
	r.sessions[id] = s
	r.writes++
	return nil
}

func (r *memRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Overview, error) {
	all, _ := r.ListAll(ctx, 0, 0)
	var out []Overview
	for _, o := range all {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memRepo) ListAll(ctx context.Context, limit, offset int) ([]Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Overview
	for _, s := range r.sessions {
		out = append(out, Overview{ID: s.ID, OwnerID: s.OwnerID, Role: s.Role, Scores: s.Scores, CreatedAt: s.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.OwnerID == ownerID {
			delete(r.sessions, id)
		}
	}
	return nil
}

// scriptedModel returns queued replies in order and records every request.
type scriptedModel struct {
	mu       sync.Mutex
	replies  []reply
	requests []llm.Request
}

type reply struct {
	text string
	err  error
}

func (m *scriptedModel) push(text string, err error) *scriptedModel {
	m.replies = append(m.replies, reply{text: text, err: err})
	return m
}

func (m *scriptedModel) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.replies) == 0 {
		return "", llm.ErrEmptyCompletion
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r.text, r.err
}

func (m *scriptedModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
