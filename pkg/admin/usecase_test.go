package admin

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/mockinterview/pkg/auth"
	"github.com/artem13815/mockinterview/pkg/interview"
	"github.com/artem13815/mockinterview/pkg/repository/sqlite"
	"github.com/artem13815/mockinterview/pkg/storage"
	sqlitestore "github.com/artem13815/mockinterview/pkg/storage/sqlite"
)

type fixture struct {
	svc      UseCase
	users    *sqlite.UserRepository
	sessions *sqlite.InterviewRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlitestore.Open(ctx, filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.Migrate(ctx, db, storage.DriverSQLite, nil))
	users := sqlite.NewUserRepository(db)
	sessions := sqlite.NewInterviewRepository(db)
	return fixture{svc: NewService(users, sessions, nil), users: users, sessions: sessions}
}

func (f fixture) user(t *testing.T, email string) auth.User {
	t.Helper()
	u := auth.User{ID: uuid.New(), Email: email, PasswordHash: "x", Role: auth.RoleUser, CreatedAt: time.Now().UTC()}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f fixture) session(t *testing.T, owner uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.sessions.Insert(context.Background(), interview.Session{
		ID: id, OwnerID: owner, Role: "Data Engineer", Difficulty: "Intermediate",
		Questions: []string{"Q1"}, Answers: []string{}, Scores: []int{}, CreatedAt: time.Now().UTC(),
	}))
	return id
}

func TestUserInterviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "dana@example.com")
	id := f.session(t, u.ID)

	res, err := f.svc.UserInterviews(ctx, u.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, u.Email, res.User.Email)
	require.Len(t, res.Interviews, 1)
	assert.Equal(t, id, res.Interviews[0].ID)

	_, err = f.svc.UserInterviews(ctx, uuid.New(), 10, 0)
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestUpdateRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "eve@example.com")

	assert.ErrorIs(t, f.svc.UpdateRole(ctx, u.ID, "root"), ErrInvalidRole)
	require.NoError(t, f.svc.UpdateRole(ctx, u.ID, auth.RoleAdmin))

	users, err := f.svc.ListUsers(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, auth.RoleAdmin, users[0].Role)
}

func TestDeleteUserRemovesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.user(t, "keep@example.com")
	drop := f.user(t, "drop@example.com")
	f.session(t, keep.ID)
	f.session(t, drop.ID)
	f.session(t, drop.ID)

	require.NoError(t, f.svc.DeleteUser(ctx, drop.ID))

	all, err := f.svc.ListInterviews(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].OwnerID)
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, drop.ID), auth.ErrNotFound)
}

func TestDeleteInterview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "fay@example.com")
	id := f.session(t, u.ID)

	require.NoError(t, f.svc.DeleteInterview(ctx, id))
	assert.ErrorIs(t, f.svc.DeleteInterview(ctx, id), interview.ErrNotFound)
}
