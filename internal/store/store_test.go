package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/omargad/userhub/internal/auth"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "userhub.json"))
	require.NoError(t, err)
	return s
}

func strptr(s string) *string { return &s }

func TestOpenSeedsMissingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userhub.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.Len(t, s.Users(), 13)
	require.Len(t, s.Roles(), 3)
	require.Len(t, s.Settings(), 7)

	// The seed is persisted immediately.
	_, err = os.Stat(path)
	require.NoError(t, err)

	admin, err := s.UserByEmail(DefaultAdminEmail)
	require.NoError(t, err)
	require.NoError(t, auth.VerifyPassword(DefaultAdminPassword, admin.Password))

	// Sample users carry no credential.
	sample, err := s.UserByID(2)
	require.NoError(t, err)
	require.Empty(t, sample.Password)
}

func TestOpenRecoversCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userhub.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	require.Len(t, s.Users(), 13)
}

func TestOpenRecoversEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userhub.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	require.Len(t, s.Users(), 13)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userhub.json")
	s, err := Open(path)
	require.NoError(t, err)

	created, err := s.CreateUser(User{FirstName: "Test", LastName: "User", Email: "test@example.com", Role: "User", Status: StatusActive, Joined: "2026-08-28", Avatar: "#3B82F6"})
	require.NoError(t, err)
	require.NoError(t, s.SetSetting("theme", "dark"))
	sess, err := s.CreateSession(Session{UserID: created.ID, Token: "tok-1", CreatedAt: time.Now().UTC(), ExpiresAt: time.Now().UTC().Add(24 * time.Hour)})
	require.NoError(t, err)

	// Reopen from disk and compare.
	reopened, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, s.Users(), reopened.Users())
	require.Equal(t, s.Settings(), reopened.Settings())

	got, err := reopened.SessionByToken("tok-1")
	require.NoError(t, err)
	require.Equal(t, sess.ID, got.ID)
	require.Equal(t, created.ID, got.UserID)
}

func TestCreateUserAssignsNextID(t *testing.T) {
	s := openTestStore(t)

	// Seed dataset tops out at id 13.
	u, err := s.CreateUser(User{FirstName: "New", LastName: "User", Email: "new@example.com"})
	require.NoError(t, err)
	require.Equal(t, 14, u.ID)

	got, err := s.UserByID(14)
	require.NoError(t, err)
	require.Equal(t, u, got)

	u2, err := s.CreateUser(User{FirstName: "Next", LastName: "User", Email: "next@example.com"})
	require.NoError(t, err)
	require.Equal(t, 15, u2.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	before := s.Users()

	_, err := s.CreateUser(User{FirstName: "Dup", LastName: "User", Email: DefaultAdminEmail})
	require.ErrorIs(t, err, ErrEmailExists)
	require.Equal(t, before, s.Users())
}

func TestUpdateUserPartial(t *testing.T) {
	s := openTestStore(t)

	updated, err := s.UpdateUser(3, UserUpdate{Status: strptr(StatusInactive)})
	require.NoError(t, err)
	require.Equal(t, StatusInactive, updated.Status)
	// Untouched fields survive.
	require.Equal(t, "Sarah", updated.FirstName)
	require.Equal(t, "sarah.j@email.com", updated.Email)

	_, err = s.UpdateUser(999, UserUpdate{Status: strptr(StatusActive)})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	s := openTestStore(t)

	_, err := s.UpdateUser(3, UserUpdate{Email: strptr(DefaultAdminEmail)})
	require.ErrorIs(t, err, ErrEmailExists)

	// Setting a user's email to its current value is not a conflict.
	_, err = s.UpdateUser(3, UserUpdate{Email: strptr("sarah.j@email.com")})
	require.NoError(t, err)
}

func TestDeleteUserKeepsSessions(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateSession(Session{UserID: 4, Token: "orphan", CreatedAt: time.Now().UTC(), ExpiresAt: time.Now().UTC().Add(time.Hour)})
	require.NoError(t, err)
	require.NoError(t, s.DeleteUser(4))

	_, err = s.UserByID(4)
	require.ErrorIs(t, err, ErrUserNotFound)

	// Sessions are not cascaded; cleanup is explicit.
	_, err = s.SessionByToken("orphan")
	require.NoError(t, err)

	n, err := s.DeleteUserSessions(4)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	_, err = s.SessionByToken("orphan")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRoleRenameCascades(t *testing.T) {
	s := openTestStore(t)

	editor, err := s.RoleByName("Editor")
	require.NoError(t, err)
	editors := s.CountUsersByRole("Editor")
	require.Greater(t, editors, 0)

	updated, err := s.UpdateRole(editor.ID, RoleUpdate{Name: strptr("Contributor")})
	require.NoError(t, err)
	require.Equal(t, "Contributor", updated.Name)

	require.Equal(t, 0, s.CountUsersByRole("Editor"))
	require.Equal(t, editors, s.CountUsersByRole("Contributor"))
}

func TestUpdateRoleNameConflict(t *testing.T) {
	s := openTestStore(t)

	editor, err := s.RoleByName("Editor")
	require.NoError(t, err)
	_, err = s.UpdateRole(editor.ID, RoleUpdate{Name: strptr("Admin")})
	require.ErrorIs(t, err, ErrRoleExists)

	// Conflict leaves users untouched.
	require.Greater(t, s.CountUsersByRole("Editor"), 0)
}

func TestDeleteRoleBlockedWhileReferenced(t *testing.T) {
	s := openTestStore(t)

	admin, err := s.RoleByName("Admin")
	require.NoError(t, err)
	err = s.DeleteRole(admin.ID)
	require.ErrorIs(t, err, ErrRoleInUse)

	_, err = s.RoleByID(admin.ID)
	require.NoError(t, err)
}

func TestDeleteUnreferencedRole(t *testing.T) {
	s := openTestStore(t)

	role, err := s.CreateRole(Role{Name: "Auditor", Description: "Read-only reviews", Permissions: []string{"read"}, Color: "#64748B", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	require.Equal(t, 4, role.ID)

	require.NoError(t, s.DeleteRole(role.ID))
	_, err = s.RoleByID(role.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestCreateRoleDuplicateName(t *testing.T) {
	s := openTestStore(t)
	_, err := s.CreateRole(Role{Name: "Admin"})
	require.ErrorIs(t, err, ErrRoleExists)
}

func TestSetSettingUpserts(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetSetting("theme", "dark"))
	got, err := s.Setting("theme")
	require.NoError(t, err)
	require.Equal(t, "dark", got.Value)
	require.Len(t, s.Settings(), 7)

	require.NoError(t, s.SetSetting("brandNew", "value"))
	require.Len(t, s.Settings(), 8)

	_, err = s.Setting("missing")
	require.ErrorIs(t, err, ErrSettingNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)

	first, err := s.CreateSession(Session{UserID: 1, Token: "tok-a", CreatedAt: time.Now().UTC(), ExpiresAt: time.Now().UTC().Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, 1, first.ID)

	second, err := s.CreateSession(Session{UserID: 1, Token: "tok-b", CreatedAt: time.Now().UTC(), ExpiresAt: time.Now().UTC().Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)

	require.NoError(t, s.DeleteSession("tok-a"))
	require.ErrorIs(t, s.DeleteSession("tok-a"), ErrSessionNotFound)

	n, err := s.DeleteUserSessions(1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
