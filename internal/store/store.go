// Package store implements the persistence layer: four record collections
// (users, roles, settings, sessions) held in memory and written through to a
// single JSON snapshot on every mutation.
//
// The store is the only writer of its snapshot. Mutations are serialized
// behind a mutex; each one applies its in-memory change and then rewrites the
// whole file before returning. There is no write buffering. This trades
// throughput for simplicity, which is fine at dashboard volumes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/omargad/userhub/internal/fsutil"
	"github.com/omargad/userhub/internal/logger"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrSettingNotFound = errors.New("setting not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrRoleExists      = errors.New("role already exists")
	ErrRoleInUse       = errors.New("role has assigned users")
)

type Store struct {
	mu   sync.Mutex
	path string
	data snapshot
}

// Open loads the snapshot at path. A missing, empty or corrupt file is
// replaced with the seeded default dataset, which is persisted immediately;
// corruption is recovered, never surfaced. Only real I/O failures return an
// error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.reset()
		}
		return nil, err
	}
	if len(b) == 0 {
		return s.reset()
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		logger.Warn("snapshot %s is corrupt (%v); reinitializing", path, err)
		return s.reset()
	}
	s.data = snap
	return s, nil
}

func (s *Store) reset() (*Store, error) {
	snap, err := defaultSnapshot(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.data = snap
	if err := s.saveLocked(); err != nil {
		return nil, fmt.Errorf("writing seed snapshot: %w", err)
	}
	logger.Info("initialized %s with default dataset", s.path)
	return s, nil
}

// saveLocked serializes the full in-memory state and atomically replaces the
// snapshot file. Callers must hold s.mu.
func (s *Store) saveLocked() error {
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return fsutil.WriteFileAtomic(s.path, b, 0o644)
}

// ----- users -----

func (s *Store) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, len(s.data.Users))
	copy(out, s.data.Users)
	return out
}

func (s *Store) UserByID(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.userIndex(id); i >= 0 {
		return s.data.Users[i], nil
	}
	return User{}, ErrUserNotFound
}

func (s *Store) UserByEmail(email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

// CreateUser assigns the next id (max existing + 1, or 1 when empty) and
// persists the record. Email uniqueness is enforced here, case-sensitive as
// stored.
func (s *Store) CreateUser(u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.Users {
		if existing.Email == u.Email {
			return User{}, ErrEmailExists
		}
	}
	u.ID = nextID(len(s.data.Users), func(i int) int { return s.data.Users[i].ID })
	s.data.Users = append(s.data.Users, u)
	if err := s.saveLocked(); err != nil {
		return User{}, err
	}
	return u, nil
}

// UpdateUser applies a partial mutation. Changing the email to one held by
// another user fails with ErrEmailExists and leaves the store untouched.
func (s *Store) UpdateUser(id int, upd UserUpdate) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(id)
	if i < 0 {
		return User{}, ErrUserNotFound
	}
	if upd.Email != nil && *upd.Email != s.data.Users[i].Email {
		for _, other := range s.data.Users {
			if other.ID != id && other.Email == *upd.Email {
				return User{}, ErrEmailExists
			}
		}
	}
	u := &s.data.Users[i]
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Status != nil {
		u.Status = *upd.Status
	}
	if err := s.saveLocked(); err != nil {
		return User{}, err
	}
	return *u, nil
}

// DeleteUser removes a user by id. Sessions belonging to the user are left
// in place; callers that care clean them up via DeleteUserSessions.
func (s *Store) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(id)
	if i < 0 {
		return ErrUserNotFound
	}
	s.data.Users = append(s.data.Users[:i], s.data.Users[i+1:]...)
	return s.saveLocked()
}

func (s *Store) CountUsersByRole(roleName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countUsersByRoleLocked(roleName)
}

func (s *Store) countUsersByRoleLocked(roleName string) int {
	n := 0
	for _, u := range s.data.Users {
		if u.Role == roleName {
			n++
		}
	}
	return n
}

func (s *Store) userIndex(id int) int {
	for i := range s.data.Users {
		if s.data.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// ----- roles -----

func (s *Store) Roles() []Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Role, len(s.data.Roles))
	copy(out, s.data.Roles)
	return out
}

func (s *Store) RoleByID(id int) (Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.roleIndex(id); i >= 0 {
		return s.data.Roles[i], nil
	}
	return Role{}, ErrRoleNotFound
}

func (s *Store) RoleByName(name string) (Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.data.Roles {
		if r.Name == name {
			return r, nil
		}
	}
	return Role{}, ErrRoleNotFound
}

func (s *Store) CreateRole(r Role) (Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.Roles {
		if existing.Name == r.Name {
			return Role{}, ErrRoleExists
		}
	}
	r.ID = nextID(len(s.data.Roles), func(i int) int { return s.data.Roles[i].ID })
	s.data.Roles = append(s.data.Roles, r)
	if err := s.saveLocked(); err != nil {
		return Role{}, err
	}
	return r, nil
}

// UpdateRole applies a partial mutation. A rename cascades to every user
// carrying the old name in the same locked section, so no reader observes a
// half-renamed dataset; the cascade is still a single snapshot write and not
// crash-transactional.
func (s *Store) UpdateRole(id int, upd RoleUpdate) (Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.roleIndex(id)
	if i < 0 {
		return Role{}, ErrRoleNotFound
	}
	r := &s.data.Roles[i]
	if upd.Name != nil && *upd.Name != r.Name {
		for _, other := range s.data.Roles {
			if other.ID != id && other.Name == *upd.Name {
				return Role{}, ErrRoleExists
			}
		}
		for j := range s.data.Users {
			if s.data.Users[j].Role == r.Name {
				s.data.Users[j].Role = *upd.Name
			}
		}
		r.Name = *upd.Name
	}
	if upd.Description != nil {
		r.Description = *upd.Description
	}
	if upd.Permissions != nil {
		r.Permissions = upd.Permissions
	}
	if upd.Color != nil {
		r.Color = *upd.Color
	}
	if err := s.saveLocked(); err != nil {
		return Role{}, err
	}
	return *r, nil
}

// DeleteRole refuses to remove a role while any user still references its
// name.
func (s *Store) DeleteRole(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.roleIndex(id)
	if i < 0 {
		return ErrRoleNotFound
	}
	if n := s.countUsersByRoleLocked(s.data.Roles[i].Name); n > 0 {
		return fmt.Errorf("%w: %d assigned", ErrRoleInUse, n)
	}
	s.data.Roles = append(s.data.Roles[:i], s.data.Roles[i+1:]...)
	return s.saveLocked()
}

func (s *Store) roleIndex(id int) int {
	for i := range s.data.Roles {
		if s.data.Roles[i].ID == id {
			return i
		}
	}
	return -1
}

// ----- settings -----

func (s *Store) Settings() []Setting {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Setting, len(s.data.Settings))
	copy(out, s.data.Settings)
	return out
}

func (s *Store) Setting(key string) (Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.data.Settings {
		if st.Key == key {
			return st, nil
		}
	}
	return Setting{}, ErrSettingNotFound
}

// SetSetting upserts: overwrite when the key exists, append otherwise.
func (s *Store) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Settings {
		if s.data.Settings[i].Key == key {
			s.data.Settings[i].Value = value
			return s.saveLocked()
		}
	}
	s.data.Settings = append(s.data.Settings, Setting{Key: key, Value: value})
	return s.saveLocked()
}

// ----- sessions -----

func (s *Store) CreateSession(sess Session) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ID = nextID(len(s.data.Sessions), func(i int) int { return s.data.Sessions[i].ID })
	s.data.Sessions = append(s.data.Sessions, sess)
	if err := s.saveLocked(); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Store) SessionByToken(token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.data.Sessions {
		if sess.Token == token {
			return sess, nil
		}
	}
	return Session{}, ErrSessionNotFound
}

func (s *Store) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Sessions {
		if s.data.Sessions[i].Token == token {
			s.data.Sessions = append(s.data.Sessions[:i], s.data.Sessions[i+1:]...)
			return s.saveLocked()
		}
	}
	return ErrSessionNotFound
}

// DeleteUserSessions removes every session belonging to userID and reports
// how many were dropped.
func (s *Store) DeleteUserSessions(userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.data.Sessions[:0]
	dropped := 0
	for _, sess := range s.data.Sessions {
		if sess.UserID == userID {
			dropped++
			continue
		}
		kept = append(kept, sess)
	}
	if dropped == 0 {
		return 0, nil
	}
	s.data.Sessions = kept
	return dropped, s.saveLocked()
}

// nextID returns max(existing ids)+1, or 1 for an empty collection.
func nextID(n int, idAt func(int) int) int {
	next := 1
	for i := 0; i < n; i++ {
		if id := idAt(i); id >= next {
			next = id + 1
		}
	}
	return next
}
