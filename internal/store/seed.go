package store

import (
	"time"

	"github.com/omargad/userhub/internal/auth"
)

// Default admin credential for a freshly seeded dataset.
const (
	DefaultAdminEmail    = "admin@userhub.com"
	DefaultAdminPassword = "admin123"
)

// defaultSnapshot builds the seed dataset used when the snapshot file is
// missing or unreadable. Only the admin account gets a credential; the other
// sample users are intentionally unauthenticatable.
func defaultSnapshot(now time.Time) (snapshot, error) {
	digest, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return snapshot{}, err
	}
	today := now.Format("2006-01-02")

	return snapshot{
		Users: []User{
			{ID: 1, FirstName: "Omar", LastName: "Gad", Email: DefaultAdminEmail, Password: digest, Role: "Admin", Status: StatusActive, Joined: today, Avatar: "#8B5CF6"},
			{ID: 2, FirstName: "Ahmed", LastName: "Hassan", Email: "ahmed.hassan@email.com", Role: "Admin", Status: StatusActive, Joined: "2025-08-15", Avatar: "#3B82F6"},
			{ID: 3, FirstName: "Sarah", LastName: "Johnson", Email: "sarah.j@email.com", Role: "Editor", Status: StatusActive, Joined: "2025-09-20", Avatar: "#8B5CF6"},
			{ID: 4, FirstName: "Mohamed", LastName: "Ali", Email: "mohamed.ali@email.com", Role: "User", Status: StatusPending, Joined: "2025-10-05", Avatar: "#22C55E"},
			{ID: 5, FirstName: "Emily", LastName: "Davis", Email: "emily.d@email.com", Role: "Editor", Status: StatusActive, Joined: "2025-07-12", Avatar: "#F59E0B"},
			{ID: 6, FirstName: "Omar", LastName: "Khalil", Email: "omar.k@email.com", Role: "Admin", Status: StatusActive, Joined: "2025-06-30", Avatar: "#EF4444"},
			{ID: 7, FirstName: "Fatima", LastName: "Ahmed", Email: "fatima.a@email.com", Role: "User", Status: StatusInactive, Joined: "2025-11-18", Avatar: "#EC4899"},
			{ID: 8, FirstName: "John", LastName: "Smith", Email: "john.smith@email.com", Role: "User", Status: StatusActive, Joined: "2025-05-25", Avatar: "#06B6D4"},
			{ID: 9, FirstName: "Mona", LastName: "Ibrahim", Email: "mona.i@email.com", Role: "Editor", Status: StatusPending, Joined: "2025-12-01", Avatar: "#8B5CF6"},
			{ID: 10, FirstName: "David", LastName: "Wilson", Email: "david.w@email.com", Role: "User", Status: StatusActive, Joined: "2025-04-10", Avatar: "#3B82F6"},
			{ID: 11, FirstName: "Layla", LastName: "Mahmoud", Email: "layla.m@email.com", Role: "Admin", Status: StatusActive, Joined: "2025-03-22", Avatar: "#22C55E"},
			{ID: 12, FirstName: "James", LastName: "Brown", Email: "james.b@email.com", Role: "User", Status: StatusInactive, Joined: "2025-02-14", Avatar: "#F59E0B"},
			{ID: 13, FirstName: "Nour", LastName: "Saleh", Email: "nour.s@email.com", Role: "Editor", Status: StatusActive, Joined: "2026-01-05", Avatar: "#EF4444"},
		},
		Roles: []Role{
			{ID: 1, Name: "Admin", Description: "Full system access with all permissions", Permissions: []string{"all"}, Color: "#8B5CF6", CreatedAt: now},
			{ID: 2, Name: "Editor", Description: "Can create and edit content", Permissions: []string{"read", "write", "edit"}, Color: "#3B82F6", CreatedAt: now},
			{ID: 3, Name: "User", Description: "Basic access to view content", Permissions: []string{"read"}, Color: "#64748B", CreatedAt: now},
		},
		Settings: []Setting{
			{Key: "appName", Value: "UserHub Dashboard"},
			{Key: "language", Value: "en"},
			{Key: "theme", Value: "light"},
			{Key: "emailNotifications", Value: "true"},
			{Key: "twoFactorAuth", Value: "false"},
			{Key: "sessionTimeout", Value: "30"},
			{Key: "timezone", Value: "UTC"},
		},
		Sessions: []Session{},
	}, nil
}
