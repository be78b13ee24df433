package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/omargad/userhub/internal/store"
)

// joinedDate parses a user's joined field. Records with an unparseable date
// fall out of date-based aggregates instead of failing the request.
func joinedDate(u store.User) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", u.Joined)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	users := a.store.Users()
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var active, pending, inactive, newThisMonth int
	for _, u := range users {
		switch u.Status {
		case store.StatusActive:
			active++
		case store.StatusPending:
			pending++
		case store.StatusInactive:
			inactive++
		}
		if t, ok := joinedDate(u); ok && !t.Before(firstOfMonth) {
			newThisMonth++
		}
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"totalUsers":        len(users),
			"activeUsers":       active,
			"pendingUsers":      pending,
			"inactiveUsers":     inactive,
			"newUsersThisMonth": newThisMonth,
		},
	})
}

func (a *App) handleGrowth(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r.URL.Query().Get("days"), 30)

	users := a.store.Users()
	perDay := make(map[string]int)
	for _, u := range users {
		perDay[u.Joined]++
	}

	now := time.Now()
	labels := make([]string, 0, days)
	data := make([]int, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		labels = append(labels, day.Format("Jan 2"))
		data = append(data, perDay[day.Format("2006-01-02")])
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"growth": map[string]any{"labels": labels, "data": data},
	})
}

func (a *App) handleMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	users := a.store.Users()
	now := time.Now()

	labels := make([]string, 0, 6)
	data := make([]int, 0, 6)
	for i := 5; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		labels = append(labels, month.Format("Jan"))

		count := 0
		for _, u := range users {
			if t, ok := joinedDate(u); ok && t.Year() == month.Year() && t.Month() == month.Month() {
				count++
			}
		}
		data = append(data, count)
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"trends": map[string]any{"labels": labels, "data": data},
	})
}

func (a *App) handleRolesDistribution(w http.ResponseWriter, r *http.Request) {
	roles := a.store.Roles()
	distribution := make([]map[string]any, 0, len(roles))
	for _, role := range roles {
		distribution = append(distribution, map[string]any{
			"name":  role.Name,
			"count": a.store.CountUsersByRole(role.Name),
			"color": role.Color,
		})
	}
	writeSuccess(w, http.StatusOK, map[string]any{"distribution": distribution})
}

func (a *App) handleStatusDistribution(w http.ResponseWriter, r *http.Request) {
	users := a.store.Users()
	statusColors := map[string]string{
		store.StatusActive:   "#22C55E",
		store.StatusPending:  "#F59E0B",
		store.StatusInactive: "#EF4444",
	}

	distribution := make([]map[string]any, 0, 3)
	for _, status := range []string{store.StatusActive, store.StatusPending, store.StatusInactive} {
		count := 0
		for _, u := range users {
			if u.Status == status {
				count++
			}
		}
		distribution = append(distribution, map[string]any{
			"name":  status,
			"count": count,
			"color": statusColors[status],
		})
	}
	writeSuccess(w, http.StatusOK, map[string]any{"distribution": distribution})
}

func (a *App) handleRecentActivity(w http.ResponseWriter, r *http.Request) {
	users := a.store.Users()
	// ISO dates sort lexically, newest first.
	sort.Slice(users, func(i, j int) bool { return users[i].Joined > users[j].Joined })
	if len(users) > 10 {
		users = users[:10]
	}

	activities := make([]map[string]any, 0, len(users))
	for _, u := range users {
		name := u.FirstName + " " + u.LastName
		activities = append(activities, map[string]any{
			"type":      "user_joined",
			"message":   fmt.Sprintf("%s joined as %s", name, u.Role),
			"timestamp": u.Joined,
			"user": map[string]any{
				"name":   name,
				"avatar": u.Avatar,
			},
		})
	}
	writeSuccess(w, http.StatusOK, map[string]any{"activities": activities})
}
