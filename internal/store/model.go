package store

import "time"

// User status values.
const (
	StatusActive   = "Active"
	StatusPending  = "Pending"
	StatusInactive = "Inactive"
)

// User is a dashboard account. Password holds the bcrypt digest and is empty
// for accounts without a local credential; such accounts can never log in.
// JSON field names match the snapshot layout of the original dashboard so an
// existing userhub.json keeps loading.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Joined    string `json:"joined"` // calendar date, YYYY-MM-DD
	Avatar    string `json:"avatar"`
}

// Sanitized returns a copy with the password digest stripped, safe to put in
// an API response.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

type Role struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Session is an audit row for an issued token. The token's own embedded
// expiry is what access decisions use; this record only supports enumeration
// and logout.
type Session struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserUpdate carries a partial user mutation; nil fields are left unchanged.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *string
	Status    *string
}

// RoleUpdate carries a partial role mutation; nil fields are left unchanged.
// A nil Permissions slice means "keep", an empty one clears the set.
type RoleUpdate struct {
	Name        *string
	Description *string
	Permissions []string
	Color       *string
}

type snapshot struct {
	Users    []User    `json:"users"`
	Roles    []Role    `json:"roles"`
	Settings []Setting `json:"settings"`
	Sessions []Session `json:"sessions"`
}
