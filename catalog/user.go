package catalog

import (
	"encoding/json"
	"fmt"
	"time"
)

// User is the canonical, read-only view of a registered user
type User struct {
	ID        ID        `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Email     string    `json:"email" yaml:"email"`
	Role      string    `json:"role" yaml:"role"`
	Status    string    `json:"status" yaml:"status"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// GetDisplayName returns the best available display name for the user
func (u *User) GetDisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID.String()
}

// normalizeUser resolves every accepted field spelling once, at the API
// boundary, so nothing downstream has to know about server naming variance.
func normalizeUser(r record) (User, error) {
	var (
		u   User
		err error
	)

	if u.ID, err = r.id("id", "userId", "user_id", "_id"); err != nil {
		return u, err
	}

	fields := []struct {
		dst  *string
		keys []string
	}{
		{&u.Username, []string{"username", "userName", "user_name", "name"}},
		{&u.Email, []string{"email", "emailAddress", "email_address"}},
		{&u.Role, []string{"role", "userRole", "user_role"}},
		{&u.Status, []string{"status", "accountStatus", "account_status"}},
	}
	for _, f := range fields {
		s, err := r.str(f.keys...)
		if err != nil {
			return u, err
		}
		if s != nil {
			*f.dst = *s
		}
	}

	u.CreatedAt = r.timestamp("createdAt", "created_at", "createdOn", "created_on")
	return u, nil
}

// decodeUsers decodes a JSON array of user objects.
func decodeUsers(body []byte) ([]User, error) {
	var raw []record
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(raw))
	for i, r := range raw {
		u, err := normalizeUser(r)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", i, err)
		}
		users = append(users, u)
	}
	return users, nil
}
