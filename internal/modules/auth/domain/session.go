package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Keys under which the session is persisted in client storage.
const (
	KeyToken = "authToken"
	KeyUser  = "currentUser"
	KeyRole  = "userRole"
)

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Session is the locally persisted identity used to authorize requests. A
// session without a token is anonymous.
type Session struct {
	UserID   string
	Email    string
	Role     string
	Token    string
	UserJSON string
}

func (s Session) Anonymous() bool {
	return strings.TrimSpace(s.Token) == ""
}

// FromStorage rebuilds a session from the raw stored values. User and role
// are only read when a token is present; a missing user document reads as
// "{}" and a missing role as staff.
func FromStorage(token, userJSON, role string) (Session, error) {
	if strings.TrimSpace(token) == "" {
		return Session{}, nil
	}
	if strings.TrimSpace(userJSON) == "" {
		userJSON = "{}"
	}
	user, err := decodeUser(userJSON)
	if err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(role) == "" {
		role = RoleStaff
	}
	return Session{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     role,
		Token:    token,
		UserJSON: userJSON,
	}, nil
}

type storedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func decodeUser(raw string) (storedUser, error) {
	u := storedUser{}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return storedUser{}, fmt.Errorf("decode %s: %w", KeyUser, err)
	}
	return u, nil
}

// ValidateUserJSON checks that raw is a JSON object usable as currentUser.
func ValidateUserJSON(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	_, err := decodeUser(raw)
	return err
}
