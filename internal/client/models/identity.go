package models

// Role is the privilege class of an authenticated identity.
type Role string

const (
	RoleAdmin Role = "admin"
	// RoleStoreClerk is sent by the backend as "store".
	RoleStoreClerk Role = "store"
)

// Identity is the authenticated user owned by the session store.
type Identity struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	User  Identity `json:"user"`
	Token string   `json:"token,omitempty"`
}
