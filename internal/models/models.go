package models

// User is the authenticated operator's profile as returned by the auth endpoints.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DTOs for the auth endpoints

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"is_admin"`
	User    User   `json:"user"`
}

// Self is the normalized /auth/me payload. IsAdmin is nil when the server
// answered with a bare user object.
type Self struct {
	User    *User
	IsAdmin *bool
}

// ProfileUpdate is a partial self-update; empty fields are not sent.
type ProfileUpdate struct {
	Name                 string `json:"name,omitempty"`
	Email                string `json:"email,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

type ProfileUpdateResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}
