package auth

import "errors"

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrNotPlatformAdmin = errors.New("platform administrator access required")
)

// RequireSession gates the restaurant admin screens.
func RequireSession(s *Session) error {
	if s == nil || s.Token() == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// RequirePlatformAdmin gates the platform screens: credential and admin flag.
func RequirePlatformAdmin(s *Session) error {
	if err := RequireSession(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return ErrNotPlatformAdmin
	}
	return nil
}
