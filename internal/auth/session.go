package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/storage"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/utils"
)

// AuthenticationError is returned by Login when the remote call fails.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", api.MessageOf(e.Err))
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Session owns the credential, the platform-admin flag and the profile.
// The credential and the flag are always written to the store together with
// their in-memory values; the profile is never persisted.
type Session struct {
	store  storage.Store
	client *api.Client

	mu        sync.RWMutex
	token     string
	isAdmin   bool
	user      *models.User
	refreshed string // credential the last automatic refresh ran for
}

func NewSession(store storage.Store) *Session {
	return &Session{store: store}
}

// Attach wires the gateway and registers the session as its credential source.
func (s *Session) Attach(client *api.Client) {
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
	client.SetCredentials(s)
}

// Token implements api.CredentialSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

// User returns a copy of the profile, or nil if it has not been fetched.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// ExpiresAt reports the expiry embedded in a JWT credential, if any.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return utils.TokenExpiry(s.Token())
}

// Restore reloads the persisted credential and admin flag. A restored
// credential triggers the automatic profile refresh.
func (s *Session) Restore(ctx context.Context) error {
	token, _, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	flag, _, err := s.store.Get(ctx, storage.KeyIsAdmin)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.isAdmin = token != "" && flag == "true"
	s.mu.Unlock()

	s.credentialChanged(ctx)
	return nil
}

// Login authenticates and persists the new credential. On failure the
// previous session is left untouched.
func (s *Session) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	client, err := s.gateway()
	if err != nil {
		return nil, err
	}

	res, err := client.PostJSON(ctx, "/auth/login", models.LoginRequest{
		Email:    utils.NormalizeEmail(email),
		Password: password,
	})
	if err != nil {
		return nil, &AuthenticationError{Err: err}
	}

	var out models.LoginResponse
	if err := res.Decode(&out); err != nil {
		return nil, &AuthenticationError{Err: err}
	}
	if out.Token == "" {
		return nil, &AuthenticationError{Err: errors.New("login response carried no token")}
	}

	if err := s.persist(ctx, out.Token, out.IsAdmin); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = out.Token
	s.isAdmin = out.IsAdmin
	u := out.User
	s.user = &u
	s.mu.Unlock()

	s.credentialChanged(ctx)
	return &out, nil
}

// Logout invalidates the credential remotely on a best-effort basis and
// always clears the local session.
func (s *Session) Logout(ctx context.Context) error {
	if client, err := s.gateway(); err == nil && s.Token() != "" {
		if _, err := client.PostJSON(ctx, "/auth/logout", nil); err != nil {
			log.Printf("auth: remote logout failed: %v", err)
		}
	}

	s.mu.Lock()
	s.token = ""
	s.isAdmin = false
	s.user = nil
	s.refreshed = ""
	s.mu.Unlock()

	if err := s.store.Remove(ctx, storage.KeyToken, storage.KeyIsAdmin); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// RefreshSelf fetches the current profile. Failures leave the session as it
// was and are not reported to the caller.
func (s *Session) RefreshSelf(ctx context.Context) {
	token := s.Token()
	if token == "" {
		return
	}
	client, err := s.gateway()
	if err != nil {
		return
	}

	res, err := client.Get(ctx, "/auth/me", nil)
	if err != nil {
		log.Printf("auth: profile refresh failed: %v", err)
		return
	}
	self, err := api.DecodeSelf(res)
	if err != nil {
		log.Printf("auth: profile refresh failed: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		// logged out or switched credential meanwhile
		return
	}
	if self.IsAdmin != nil {
		if err := s.store.Set(ctx, storage.KeyIsAdmin, formatFlag(*self.IsAdmin)); err != nil {
			log.Printf("auth: failed to persist admin flag: %v", err)
			return
		}
	}
	if self.User != nil {
		s.user = self.User
	}
	if self.IsAdmin != nil {
		s.isAdmin = *self.IsAdmin
	}
}

// UpdateProfile sends a partial profile update and adopts the server's copy.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	client, err := s.gateway()
	if err != nil {
		return err
	}
	if update.Email != "" {
		update.Email = utils.NormalizeEmail(update.Email)
	}

	res, err := client.PatchJSON(ctx, "/auth/me", update)
	if err != nil {
		return err
	}

	var out models.ProfileUpdateResponse
	if err := res.Decode(&out); err != nil {
		return err
	}
	if out.User != nil {
		s.mu.Lock()
		s.user = out.User
		s.mu.Unlock()
	}
	return nil
}

// credentialChanged runs the automatic refresh once per credential.
func (s *Session) credentialChanged(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	if token == "" || token == s.refreshed {
		s.mu.Unlock()
		return
	}
	s.refreshed = token
	s.mu.Unlock()

	s.RefreshSelf(ctx)
}

// persist writes the credential and its flag. If the flag cannot be written
// the previously stored credential is put back.
func (s *Session) persist(ctx context.Context, token string, isAdmin bool) error {
	previous, hadPrevious, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyIsAdmin, formatFlag(isAdmin)); err != nil {
		var restoreErr error
		if hadPrevious {
			restoreErr = s.store.Set(ctx, storage.KeyToken, previous)
		} else {
			restoreErr = s.store.Remove(ctx, storage.KeyToken)
		}
		if restoreErr != nil {
			log.Printf("auth: failed to restore previous credential: %v", restoreErr)
		}
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func (s *Session) gateway() (*api.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		return nil, errors.New("auth: session has no API client attached")
	}
	return s.client, nil
}

func formatFlag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
