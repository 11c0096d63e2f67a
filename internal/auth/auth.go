// Package auth talks to the GuideLens account backend. The Manager is
// constructed once in main and handed to the screens that need it; state
// changes flow back to the UI as messages, never through callbacks.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/guidelens/guidelens/internal/errors"
	"github.com/guidelens/guidelens/internal/logger"
)

const requestTimeout = 15 * time.Second

// User is the signed-in account
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// State is a snapshot of the auth session for rendering
type State struct {
	LoggedIn       bool
	User           User
	Err            string // Last auth error, cleared on the next attempt
	SuccessMessage string // e.g. "Reset email sent", cleared on the next attempt
}

// TokenStore persists the session token between runs
type TokenStore interface {
	GetAuthToken() string
	SetAuthToken(token string)
}

// Manager owns the auth session. All methods are synchronous; the UI runs
// them inside commands so the update loop never blocks.
type Manager struct {
	baseURL string
	client  *http.Client
	tokens  TokenStore

	mu    sync.RWMutex
	state State
}

// NewManager creates a manager against the given backend base URL.
// A previously persisted token marks the session logged in optimistically;
// the first authenticated call corrects it if the token went stale.
func NewManager(baseURL string, tokens TokenStore) *Manager {
	m := &Manager{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		tokens:  tokens,
	}
	if tokens != nil && tokens.GetAuthToken() != "" {
		m.state.LoggedIn = true
	}
	return m
}

// State returns a snapshot of the current auth state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	Error string `json:"error,omitempty"`
}

// Login signs in with email and password
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.startSession(ctx, "/v1/auth/login", credentialsRequest{Email: email, Password: password})
}

// Register creates an account and signs in
func (m *Manager) Register(ctx context.Context, email, password string) error {
	return m.startSession(ctx, "/v1/auth/register", credentialsRequest{Email: email, Password: password})
}

// SignInWithGoogle exchanges a Google ID token for a session
func (m *Manager) SignInWithGoogle(ctx context.Context, idToken string) error {
	return m.startSession(ctx, "/v1/auth/google", map[string]string{"id_token": idToken})
}

func (m *Manager) startSession(ctx context.Context, path string, payload any) error {
	m.clearBanners()

	var resp sessionResponse
	if err := m.post(ctx, path, payload, &resp); err != nil {
		m.setError(err)
		return err
	}
	if resp.Error != "" {
		err := errors.AuthFailed("auth"+path, fmt.Errorf("%s", resp.Error))
		m.setError(err)
		return err
	}

	m.mu.Lock()
	m.state.LoggedIn = true
	m.state.User = resp.User
	m.state.Err = ""
	m.mu.Unlock()

	if m.tokens != nil {
		m.tokens.SetAuthToken(resp.Token)
	}
	logger.Info("Signed in as %s", resp.User.Email)
	return nil
}

// SignOut drops the session locally. The backend token is simply forgotten;
// there is no server-side revocation endpoint yet.
func (m *Manager) SignOut() {
	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()

	if m.tokens != nil {
		m.tokens.SetAuthToken("")
	}
	logger.Info("Signed out")
}

// ResetPassword asks the backend to send a reset email
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	m.clearBanners()

	var resp struct {
		Error string `json:"error,omitempty"`
	}
	if err := m.post(ctx, "/v1/auth/reset", map[string]string{"email": email}, &resp); err != nil {
		m.setError(err)
		return err
	}
	if resp.Error != "" {
		err := errors.AuthFailed("auth.ResetPassword", fmt.Errorf("%s", resp.Error))
		m.setError(err)
		return err
	}

	m.mu.Lock()
	m.state.SuccessMessage = "Reset email sent to " + email
	m.mu.Unlock()
	return nil
}

func (m *Manager) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.AuthFailed("auth.post", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.AuthFailed("auth.post", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.tokens != nil {
		if token := m.tokens.GetAuthToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return errors.AuthFailed("auth.post", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.AuthFailed("auth.post", err)
	}
	if resp.StatusCode >= 500 {
		return errors.AuthFailed("auth.post", fmt.Errorf("backend error: %s", resp.Status))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.AuthFailed("auth.post", fmt.Errorf("bad response: %w", err))
	}
	return nil
}

func (m *Manager) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Err = err.Error()
}

func (m *Manager) clearBanners() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Err = ""
	m.state.SuccessMessage = ""
}
