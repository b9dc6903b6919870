package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// Persisted state key fields, one Redis key per field.
const (
	keyCurrentUser  = "currentUser"
	keyMainView     = "mainView"
	keySubView      = "subView"
	keyBusinessUnit = "selectedBusinessUnit"
)

// Service is the explicit application-state object for the panel: it owns
// login/logout, session resolution and the persisted navigation state.
// Navigation keys are long-lived; the token-bearing session expires with the
// token. Writes are last-write-wins.
type Service struct {
	store      Store
	gateway    AuthGateway
	defaultTTL time.Duration
	logger     *logger.Logger
}

// NewService creates a new session service
func NewService(store Store, gateway AuthGateway, defaultTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		gateway:    gateway,
		defaultTTL: defaultTTL,
		logger:     log.WithField("component", "session"),
	}
}

// Login exchanges credentials upstream, creates a session bound to the
// returned token, persists the current user, and restores the user's saved
// navigation state.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, State, error) {
	if username == "" || password == "" {
		return nil, State{}, ErrMissingCredentials
	}

	token, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, State{}, fmt.Errorf("login failed: %w", err)
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}

	encoded, err := json.Marshal(sess)
	if err != nil {
		return nil, State{}, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey(sess.ID), encoded, s.tokenTTL(token)); err != nil {
		return nil, State{}, fmt.Errorf("failed to persist session: %w", err)
	}

	user := User{Username: username, Name: username}
	if encodedUser, err := json.Marshal(user); err == nil {
		if err := s.store.Set(ctx, stateKey(username, keyCurrentUser), encodedUser, 0); err != nil {
			s.logger.Warn("failed to persist current user", "error", err)
		}
	}

	state := s.Load(ctx, username)
	s.logger.Info("session created", "username", username)
	return sess, state, nil
}

// Resolve looks up a session by id. An unknown id means the token-scoped key
// expired or never existed.
func (s *Service) Resolve(ctx context.Context, sessionID string) (*Session, error) {
	value, ok, err := s.store.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal(value, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// Load reads the persisted navigation state for a user. Every key is parsed
// defensively: malformed or missing values fall back to defaults without
// error.
func (s *Service) Load(ctx context.Context, username string) State {
	state := DefaultState()

	if value, ok, err := s.store.Get(ctx, stateKey(username, keyCurrentUser)); err == nil && ok {
		var user User
		if json.Unmarshal(value, &user) == nil && user.Username != "" {
			state.User = &user
		} else {
			s.logger.Warn("discarding malformed currentUser state", "username", username)
		}
	}

	if value, ok, err := s.store.Get(ctx, stateKey(username, keyMainView)); err == nil && ok && len(value) > 0 {
		state.MainView = string(value)
	}
	if value, ok, err := s.store.Get(ctx, stateKey(username, keySubView)); err == nil && ok {
		state.SubView = string(value)
	}

	if value, ok, err := s.store.Get(ctx, stateKey(username, keyBusinessUnit)); err == nil && ok {
		var bu BusinessUnit
		if json.Unmarshal(value, &bu) == nil && bu.ID != 0 {
			state.BusinessUnit = &bu
		} else {
			s.logger.Warn("discarding malformed selectedBusinessUnit state", "username", username)
		}
	}

	return state
}

// SetView persists the current main/sub view pair
func (s *Service) SetView(ctx context.Context, username, mainView, subView string) error {
	if mainView == "" {
		mainView = DefaultMainView
	}
	if err := s.store.Set(ctx, stateKey(username, keyMainView), []byte(mainView), 0); err != nil {
		return fmt.Errorf("failed to persist main view: %w", err)
	}
	if err := s.store.Set(ctx, stateKey(username, keySubView), []byte(subView), 0); err != nil {
		return fmt.Errorf("failed to persist sub view: %w", err)
	}
	return nil
}

// SelectBusinessUnit persists the selected business unit; nil clears it
func (s *Service) SelectBusinessUnit(ctx context.Context, username string, bu *BusinessUnit) error {
	if bu == nil {
		return s.store.Delete(ctx, stateKey(username, keyBusinessUnit))
	}
	encoded, err := json.Marshal(bu)
	if err != nil {
		return fmt.Errorf("failed to encode business unit: %w", err)
	}
	if err := s.store.Set(ctx, stateKey(username, keyBusinessUnit), encoded, 0); err != nil {
		return fmt.Errorf("failed to persist business unit: %w", err)
	}
	return nil
}

// Logout tears the session down: the token-bearing key and all four
// persisted state keys are removed in one step, resetting navigation to the
// default dashboard with no business unit selected.
func (s *Service) Logout(ctx context.Context, sessionID string) (State, error) {
	sess, err := s.Resolve(ctx, sessionID)
	if err != nil {
		return DefaultState(), err
	}

	keys := []string{
		sessionKey(sess.ID),
		stateKey(sess.Username, keyCurrentUser),
		stateKey(sess.Username, keyMainView),
		stateKey(sess.Username, keySubView),
		stateKey(sess.Username, keyBusinessUnit),
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		return DefaultState(), fmt.Errorf("failed to clear session state: %w", err)
	}

	s.logger.Info("session cleared", "username", sess.Username)
	return DefaultState(), nil
}

// tokenTTL aligns the stored session lifetime with the token's exp claim
// when one is present. The parse is unverified on purpose: the token is
// opaque to this service and only its lifetime matters here.
func (s *Service) tokenTTL(token string) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s.defaultTTL
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.defaultTTL
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return s.defaultTTL
	}
	return ttl
}

func sessionKey(id string) string {
	return "session:" + id
}

func stateKey(username, field string) string {
	return "state:" + username + ":" + field
}
