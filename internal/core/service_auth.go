package core

import (
	"carecore/pkg/domain"
	"context"
)

// Login authenticates by email and password. The credential comparison
// mirrors the system of record: passwords are stored and compared as
// entered. Any mismatch returns the same generic error so callers cannot
// distinguish an unknown email from a wrong password. On success the public
// identity is cached in the session.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	var public domain.User
	err := s.run(ctx, "login", "", func() (string, error) {
		var found domain.User
		ok := false
		viewErr := s.store.View(ctx, func(view TransactionView) error {
			found, ok = view.FindUserByEmail(email)
			return nil
		})
		if viewErr != nil {
			return "", viewErr
		}
		if !ok || found.Password != password {
			return "", ErrInvalidCredentials
		}
		public = found.Public()
		s.setSession(public)
		return found.ID, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return public, nil
}

// Signup registers a new account and logs it in. Duplicate emails surface as
// a domain.DuplicateEmailError without touching the user collection.
func (s *Service) Signup(ctx context.Context, user domain.User) (domain.User, AppState, error) {
	var created domain.User
	state, err := s.mutate(ctx, "signup", func(tx Transaction) (string, error) {
		u, err := tx.CreateUser(user)
		created = u
		return u.ID, err
	})
	if err != nil {
		return domain.User{}, state, err
	}
	public := created.Public()
	s.setSession(public)
	return public, state, nil
}

// UpdateCurrentUser replaces the authenticated user's account record and
// refreshes the cached session identity.
func (s *Service) UpdateCurrentUser(ctx context.Context, user domain.User) (domain.User, AppState, error) {
	if _, ok := s.CurrentUser(); !ok {
		return domain.User{}, AppState{}, ErrNotAuthenticated
	}

	state, err := s.mutate(ctx, "update_user", func(tx Transaction) (string, error) {
		if !tx.ReplaceUser(user) {
			return user.ID, ErrNotFound{Entity: "user", ID: user.ID}
		}
		return user.ID, nil
	})
	if err != nil {
		return domain.User{}, state, err
	}
	public := user.Public()
	s.setSession(public)
	return public, state, nil
}

// CurrentUser returns the cached public identity, when authenticated.
func (s *Service) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.User{}, false
	}
	return *s.session, true
}

// Logout clears the in-memory session and the session cache.
func (s *Service) Logout() {
	s.mu.Lock()
	s.session = nil
	cache := s.sessionCache
	s.mu.Unlock()
	if cache != nil {
		if err := cache.Clear(); err != nil {
			s.logger.Warn("session cache clear failed", "error", err)
		}
	}
}

func (s *Service) setSession(public domain.User) {
	// The session never holds the credential.
	public.Password = ""
	s.mu.Lock()
	s.session = &public
	cache := s.sessionCache
	s.mu.Unlock()
	if cache != nil {
		if err := cache.Save(public); err != nil {
			s.logger.Warn("session cache save failed", "error", err)
		}
	}
}
