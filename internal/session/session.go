package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/store"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidLogin covers both unknown identifiers and bad passwords.
	ErrInvalidLogin = errors.New("invalid username or password")
	// ErrExists is returned when the username or email is already taken.
	ErrExists = errors.New("username or email already registered")
)

// Service holds at most one current user for the process lifetime and
// persists it so a restart restores the session. All mutation goes through
// this service; tests construct it over an in-memory store.
type Service struct {
	store *store.Store

	mu       sync.RWMutex
	current  *models.User
	onLogin  []func(models.User)
	onLogout []func(models.User)
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// OnLogin registers a hook fired after a successful login or registration.
func (s *Service) OnLogin(fn func(models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogin = append(s.onLogin, fn)
}

// OnLogout registers a hook fired when the signed-in user logs out.
func (s *Service) OnLogout(fn func(models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Hydrate restores the persisted session snapshot at startup.
func (s *Service) Hydrate(ctx context.Context) error {
	user, err := s.store.CurrentUser(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	if user != nil {
		log.Printf("Restored session for user %s", user.ID)
	}
	return nil
}

// Current returns a copy of the signed-in user, or nil.
func (s *Service) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Login matches the identifier against username or email and verifies the
// password. Failure mutates nothing.
func (s *Service) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		u := users[i]
		if u.Username != identifier && u.Email != identifier {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return nil, ErrInvalidLogin
		}
		if err := s.signIn(ctx, u); err != nil {
			return nil, err
		}
		return &u, nil
	}
	return nil, ErrInvalidLogin
}

// Register appends a new user and signs the caller in. The username and
// email must be unused.
func (s *Service) Register(ctx context.Context, user models.User) (*models.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, ErrExists
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.ID = uuid.NewString()
	user.Password = string(hashed)

	users = append(users, user)
	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := s.signIn(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Registered user %s (%s)", user.ID, user.Role)
	return &user, nil
}

// Logout clears the in-memory and persisted session. Calling it without a
// signed-in user is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	user := s.current
	s.current = nil
	hooks := append([]func(models.User){}, s.onLogout...)
	s.mu.Unlock()

	if user == nil {
		return nil
	}
	if err := s.store.ClearCurrentUser(ctx); err != nil {
		return err
	}
	for _, fn := range hooks {
		fn(*user)
	}
	return nil
}

// UpdateCurrent merges non-empty fields into the signed-in user's record.
// No-op when nobody is signed in.
func (s *Service) UpdateCurrent(ctx context.Context, partial models.User) (*models.User, error) {
	current := s.Current()
	if current == nil {
		return nil, nil
	}
	return s.UpdateUser(ctx, current.ID, partial)
}

// UpdateUser merges non-empty fields into the stored record for id and keeps
// the persisted session snapshot in sync when it is the signed-in user.
func (s *Service) UpdateUser(ctx context.Context, id string, partial models.User) (*models.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	index := -1
	for i := range users {
		if users[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, nil
	}

	merged := merge(users[index], partial)
	users[index] = merged
	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, err
	}

	s.mu.Lock()
	isCurrent := s.current != nil && s.current.ID == id
	if isCurrent {
		s.current = &merged
	}
	s.mu.Unlock()
	if isCurrent {
		if err := s.store.SaveCurrentUser(ctx, &merged); err != nil {
			return nil, err
		}
	}
	return &merged, nil
}

// UserByID looks up a user record without touching the session.
func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *Service) signIn(ctx context.Context, user models.User) error {
	if err := s.store.SaveCurrentUser(ctx, &user); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = &user
	hooks := append([]func(models.User){}, s.onLogin...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(user)
	}
	return nil
}

func merge(base, partial models.User) models.User {
	set := func(dst *string, src string) {
		if strings.TrimSpace(src) != "" {
			*dst = src
		}
	}
	set(&base.Name, partial.Name)
	set(&base.Phone, partial.Phone)
	set(&base.Email, partial.Email)
	set(&base.Address, partial.Address)
	set(&base.UpiID, partial.UpiID)
	set(&base.UpiQrCode, partial.UpiQrCode)
	set(&base.BankName, partial.BankName)
	set(&base.AccountNumber, partial.AccountNumber)
	set(&base.IfscCode, partial.IfscCode)
	return base
}
