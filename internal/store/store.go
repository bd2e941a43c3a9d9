package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/kv"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
)

const (
	usersKey         = "paymybill_users"
	rentersKey       = "paymybill_renters"
	paymentsKey      = "paymybill_payments"
	notificationsKey = "paymybill_notifications"
	initializedKey   = "paymybill_initialized"
	currentUserKey   = "paymybill_current_user"
)

// Store owns serialization of the four record collections. Each collection
// lives as one JSON array under a fixed key; a save overwrites the whole
// snapshot. A missing key reads as an empty collection, a decode failure is
// an error, never silently replaced by fixtures.
type Store struct {
	kv kv.Store
}

func New(kv kv.Store) *Store {
	return &Store{kv: kv}
}

func load[T any](ctx context.Context, s kv.Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return records, nil
}

func save[T any](ctx context.Context, s kv.Store, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	return load[models.User](ctx, s.kv, usersKey)
}

func (s *Store) SaveUsers(ctx context.Context, users []models.User) error {
	return save(ctx, s.kv, usersKey, users)
}

func (s *Store) Renters(ctx context.Context) ([]models.Renter, error) {
	return load[models.Renter](ctx, s.kv, rentersKey)
}

func (s *Store) SaveRenters(ctx context.Context, renters []models.Renter) error {
	return save(ctx, s.kv, rentersKey, renters)
}

func (s *Store) Payments(ctx context.Context) ([]models.Payment, error) {
	return load[models.Payment](ctx, s.kv, paymentsKey)
}

func (s *Store) SavePayments(ctx context.Context, payments []models.Payment) error {
	return save(ctx, s.kv, paymentsKey, payments)
}

func (s *Store) Notifications(ctx context.Context) ([]models.Notification, error) {
	return load[models.Notification](ctx, s.kv, notificationsKey)
}

func (s *Store) SaveNotifications(ctx context.Context, notifications []models.Notification) error {
	return save(ctx, s.kv, notificationsKey, notifications)
}

// CurrentUser returns the persisted session snapshot, or nil when nobody is
// signed in.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.kv.Get(ctx, currentUserKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", currentUserKey, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode %s: %w", currentUserKey, err)
	}
	return &user, nil
}

func (s *Store) SaveCurrentUser(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s: %w", currentUserKey, err)
	}
	if err := s.kv.Set(ctx, currentUserKey, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", currentUserKey, err)
	}
	return nil
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.kv.Delete(ctx, currentUserKey)
}

// Initialize seeds the sample dataset on first run. Subsequent calls are
// no-ops, detected through a separate flag key.
func (s *Store) Initialize(ctx context.Context) error {
	_, ok, err := s.kv.Get(ctx, initializedKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", initializedKey, err)
	}
	if ok {
		return nil
	}

	users, err := seedUsers()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.SaveUsers(ctx, users); err != nil {
		return err
	}
	if err := s.SaveRenters(ctx, seedRenters()); err != nil {
		return err
	}
	if err := s.SavePayments(ctx, seedPayments()); err != nil {
		return err
	}
	if err := s.SaveNotifications(ctx, seedNotifications()); err != nil {
		return err
	}
	return s.kv.Set(ctx, initializedKey, "true")
}
