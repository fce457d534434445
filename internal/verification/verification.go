// Package verification records who has paid for the hunt, who has been
// verified, and which progress milestones each registration has reached.
//
// Reads of the settings flag fail open (verification stays enabled), while
// payment checks fail closed: a storage error never verifies anyone.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qrhunt/scavenger/internal/hunt"
	"github.com/qrhunt/scavenger/internal/store"
)

const (
	StatusPaid = "PAID"

	settingsID = "verification_settings"
	notAvail   = "N/A"
)

var ErrNotFound = errors.New("no paid payment")

// registrationFields are the spellings of the registration ID field found
// in stored payment documents.
var registrationFields = []string{"registrationId", "registrationid"}

type Store struct {
	backend store.Backend
	logger  *slog.Logger
	now     func() time.Time
}

func New(backend store.Backend, logger *slog.Logger) *Store {
	return &Store{backend: backend, logger: logger, now: time.Now}
}

// VerificationEnabled reports the settings flag. A missing record or a
// storage error both read as enabled.
func (s *Store) VerificationEnabled(ctx context.Context) bool {
	doc, err := s.backend.FindOne(ctx, store.Settings, store.Filter{"id": settingsID})
	if errors.Is(err, store.ErrNotFound) {
		return true
	}
	if err != nil {
		s.logger.Error("reading verification settings", "error", err)
		return true
	}
	enabled, ok := doc.Bool("verificationEnabled")
	if !ok {
		return true
	}
	return enabled
}

func (s *Store) SetVerificationEnabled(ctx context.Context, enabled bool) error {
	inserted, err := s.backend.InsertIfAbsent(ctx, store.Settings, settingsID, store.Document{
		"id":                  settingsID,
		"verificationEnabled": enabled,
	})
	if err != nil {
		return fmt.Errorf("saving verification settings: %w", err)
	}
	if inserted {
		return nil
	}
	err = s.backend.Update(ctx, store.Settings, store.Filter{"id": settingsID}, store.Document{
		"verificationEnabled": enabled,
	})
	if err != nil {
		return fmt.Errorf("saving verification settings: %w", err)
	}
	return nil
}

// FindPaidPayment returns the PAID payment for id under either spelling of
// the registration field.
func (s *Store) FindPaidPayment(ctx context.Context, id string) (Payment, error) {
	normalized := hunt.NormalizeRegistrationID(id)
	for _, field := range registrationFields {
		doc, err := s.backend.FindOne(ctx, store.Payments, store.Filter{
			field:    normalized,
			"status": StatusPaid,
		})
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return Payment{}, fmt.Errorf("finding payment for %s: %w", normalized, err)
		}
		return paymentFromDoc(doc, s.now()), nil
	}
	return Payment{}, ErrNotFound
}

// IsVerified reports whether id may access the hunt. It is always true
// while verification is disabled, and false on any storage error.
func (s *Store) IsVerified(ctx context.Context, id string) bool {
	if !s.VerificationEnabled(ctx) {
		return true
	}
	_, err := s.FindPaidPayment(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		s.logger.Error("checking verification", "registration_id", hunt.NormalizeRegistrationID(id), "error", err)
		return false
	}
	return true
}

// RecordVerifiedUser marks id as verified, creating the record on first
// use. An existing unverified record is flipped to verified, keeping stored
// contact details where the new ones are empty. It returns false only when
// the store fails.
func (s *Store) RecordVerifiedUser(ctx context.Context, id, name, email, phone string) bool {
	normalized := hunt.NormalizeRegistrationID(id)
	filter := store.Filter{"registrationId": normalized}

	existing, err := s.backend.FindOne(ctx, store.VerifiedUsers, filter)
	switch {
	case err == nil:
		if verified, _ := existing.Bool("verified"); verified {
			return true
		}
		err = s.backend.Update(ctx, store.VerifiedUsers, filter, store.Document{
			"verified":  true,
			"name":      orExisting(name, existing, "name"),
			"email":     orExisting(email, existing, "email"),
			"phone":     orExisting(phone, existing, "phone"),
			"updatedAt": s.now(),
		})
		if err != nil {
			s.logger.Error("updating verified user", "registration_id", normalized, "error", err)
			return false
		}
		return true

	case errors.Is(err, store.ErrNotFound):
		_, err = s.backend.InsertIfAbsent(ctx, store.VerifiedUsers, normalized, store.Document{
			"registrationId": normalized,
			"name":           name,
			"email":          email,
			"phone":          phone,
			"verified":       true,
			"timestamp":      s.now(),
		})
		if err != nil {
			s.logger.Error("creating verified user", "registration_id", normalized, "error", err)
			return false
		}
		s.logger.Info("verified user created", "registration_id", normalized)
		return true

	default:
		s.logger.Error("finding verified user", "registration_id", normalized, "error", err)
		return false
	}
}

func orExisting(v string, doc store.Document, key string) string {
	if v != "" {
		return v
	}
	old, _ := doc.String(key)
	return old
}

func (s *Store) RecordThreeCompleted(ctx context.Context, id string) error {
	return s.recordMilestone(ctx, store.ThreeCompletion, id)
}

func (s *Store) RecordFullCompleted(ctx context.Context, id string) error {
	return s.recordMilestone(ctx, store.FullCompletion, id)
}

func (s *Store) HasThreeCompleted(ctx context.Context, id string) (bool, error) {
	return s.hasMilestone(ctx, store.ThreeCompletion, id)
}

func (s *Store) HasFullCompleted(ctx context.Context, id string) (bool, error) {
	return s.hasMilestone(ctx, store.FullCompletion, id)
}

// recordMilestone writes at most one record per registration ID into
// collection.
func (s *Store) recordMilestone(ctx context.Context, collection, id string) error {
	normalized := hunt.NormalizeRegistrationID(id)

	done, err := s.hasMilestone(ctx, collection, normalized)
	if err != nil || done {
		return err
	}
	_, err = s.backend.InsertIfAbsent(ctx, collection, normalized, store.Document{
		"registrationId": normalized,
		"completedAt":    s.now(),
	})
	if err != nil {
		return fmt.Errorf("recording %s for %s: %w", collection, normalized, err)
	}
	return nil
}

func (s *Store) hasMilestone(ctx context.Context, collection, id string) (bool, error) {
	normalized := hunt.NormalizeRegistrationID(id)
	_, err := s.backend.FindOne(ctx, collection, store.Filter{"registrationId": normalized})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s for %s: %w", collection, normalized, err)
	}
	return true, nil
}
