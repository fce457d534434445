package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/qrhunt/scavenger/internal/store"
)

// Payment is a payment record with both registration field spellings folded
// into RegistrationID.
type Payment struct {
	RegistrationID string    `json:"registrationId"`
	Status         string    `json:"status"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Amount         float64   `json:"amount"`
	TransactionID  string    `json:"transactionId"`
	BankingName    string    `json:"bankingName"`
	Timestamp      time.Time `json:"timestamp"`
}

type VerifiedUser struct {
	RegistrationID string     `json:"registrationId"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Verified       bool       `json:"verified"`
	Timestamp      time.Time  `json:"timestamp"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// PaidUser is the admin view of a PAID payment.
type PaidUser struct {
	RegistrationID string    `json:"registrationId"`
	FullName       string    `json:"fullName"`
	TransactionID  string    `json:"transactionId"`
	Amount         float64   `json:"amount"`
	BankingName    string    `json:"bankingName"`
	Verified       bool      `json:"verified"`
	Timestamp      time.Time `json:"timestamp"`
}

// User is a registered participant as listed for admins.
type User struct {
	RegistrationID string    `json:"registrationId"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Verified       bool      `json:"verified"`
	Timestamp      time.Time `json:"timestamp"`
}

func (s *Store) ListAllPayments(ctx context.Context) ([]Payment, error) {
	docs, err := s.backend.Find(ctx, store.Payments, nil)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	now := s.now()
	out := make([]Payment, len(docs))
	for i, d := range docs {
		out[i] = paymentFromDoc(d, now)
	}
	return out, nil
}

func (s *Store) ListAllVerifiedUsers(ctx context.Context) ([]VerifiedUser, error) {
	docs, err := s.backend.Find(ctx, store.VerifiedUsers, nil)
	if err != nil {
		return nil, fmt.Errorf("listing verified users: %w", err)
	}
	now := s.now()
	out := make([]VerifiedUser, len(docs))
	for i, d := range docs {
		u := VerifiedUser{
			RegistrationID: str(d, "registrationId"),
			Name:           str(d, "name"),
			Email:          str(d, "email"),
			Phone:          str(d, "phone"),
			Timestamp:      timeOr(d, "timestamp", now),
		}
		u.Verified, _ = d.Bool("verified")
		if t, ok := d.Time("updatedAt"); ok {
			u.UpdatedAt = &t
		}
		out[i] = u
	}
	return out, nil
}

// ListPaidUsers projects every PAID payment into the admin's paid-user view.
func (s *Store) ListPaidUsers(ctx context.Context) ([]PaidUser, error) {
	docs, err := s.backend.Find(ctx, store.Payments, store.Filter{"status": StatusPaid})
	if err != nil {
		return nil, fmt.Errorf("listing paid users: %w", err)
	}
	now := s.now()
	out := make([]PaidUser, len(docs))
	for i, d := range docs {
		p := paymentFromDoc(d, now)
		out[i] = PaidUser{
			RegistrationID: p.RegistrationID,
			FullName:       p.Name,
			TransactionID:  p.TransactionID,
			Amount:         p.Amount,
			BankingName:    p.BankingName,
			Verified:       true,
			Timestamp:      p.Timestamp,
		}
	}
	return out, nil
}

func (s *Store) ListAllUsers(ctx context.Context) ([]User, error) {
	docs, err := s.backend.Find(ctx, store.Users, nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	now := s.now()
	out := make([]User, len(docs))
	for i, d := range docs {
		u := User{
			RegistrationID: str(d, "registrationId"),
			FullName:       str(d, "fullName"),
			Email:          str(d, "email"),
			Phone:          str(d, "phone"),
			Timestamp:      timeOr(d, "timestamp", now),
		}
		u.Verified, _ = d.Bool("verified")
		out[i] = u
	}
	return out, nil
}

func paymentFromDoc(d store.Document, now time.Time) Payment {
	p := Payment{
		RegistrationID: str(d, "registrationId", "registrationid"),
		Status:         str(d, "status"),
		Name:           str(d, "name"),
		Email:          str(d, "email"),
		Phone:          str(d, "phone"),
		TransactionID:  str(d, "orderId", "transactionId"),
		BankingName:    str(d, "bankingName"),
		Timestamp:      timeOr(d, "timestamp", now),
	}
	p.Amount, _ = d.Number("amount")
	return p
}

// str returns the first non-empty string among keys, or "N/A".
func str(d store.Document, keys ...string) string {
	for _, k := range keys {
		if v, ok := d.String(k); ok {
			return v
		}
	}
	return notAvail
}

func timeOr(d store.Document, key string, def time.Time) time.Time {
	if t, ok := d.Time(key); ok {
		return t
	}
	return def
}
