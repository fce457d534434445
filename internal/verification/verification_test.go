package verification_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/qrhunt/scavenger/internal/database"
	"github.com/qrhunt/scavenger/internal/store"
	"github.com/qrhunt/scavenger/internal/verification"
)

const regID = "AB123449"

func newStore(t *testing.T) (*verification.Store, *store.DocStore) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	backend, err := store.NewDocStore(ctx, db)
	if err != nil {
		db.Close()
		t.Fatalf("init doc store: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return verification.New(backend, slog.Default()), backend
}

func insert(t *testing.T, backend store.Backend, collection string, doc store.Document) {
	t.Helper()
	if _, err := backend.InsertIfAbsent(context.Background(), collection, "", doc); err != nil {
		t.Fatalf("insert into %s: %v", collection, err)
	}
}

// failingBackend fails every operation.
type failingBackend struct{}

var errDown = errors.New("store down")

func (failingBackend) FindOne(context.Context, string, store.Filter) (store.Document, error) {
	return nil, errDown
}
func (failingBackend) Find(context.Context, string, store.Filter) ([]store.Document, error) {
	return nil, errDown
}
func (failingBackend) Count(context.Context, string) (int, error) { return 0, errDown }
func (failingBackend) InsertIfAbsent(context.Context, string, string, store.Document) (bool, error) {
	return false, errDown
}
func (failingBackend) Update(context.Context, string, store.Filter, store.Document) error {
	return errDown
}
func (failingBackend) Ping(context.Context) error { return errDown }
func (failingBackend) Close() error               { return nil }

func TestVerificationEnabledDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	if !s.VerificationEnabled(ctx) {
		t.Error("missing settings should read as enabled")
	}

	broken := verification.New(failingBackend{}, slog.Default())
	if !broken.VerificationEnabled(ctx) {
		t.Error("storage error should read as enabled")
	}
}

func TestSetVerificationEnabled(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t)

	if err := s.SetVerificationEnabled(ctx, false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if s.VerificationEnabled(ctx) {
		t.Error("expected disabled")
	}
	if err := s.SetVerificationEnabled(ctx, true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !s.VerificationEnabled(ctx) {
		t.Error("expected enabled")
	}

	n, err := backend.Count(ctx, store.Settings)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("settings records = %d, want 1", n)
	}
}

func TestIsVerified(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t)

	insert(t, backend, store.Payments, store.Document{"registrationId": "PAID0049", "status": "PAID"})
	insert(t, backend, store.Payments, store.Document{"registrationid": "LOWER049", "status": "PAID"})
	insert(t, backend, store.Payments, store.Document{"registrationId": "PEND0049", "status": "PENDING"})

	tests := []struct {
		id   string
		want bool
	}{
		{"PAID0049", true},
		{"  paid0049 ", true},
		{"LOWER049", true},
		{"lower049", true},
		{"PEND0049", false},
		{"NONE0049", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := s.IsVerified(ctx, tt.id); got != tt.want {
				t.Errorf("IsVerified(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestIsVerifiedWhenDisabled(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	if err := s.SetVerificationEnabled(ctx, false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if !s.IsVerified(ctx, "ANYTHING") {
		t.Error("every id should pass while verification is disabled")
	}
}

func TestIsVerifiedFailsClosed(t *testing.T) {
	s := verification.New(failingBackend{}, slog.Default())
	if s.IsVerified(context.Background(), regID) {
		t.Error("storage error must not verify")
	}
}

func TestFindPaidPayment(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t)

	insert(t, backend, store.Payments, store.Document{
		"registrationid": regID,
		"status":         "PAID",
		"name":           "Ada",
		"amount":         250,
		"orderId":        "order_1",
	})

	p, err := s.FindPaidPayment(ctx, "ab123449")
	if err != nil {
		t.Fatalf("FindPaidPayment: %v", err)
	}
	if p.RegistrationID != regID {
		t.Errorf("registration id = %q, want %q", p.RegistrationID, regID)
	}
	if p.TransactionID != "order_1" || p.Amount != 250 || p.Name != "Ada" {
		t.Errorf("unexpected payment: %+v", p)
	}
	if p.Email != "N/A" {
		t.Errorf("email = %q, want N/A", p.Email)
	}

	_, err = s.FindPaidPayment(ctx, "NONE0049")
	if !errors.Is(err, verification.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRecordVerifiedUser(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t)

	if !s.RecordVerifiedUser(ctx, " ab123449", "Ada", "ada@example.com", "") {
		t.Fatal("first record failed")
	}
	if !s.RecordVerifiedUser(ctx, regID, "", "", "555") {
		t.Fatal("second record failed")
	}

	users, err := s.ListAllVerifiedUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("verified users = %d, want 1", len(users))
	}
	u := users[0]
	if u.RegistrationID != regID || !u.Verified || u.Name != "Ada" {
		t.Errorf("unexpected user: %+v", u)
	}

	insert(t, backend, store.VerifiedUsers, store.Document{
		"registrationId": "OLD12349",
		"name":           "Grace",
		"verified":       false,
	})
	if !s.RecordVerifiedUser(ctx, "OLD12349", "", "grace@example.com", "") {
		t.Fatal("flip record failed")
	}
	doc, err := backend.FindOne(ctx, store.VerifiedUsers, store.Filter{"registrationId": "OLD12349"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if v, _ := doc.Bool("verified"); !v {
		t.Error("existing record not flipped to verified")
	}
	if name, _ := doc.String("name"); name != "Grace" {
		t.Errorf("name = %q, want stored name kept", name)
	}
	if email, _ := doc.String("email"); email != "grace@example.com" {
		t.Errorf("email = %q, want new email", email)
	}
	if _, ok := doc.Time("updatedAt"); !ok {
		t.Error("updatedAt not set")
	}

	broken := verification.New(failingBackend{}, slog.Default())
	if broken.RecordVerifiedUser(ctx, regID, "", "", "") {
		t.Error("storage failure should report false")
	}
}

func TestMilestonesAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t)

	done, err := s.HasThreeCompleted(ctx, regID)
	if err != nil || done {
		t.Fatalf("before: done=%v err=%v", done, err)
	}

	for i := 0; i < 3; i++ {
		if err := s.RecordThreeCompleted(ctx, "ab123449"); err != nil {
			t.Fatalf("record three: %v", err)
		}
		if err := s.RecordFullCompleted(ctx, regID); err != nil {
			t.Fatalf("record full: %v", err)
		}
	}

	for _, coll := range []string{store.ThreeCompletion, store.FullCompletion} {
		n, err := backend.Count(ctx, coll)
		if err != nil {
			t.Fatalf("count %s: %v", coll, err)
		}
		if n != 1 {
			t.Errorf("%s records = %d, want 1", coll, n)
		}
	}

	if done, err := s.HasThreeCompleted(ctx, regID); err != nil || !done {
		t.Errorf("three: done=%v err=%v", done, err)
	}
	if done, err := s.HasFullCompleted(ctx, " ab123449 "); err != nil || !done {
		t.Errorf("full: done=%v err=%v", done, err)
	}
}

func TestListingsDefaultMissingFields(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t)

	insert(t, backend, store.Payments, store.Document{"registrationId": regID, "status": "PAID", "amount": 100})
	insert(t, backend, store.Payments, store.Document{"status": "PAID"})
	insert(t, backend, store.Payments, store.Document{"registrationId": "PEND0049", "status": "FAILED"})
	insert(t, backend, store.Users, store.Document{"fullName": "Ada"})

	payments, err := s.ListAllPayments(ctx)
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	if len(payments) != 3 {
		t.Errorf("payments = %d, want 3", len(payments))
	}

	paid, err := s.ListPaidUsers(ctx)
	if err != nil {
		t.Fatalf("paid users: %v", err)
	}
	if len(paid) != 2 {
		t.Fatalf("paid users = %d, want 2", len(paid))
	}
	if paid[1].RegistrationID != "N/A" || paid[1].FullName != "N/A" || paid[1].Amount != 0 {
		t.Errorf("defaults not applied: %+v", paid[1])
	}
	if !paid[1].Verified || paid[1].Timestamp.IsZero() {
		t.Errorf("paid user should be verified with a timestamp: %+v", paid[1])
	}

	users, err := s.ListAllUsers(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users = %d, want 1", len(users))
	}
	u := users[0]
	if u.FullName != "Ada" || u.RegistrationID != "N/A" || u.Email != "N/A" || u.Verified {
		t.Errorf("unexpected user: %+v", u)
	}

	broken := verification.New(failingBackend{}, slog.Default())
	if _, err := broken.ListAllUsers(ctx); !errors.Is(err, errDown) {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}
