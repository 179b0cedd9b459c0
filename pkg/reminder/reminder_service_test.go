package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/entities"
)

type mockUserRepo struct {
	users []*entities.User
}

func (r *mockUserRepo) CreateUser(_ context.Context, user *entities.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *mockUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *mockUserRepo) GetUserByIdentityRef(_ context.Context, _ string) (*entities.User, error) {
	return nil, errors.New("not found")
}

func (r *mockUserRepo) GetUserByEmail(_ context.Context, _ string) (*entities.User, error) {
	return nil, errors.New("not found")
}

func (r *mockUserRepo) UpdateUser(_ context.Context, _ *entities.User) error { return nil }

func (r *mockUserRepo) GetUsersWithEmail(_ context.Context) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		if u.Email != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockBillRepo struct {
	bills map[string]*entities.Bill
}

func newMockBillRepo() *mockBillRepo {
	return &mockBillRepo{bills: map[string]*entities.Bill{}}
}

func (r *mockBillRepo) CreateBill(_ context.Context, bill *entities.Bill) error {
	r.bills[bill.ID.String()] = bill
	return nil
}

func (r *mockBillRepo) GetBillByID(_ context.Context, id string, userID string) (*entities.Bill, error) {
	b, ok := r.bills[id]
	if !ok || b.UserID.String() != userID {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *mockBillRepo) UpdateBill(_ context.Context, bill *entities.Bill) error {
	r.bills[bill.ID.String()] = bill
	return nil
}

func (r *mockBillRepo) DeleteBill(_ context.Context, id string, _ string) error {
	delete(r.bills, id)
	return nil
}

func (r *mockBillRepo) GetBills(_ context.Context, userID string) ([]*entities.Bill, error) {
	var out []*entities.Bill
	for _, b := range r.bills {
		if b.UserID.String() == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *mockBillRepo) GetBillsByExpiryRange(_ context.Context, userID string, startDate, endDate time.Time) ([]*entities.Bill, error) {
	var out []*entities.Bill
	for _, b := range r.bills {
		if b.UserID.String() == userID && !b.ExpiryDate.Before(startDate) && !b.ExpiryDate.After(endDate) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *mockBillRepo) GetReminderCandidates(_ context.Context, userID string, startDate, endDate time.Time) ([]*entities.Bill, error) {
	var out []*entities.Bill
	for _, b := range r.bills {
		if b.UserID.String() != userID || b.ReminderSent {
			continue
		}
		if b.Status != domain.BillStatusPending && b.Status != domain.BillStatusVerified {
			continue
		}
		if b.ExpiryDate.Before(startDate) || b.ExpiryDate.After(endDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *mockBillRepo) MarkReminderSent(_ context.Context, id string) error {
	b, ok := r.bills[id]
	if !ok {
		return errors.New("not found")
	}
	b.ReminderSent = true
	return nil
}

func (r *mockBillRepo) MarkExpired(_ context.Context, ids []string) error {
	for _, id := range ids {
		if b, ok := r.bills[id]; ok {
			b.Status = domain.BillStatusExpired
		}
	}
	return nil
}

type mockMailer struct {
	sent    []string
	failFor map[string]bool
}

func (m *mockMailer) Send(toEmail string, _ string, _ string) error {
	if m.failFor[toEmail] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func seedUser(repo *mockUserRepo, email string) *entities.User {
	u := &entities.User{ID: uuid.New(), Email: email, FullName: "Test User"}
	repo.users = append(repo.users, u)
	return u
}

func seedBill(repo *mockBillRepo, userID uuid.UUID, product string, expiry time.Time, leadDays int) *entities.Bill {
	b := &entities.Bill{
		ID:                 uuid.New(),
		UserID:             userID,
		ProductName:        product,
		PurchaseDate:       expiry.AddDate(-1, 0, 0),
		ExpiryDate:         expiry,
		Status:             domain.BillStatusVerified,
		ReminderDaysBefore: leadDays,
	}
	repo.bills[b.ID.String()] = b
	return b
}

func TestSweepSendsWithinLeadTime(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	userRepo := &mockUserRepo{}
	billRepo := newMockBillRepo()
	mailer := &mockMailer{}

	u := seedUser(userRepo, "owner@example.com")
	due := seedBill(billRepo, u.ID, "Sony WH-1000XM5", now.AddDate(0, 0, 10), 30)
	notYet := seedBill(billRepo, u.ID, "Dyson V11", now.AddDate(0, 0, 10), 7)
	lapsed := seedBill(billRepo, u.ID, "Old Toaster", now.AddDate(0, 0, -1), 30)

	service := NewReminderService(userRepo, billRepo, mailer).(*reminderService)
	sent, err := service.sweepAt(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"owner@example.com"}, mailer.sent)
	assert.True(t, due.ReminderSent)
	assert.False(t, notYet.ReminderSent)
	assert.False(t, lapsed.ReminderSent)
}

func TestSweepIsIdempotentAcrossRuns(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	userRepo := &mockUserRepo{}
	billRepo := newMockBillRepo()
	mailer := &mockMailer{}

	u := seedUser(userRepo, "owner@example.com")
	seedBill(billRepo, u.ID, "Sony WH-1000XM5", now.AddDate(0, 0, 5), 30)

	service := NewReminderService(userRepo, billRepo, mailer).(*reminderService)

	sent, err := service.sweepAt(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = service.sweepAt(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, mailer.sent, 1)
}

func TestSweepLeadTimeBoundary(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	userRepo := &mockUserRepo{}
	billRepo := newMockBillRepo()
	mailer := &mockMailer{}

	u := seedUser(userRepo, "owner@example.com")
	atBoundary := seedBill(billRepo, u.ID, "Fridge", now.AddDate(0, 0, 30), 30)

	service := NewReminderService(userRepo, billRepo, mailer).(*reminderService)
	sent, err := service.sweepAt(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.True(t, atBoundary.ReminderSent)
}

func TestSweepDispatchFailureLeavesBillArmed(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	userRepo := &mockUserRepo{}
	billRepo := newMockBillRepo()
	mailer := &mockMailer{failFor: map[string]bool{"broken@example.com": true}}

	broken := seedUser(userRepo, "broken@example.com")
	healthy := seedUser(userRepo, "healthy@example.com")
	failed := seedBill(billRepo, broken.ID, "Sony WH-1000XM5", now.AddDate(0, 0, 5), 30)
	seedBill(billRepo, healthy.ID, "Dyson V11", now.AddDate(0, 0, 5), 30)

	service := NewReminderService(userRepo, billRepo, mailer).(*reminderService)
	sent, err := service.sweepAt(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.False(t, failed.ReminderSent)

	// The failed dispatch stays eligible and succeeds on the next run.
	mailer.failFor = nil
	sent, err = service.sweepAt(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.True(t, failed.ReminderSent)
}
