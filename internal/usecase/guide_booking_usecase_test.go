package usecase

import (
	"testing"

	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func TestRespond_AcceptsPendingBooking(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	resp, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("accepted"))
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if resp.Status != string(entity.BookingStatusAccepted) {
		t.Fatalf("expected accepted, got %q", resp.Status)
	}

	// A resolved booking cannot be responded to again
	if _, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("declined")); err != ErrBookingAlreadyResolved {
		t.Fatalf("expected ErrBookingAlreadyResolved, got %v", err)
	}
}

func TestRespond_DeclineIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	if _, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("declined")); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	if _, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("accepted")); err != ErrBookingAlreadyResolved {
		t.Fatalf("expected ErrBookingAlreadyResolved after decline, got %v", err)
	}
	if _, err := env.guideSide.Complete(ctxFor(guide.ID), created.ID); err != ErrBookingNotAccepted {
		t.Fatalf("expected ErrBookingNotAccepted after decline, got %v", err)
	}
}

func TestRespond_RequiresOwningGuide(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")
	other := env.createUser(t, entity.RoleGuide, "other@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	if _, err := env.guideSide.Respond(ctxFor(other.ID), created.ID, respondRequest("accepted")); err != ErrBookingNotOwned {
		t.Fatalf("expected ErrBookingNotOwned, got %v", err)
	}

	stored := env.mustBooking(t, created.ID)
	if stored.Status != entity.BookingStatusPending {
		t.Fatalf("booking must stay pending, got %q", stored.Status)
	}
}

func TestComplete_StampsTimestampAndBumpsTrekCount(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}
	if _, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("accepted")); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	resp, err := env.guideSide.Complete(ctxFor(guide.ID), created.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if resp.Status != string(entity.BookingStatusCompleted) {
		t.Fatalf("expected completed, got %q", resp.Status)
	}
	if resp.CompletedAt == nil {
		t.Fatalf("expected completion timestamp")
	}

	profile, err := env.profileRepo.FindByUserID(env.db, guide.ID)
	if err != nil || profile == nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if profile.TrekCount != 1 {
		t.Fatalf("expected trek count 1, got %d", profile.TrekCount)
	}

	// A second completion fails the state check and must not double-count
	if _, err := env.guideSide.Complete(ctxFor(guide.ID), created.ID); err != ErrBookingNotAccepted {
		t.Fatalf("expected ErrBookingNotAccepted, got %v", err)
	}
	profile, _ = env.profileRepo.FindByUserID(env.db, guide.ID)
	if profile.TrekCount != 1 {
		t.Fatalf("trek count must stay 1, got %d", profile.TrekCount)
	}
}

func TestComplete_PendingBookingRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	if _, err := env.guideSide.Complete(ctxFor(guide.ID), created.ID); err != ErrBookingNotAccepted {
		t.Fatalf("expected ErrBookingNotAccepted for pending booking, got %v", err)
	}

	stored := env.mustBooking(t, created.ID)
	if stored.CompletedAt != nil {
		t.Fatalf("completion timestamp must only exist on completed bookings")
	}
}

func TestConfirmGuidePayment_ComputesAmountWhenPaid(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	req := bookingRequest(guide.ID, "2026-10-01")
	req.PeopleCount = 4
	created, err := env.bookings.CreateBooking(ctxFor(user.ID), req)
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	resp, err := env.guideSide.ConfirmGuidePayment(ctxFor(guide.ID), created.ID, &dto.ConfirmGuidePaymentRequest{
		PaymentStatus: "paid",
	})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !resp.GuidePaymentConfirmed {
		t.Fatalf("expected guide payment flag set")
	}
	if resp.PaymentStatus != string(entity.PaymentStatusPaid) {
		t.Fatalf("expected paid, got %q", resp.PaymentStatus)
	}
	// 4 people at the default 1500 per head
	if !resp.PaymentAmount.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("expected amount 6000, got %s", resp.PaymentAmount)
	}

	stored := env.mustBooking(t, created.ID)
	if stored.UserPaymentConfirmed {
		t.Fatalf("user flag must not move with the guide flag")
	}
	if !stored.PaymentAmount.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("persisted amount wrong: %s", stored.PaymentAmount)
	}
}

func TestConfirmGuidePayment_ExplicitAmountWins(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	amount := decimal.NewFromInt(2500)
	resp, err := env.guideSide.ConfirmGuidePayment(ctxFor(guide.ID), created.ID, &dto.ConfirmGuidePaymentRequest{
		PaymentStatus: "paid",
		PaymentAmount: &amount,
	})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !resp.PaymentAmount.Equal(amount) {
		t.Fatalf("explicit amount must win over the computed one, got %s", resp.PaymentAmount)
	}
}

func TestConfirmGuidePayment_RejectsNegativeAmount(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	amount := decimal.NewFromInt(-10)
	if _, err := env.guideSide.ConfirmGuidePayment(ctxFor(guide.ID), created.ID, &dto.ConfirmGuidePaymentRequest{
		PaymentAmount: &amount,
	}); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestUpdatePaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	resp, err := env.guideSide.UpdatePaymentMethod(ctxFor(guide.ID), created.ID, &dto.UpdatePaymentMethodRequest{
		PaymentMethod: "online",
		PaymentStatus: "partially_paid",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if resp.PaymentMethod != string(entity.PaymentMethodOnline) {
		t.Fatalf("expected online, got %q", resp.PaymentMethod)
	}
	if resp.PaymentStatus != string(entity.PaymentStatusPartiallyPaid) {
		t.Fatalf("expected partially_paid, got %q", resp.PaymentStatus)
	}

	// Payment state never touches the lifecycle status
	stored := env.mustBooking(t, created.ID)
	if stored.Status != entity.BookingStatusPending {
		t.Fatalf("lifecycle status must be untouched, got %q", stored.Status)
	}
}

func TestGetRequests_OnlyPendingForActingGuide(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, entity.RoleUser, "alice@example.com")
	bob := env.createUser(t, entity.RoleUser, "bob@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")
	other := env.createUser(t, entity.RoleGuide, "other@example.com")

	mine, err := env.bookings.CreateBooking(ctxFor(alice.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}
	if _, err := env.bookings.CreateBooking(ctxFor(bob.ID), bookingRequest(other.ID, "2026-10-01")); err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	resp, err := env.guideSide.GetRequests(ctxFor(guide.ID))
	if err != nil {
		t.Fatalf("requests lookup failed: %v", err)
	}
	if resp.Total != 1 || resp.Bookings[0].ID != mine.ID {
		t.Fatalf("expected only the acting guide's request, got %+v", resp)
	}

	// Accepted bookings leave the request inbox
	if _, err := env.guideSide.Respond(ctxFor(guide.ID), mine.ID, respondRequest("accepted")); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	resp, err = env.guideSide.GetRequests(ctxFor(guide.ID))
	if err != nil {
		t.Fatalf("requests lookup failed: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("expected empty inbox after accept, got %d", resp.Total)
	}
}

func TestSearchBookings(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, entity.RoleUser, "alice@example.com")
	bob := env.createUser(t, entity.RoleUser, "bob@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	first := bookingRequest(guide.ID, "2026-10-01")
	first.FullName = "Asha Tamang"
	if _, err := env.bookings.CreateBooking(ctxFor(alice.ID), first); err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	second := bookingRequest(guide.ID, "2026-10-02")
	second.FullName = "Bikram Rai"
	second.Destination = "Langtang Valley"
	created, err := env.bookings.CreateBooking(ctxFor(bob.ID), second)
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}
	if _, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("accepted")); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	// Status filter
	resp, err := env.guideSide.SearchBookings(ctxFor(guide.ID), &dto.SearchBookingsRequest{Status: "accepted"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if resp.Total != 1 || resp.Bookings[0].FullName != "Bikram Rai" {
		t.Fatalf("status filter wrong: %+v", resp)
	}

	// Case-insensitive free text over name and destination
	resp, err = env.guideSide.SearchBookings(ctxFor(guide.ID), &dto.SearchBookingsRequest{Query: "langtang"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if resp.Total != 1 || resp.Bookings[0].Destination != "Langtang Valley" {
		t.Fatalf("text filter wrong: %+v", resp)
	}

	// Name sort
	resp, err = env.guideSide.SearchBookings(ctxFor(guide.ID), &dto.SearchBookingsRequest{Sort: "name"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if resp.Total != 2 || resp.Bookings[0].FullName != "Asha Tamang" {
		t.Fatalf("name sort wrong: %+v", resp)
	}
}
