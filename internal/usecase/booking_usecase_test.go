package usecase

import (
	"testing"

	"neptrip-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func TestCreateBooking_OpensAsPending(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	resp, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("expected booking created, got %v", err)
	}

	if resp.Status != string(entity.BookingStatusPending) {
		t.Fatalf("expected status pending, got %q", resp.Status)
	}
	if resp.PaymentStatus != string(entity.PaymentStatusUnpaid) {
		t.Fatalf("expected payment status unpaid, got %q", resp.PaymentStatus)
	}
	if resp.UserPaymentConfirmed || resp.GuidePaymentConfirmed {
		t.Fatalf("expected both payment flags unset")
	}
	if resp.CompletedAt != nil {
		t.Fatalf("expected no completion timestamp on a new booking")
	}

	stored := env.mustBooking(t, resp.ID)
	if stored.SchemaVersion != entity.BookingSchemaVersion {
		t.Fatalf("expected schema version %d, got %d", entity.BookingSchemaVersion, stored.SchemaVersion)
	}
	if stored.GuideID != guide.ID || stored.UserID != user.ID {
		t.Fatalf("booking parties not persisted correctly")
	}
}

func TestCreateBooking_RejectsSecondActiveBooking(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")
	other := env.createUser(t, entity.RoleGuide, "other-guide@example.com")

	if _, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01")); err != nil {
		t.Fatalf("first booking should succeed: %v", err)
	}

	// Different guide, date and destination: still blocked while the
	// first booking is unresolved.
	req := bookingRequest(other.ID, "2026-12-24")
	req.Destination = "Langtang Valley"
	if _, err := env.bookings.CreateBooking(ctxFor(user.ID), req); err != ErrOngoingTrekExists {
		t.Fatalf("expected ErrOngoingTrekExists, got %v", err)
	}
}

func TestCreateBooking_AllowedAfterResolution(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	first, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("first booking should succeed: %v", err)
	}

	if _, err := env.bookingRepo.UpdateStatus(env.db, first.ID, entity.BookingStatusPending, entity.BookingStatusDeclined); err != nil {
		t.Fatalf("failed to decline: %v", err)
	}

	if _, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-05")); err != nil {
		t.Fatalf("expected booking allowed after decline, got %v", err)
	}
}

func TestCreateBooking_RejectsGuideDateConflict(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, entity.RoleUser, "alice@example.com")
	bob := env.createUser(t, entity.RoleUser, "bob@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	if _, err := env.bookings.CreateBooking(ctxFor(alice.ID), bookingRequest(guide.ID, "2026-10-01")); err != nil {
		t.Fatalf("first booking should succeed: %v", err)
	}

	if _, err := env.bookings.CreateBooking(ctxFor(bob.ID), bookingRequest(guide.ID, "2026-10-01")); err != ErrGuideUnavailable {
		t.Fatalf("expected ErrGuideUnavailable, got %v", err)
	}

	// Same guide on another date is fine
	if _, err := env.bookings.CreateBooking(ctxFor(bob.ID), bookingRequest(guide.ID, "2026-10-02")); err != nil {
		t.Fatalf("different date should succeed: %v", err)
	}
}

func TestCreateBooking_InvalidDate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	for _, date := range []string{"01-10-2026", "2026/10/01", "2026-13-40", "tomorrow"} {
		if _, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, date)); err != ErrInvalidDateFormat {
			t.Fatalf("date %q: expected ErrInvalidDateFormat, got %v", date, err)
		}
	}
}

func TestCreateBooking_UnknownGuide(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	env.createUser(t, entity.RoleGuide, "guide@example.com")

	req := bookingRequest(uuid.New(), "2026-10-01")
	if _, err := env.bookings.CreateBooking(ctxFor(user.ID), req); err != ErrGuideNotFound {
		t.Fatalf("expected ErrGuideNotFound for unknown id, got %v", err)
	}

	// A non-guide account cannot be booked
	req.GuideID = user.ID.String()
	if _, err := env.bookings.CreateBooking(ctxFor(user.ID), req); err != ErrGuideNotFound {
		t.Fatalf("expected ErrGuideNotFound for non-guide account, got %v", err)
	}
}

func TestCreateBooking_FallsBackToSoleGuide(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	req := bookingRequest(uuid.Nil, "2026-10-01")
	req.GuideID = ""
	resp, err := env.bookings.CreateBooking(ctxFor(user.ID), req)
	if err != nil {
		t.Fatalf("expected fallback to the only guide, got %v", err)
	}
	if resp.GuideID != guide.ID {
		t.Fatalf("expected booking assigned to %s, got %s", guide.ID, resp.GuideID)
	}
}

func TestConfirmUserPayment_IsMonotone(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	resp, err := env.bookings.ConfirmUserPayment(ctxFor(user.ID), created.ID)
	if err != nil {
		t.Fatalf("confirm should succeed: %v", err)
	}
	if !resp.UserPaymentConfirmed {
		t.Fatalf("expected user payment flag set")
	}
	if resp.GuidePaymentConfirmed {
		t.Fatalf("guide flag must not move with the user flag")
	}

	// Repeat confirmation is a no-op, not an error
	resp, err = env.bookings.ConfirmUserPayment(ctxFor(user.ID), created.ID)
	if err != nil {
		t.Fatalf("repeat confirm should be a no-op: %v", err)
	}
	if !resp.UserPaymentConfirmed {
		t.Fatalf("flag must stay set")
	}

	stored := env.mustBooking(t, created.ID)
	if !stored.UserPaymentConfirmed || stored.GuidePaymentConfirmed {
		t.Fatalf("persisted flags wrong: user=%v guide=%v", stored.UserPaymentConfirmed, stored.GuidePaymentConfirmed)
	}
}

func TestConfirmUserPayment_RequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	stranger := env.createUser(t, entity.RoleUser, "stranger@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	if _, err := env.bookings.ConfirmUserPayment(ctxFor(stranger.ID), created.ID); err != ErrBookingNotOwned {
		t.Fatalf("expected ErrBookingNotOwned, got %v", err)
	}
	if _, err := env.bookings.GetBookingStatus(ctxFor(stranger.ID), created.ID); err != ErrBookingNotOwned {
		t.Fatalf("expected ErrBookingNotOwned on status read, got %v", err)
	}
}

func TestGetLatestBooking(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	if _, err := env.bookings.GetLatestBooking(ctxFor(user.ID)); err != ErrBookingNotFound {
		t.Fatalf("expected ErrBookingNotFound with no bookings, got %v", err)
	}

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	latest, err := env.bookings.GetLatestBooking(ctxFor(user.ID))
	if err != nil {
		t.Fatalf("latest lookup failed: %v", err)
	}
	if latest.ID != created.ID {
		t.Fatalf("expected latest booking %s, got %s", created.ID, latest.ID)
	}
}

func TestAvailableGuides_ExcludesBusyGuide(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	busy := env.createUser(t, entity.RoleGuide, "busy@example.com")
	free := env.createUser(t, entity.RoleGuide, "free@example.com")

	if _, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(busy.ID, "2026-10-01")); err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	resp, err := env.bookings.AvailableGuides(ctxFor(user.ID), "2026-10-01")
	if err != nil {
		t.Fatalf("availability lookup failed: %v", err)
	}
	if resp.Total != 1 || resp.Guides[0].ID != free.ID {
		t.Fatalf("expected only the free guide, got %+v", resp)
	}

	// Another date frees everyone
	resp, err = env.bookings.AvailableGuides(ctxFor(user.ID), "2026-10-02")
	if err != nil {
		t.Fatalf("availability lookup failed: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected both guides on a free date, got %d", resp.Total)
	}
}

func TestAvailableGuides_DeclinedBookingFreesDate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}
	if _, err := env.bookingRepo.UpdateStatus(env.db, created.ID, entity.BookingStatusPending, entity.BookingStatusDeclined); err != nil {
		t.Fatalf("failed to decline: %v", err)
	}

	resp, err := env.bookings.AvailableGuides(ctxFor(user.ID), "2026-10-01")
	if err != nil {
		t.Fatalf("availability lookup failed: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("declined booking must not block the guide, got %d available", resp.Total)
	}
}

func TestBookedDates(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, entity.RoleUser, "alice@example.com")
	bob := env.createUser(t, entity.RoleUser, "bob@example.com")
	guideA := env.createUser(t, entity.RoleGuide, "guide-a@example.com")
	guideB := env.createUser(t, entity.RoleGuide, "guide-b@example.com")

	if _, err := env.bookings.CreateBooking(ctxFor(alice.ID), bookingRequest(guideA.ID, "2026-10-01")); err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}
	if _, err := env.bookings.CreateBooking(ctxFor(bob.ID), bookingRequest(guideB.ID, "2026-10-03")); err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	all, err := env.bookings.BookedDates(ctxFor(alice.ID), nil)
	if err != nil {
		t.Fatalf("booked dates failed: %v", err)
	}
	if len(all.Dates) != 2 || all.Dates[0] != "2026-10-01" || all.Dates[1] != "2026-10-03" {
		t.Fatalf("expected both dates sorted, got %v", all.Dates)
	}

	scoped, err := env.bookings.BookedDates(ctxFor(alice.ID), &guideB.ID)
	if err != nil {
		t.Fatalf("booked dates failed: %v", err)
	}
	if len(scoped.Dates) != 1 || scoped.Dates[0] != "2026-10-03" {
		t.Fatalf("expected only guide B's date, got %v", scoped.Dates)
	}
}

func TestRateBooking(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	rate := ratingRequest(5, "Great trek")
	if _, err := env.bookings.RateBooking(ctxFor(user.ID), created.ID, rate); err != ErrBookingNotComplete {
		t.Fatalf("rating a pending booking: expected ErrBookingNotComplete, got %v", err)
	}

	if _, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("accepted")); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := env.guideSide.Complete(ctxFor(guide.ID), created.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	resp, err := env.bookings.RateBooking(ctxFor(user.ID), created.ID, rate)
	if err != nil {
		t.Fatalf("rating a completed booking failed: %v", err)
	}
	if resp.Rating == nil || *resp.Rating != 5 || resp.Review != "Great trek" {
		t.Fatalf("rating not applied: %+v", resp)
	}

	avg, count, err := env.bookingRepo.RatingSummary(env.db, guide.ID)
	if err != nil {
		t.Fatalf("rating summary failed: %v", err)
	}
	if avg != 5 || count != 1 {
		t.Fatalf("expected avg=5 count=1, got avg=%v count=%d", avg, count)
	}
}
