package usecase

import (
	"testing"

	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"
)

func TestCreateGuide(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.guides.CreateGuide(ctxFor(env.createUser(t, entity.RoleAdmin, "admin@example.com").ID), &dto.CreateGuideRequest{
		FullName: "Pemba Sherpa",
		Email:    "pemba@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create guide failed: %v", err)
	}
	if resp.Role != entity.RoleGuide {
		t.Fatalf("expected guide role, got %q", resp.Role)
	}

	profile, err := env.profileRepo.FindByUserID(env.db, resp.ID)
	if err != nil || profile == nil {
		t.Fatalf("expected guide profile created: %v", err)
	}

	// Duplicate email is rejected
	if _, err := env.guides.CreateGuide(ctxFor(resp.ID), &dto.CreateGuideRequest{
		FullName: "Pemba Again",
		Email:    "pemba@example.com",
		Password: "secret123",
	}); err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestDeleteGuide_DeclinesActiveBookings(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}

	if err := env.guides.DeleteGuide(ctxFor(user.ID), guide.ID); err != nil {
		t.Fatalf("delete guide failed: %v", err)
	}

	// Account and profile gone, booking force-declined but kept
	deleted, err := env.userRepo.FindByID(env.db, guide.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if deleted != nil {
		t.Fatalf("guide account should be gone")
	}
	profile, err := env.profileRepo.FindByUserID(env.db, guide.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if profile != nil {
		t.Fatalf("guide profile should be gone")
	}

	stored := env.mustBooking(t, created.ID)
	if stored.Status != entity.BookingStatusDeclined {
		t.Fatalf("expected booking force-declined, got %q", stored.Status)
	}

	// The requester's one-active slot is free again
	other := env.createUser(t, entity.RoleGuide, "other@example.com")
	if _, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(other.ID, "2026-11-01")); err != nil {
		t.Fatalf("expected booking allowed after force-decline, got %v", err)
	}
}

func TestDeleteGuide_UnknownGuide(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")

	if err := env.guides.DeleteGuide(ctxFor(user.ID), user.ID); err != ErrGuideNotFound {
		t.Fatalf("expected ErrGuideNotFound for non-guide account, got %v", err)
	}
}

func TestGetGuide_RatingProjection(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, entity.RoleUser, "user@example.com")
	guide := env.createUser(t, entity.RoleGuide, "guide@example.com")

	resp, err := env.guides.GetGuide(ctxFor(user.ID), guide.ID)
	if err != nil {
		t.Fatalf("get guide failed: %v", err)
	}
	if resp.AverageRating != 0 || resp.ReviewCount != 0 {
		t.Fatalf("unrated guide must project zero, got %+v", resp)
	}

	created, err := env.bookings.CreateBooking(ctxFor(user.ID), bookingRequest(guide.ID, "2026-10-01"))
	if err != nil {
		t.Fatalf("booking should succeed: %v", err)
	}
	if _, err := env.guideSide.Respond(ctxFor(guide.ID), created.ID, respondRequest("accepted")); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := env.guideSide.Complete(ctxFor(guide.ID), created.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if _, err := env.bookings.RateBooking(ctxFor(user.ID), created.ID, ratingRequest(4, "Good")); err != nil {
		t.Fatalf("rating failed: %v", err)
	}

	resp, err = env.guides.GetGuide(ctxFor(user.ID), guide.ID)
	if err != nil {
		t.Fatalf("get guide failed: %v", err)
	}
	if resp.AverageRating != 4 || resp.ReviewCount != 1 {
		t.Fatalf("expected avg 4 over 1 review, got %+v", resp)
	}
	if resp.TrekCount != 1 {
		t.Fatalf("expected trek count 1, got %d", resp.TrekCount)
	}
}
