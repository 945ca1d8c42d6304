package handler

import (
	"encoding/json"
	"net/http"

	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/usecase"
	"neptrip-backend/pkg/response"
	"neptrip-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BookingHandler serves the requester-facing side of the booking ledger.
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid booking date, use YYYY-MM-DD")
		case usecase.ErrGuideNotFound:
			response.NotFound(w, "Guide not found")
		case usecase.ErrOngoingTrekExists:
			response.Conflict(w, "You already have an ongoing trek")
		case usecase.ErrGuideUnavailable:
			response.Conflict(w, "Guide is unavailable on this date")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking request sent", booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.GetMyBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBookingStatus(r.Context(), bookingID)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) GetLatestBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingUsecase.GetLatestBooking(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "No bookings yet")
		default:
			response.InternalServerError(w, "Failed to get booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.ConfirmUserPayment(r.Context(), bookingID)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		default:
			response.InternalServerError(w, "Failed to confirm payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", booking)
}

func (h *BookingHandler) RateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	var req dto.RateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.RateBooking(r.Context(), bookingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		case usecase.ErrBookingNotComplete:
			response.InvalidState(w, "Only completed treks can be rated")
		default:
			response.InternalServerError(w, "Failed to rate booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking rated successfully", booking)
}

func (h *BookingHandler) AvailableGuides(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	guides, err := h.bookingUsecase.AvailableGuides(r.Context(), date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to find available guides")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available guides retrieved successfully", guides)
}

func (h *BookingHandler) BookedDates(w http.ResponseWriter, r *http.Request) {
	var guideID *uuid.UUID
	if raw := r.URL.Query().Get("guide"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid guide ID")
			return
		}
		guideID = &id
	}

	dates, err := h.bookingUsecase.BookedDates(r.Context(), guideID)
	if err != nil {
		response.InternalServerError(w, "Failed to get booked dates")
		return
	}

	response.Success(w, http.StatusOK, "Booked dates retrieved successfully", dates)
}

// parseBookingID pulls the booking id path variable, writing a 400 on a
// malformed value.
func parseBookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return uuid.Nil, false
	}
	return bookingID, true
}
