package handler

import (
	"encoding/json"
	"net/http"

	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/usecase"
	"neptrip-backend/pkg/response"
	"neptrip-backend/pkg/validator"
)

// GuideBookingHandler serves the guide-facing side of the booking ledger.
type GuideBookingHandler struct {
	guideBookingUsecase usecase.GuideBookingUsecase
	validator           *validator.CustomValidator
}

func NewGuideBookingHandler(guideBookingUsecase usecase.GuideBookingUsecase, validator *validator.CustomValidator) *GuideBookingHandler {
	return &GuideBookingHandler{
		guideBookingUsecase: guideBookingUsecase,
		validator:           validator,
	}
}

func (h *GuideBookingHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.guideBookingUsecase.GetRequests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get booking requests")
		return
	}

	response.Success(w, http.StatusOK, "Booking requests retrieved successfully", requests)
}

func (h *GuideBookingHandler) SearchBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.SearchBookingsRequest{
		Status: query.Get("status"),
		Query:  query.Get("q"),
		Sort:   query.Get("sort"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bookings, err := h.guideBookingUsecase.SearchBookings(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to search bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *GuideBookingHandler) Respond(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	var req dto.RespondBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.guideBookingUsecase.Respond(r.Context(), bookingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		case usecase.ErrBookingAlreadyResolved:
			response.InvalidState(w, "Booking has already been resolved")
		default:
			response.InternalServerError(w, "Failed to respond to booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking "+req.Status, booking)
}

func (h *GuideBookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.guideBookingUsecase.Complete(r.Context(), bookingID)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		case usecase.ErrBookingNotAccepted:
			response.InvalidState(w, "Only accepted bookings can be completed")
		default:
			response.InternalServerError(w, "Failed to complete booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Tour completed", booking)
}

func (h *GuideBookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	var req dto.ConfirmGuidePaymentRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.guideBookingUsecase.ConfirmGuidePayment(r.Context(), bookingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		case usecase.ErrNegativeAmount:
			response.BadRequest(w, "Payment amount must not be negative")
		default:
			response.InternalServerError(w, "Failed to confirm payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", booking)
}

func (h *GuideBookingHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.guideBookingUsecase.UpdatePaymentStatus(r.Context(), bookingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		case usecase.ErrNegativeAmount:
			response.BadRequest(w, "Payment amount must not be negative")
		default:
			response.InternalServerError(w, "Failed to update payment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment status updated", booking)
}

func (h *GuideBookingHandler) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.guideBookingUsecase.UpdatePaymentMethod(r.Context(), bookingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		default:
			response.InternalServerError(w, "Failed to update payment method")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment method updated", booking)
}
