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

type DestinationHandler struct {
	destinationUsecase usecase.DestinationUsecase
	validator          *validator.CustomValidator
}

func NewDestinationHandler(destinationUsecase usecase.DestinationUsecase, validator *validator.CustomValidator) *DestinationHandler {
	return &DestinationHandler{
		destinationUsecase: destinationUsecase,
		validator:          validator,
	}
}

func (h *DestinationHandler) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	destination, err := h.destinationUsecase.CreateDestination(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create destination")
		return
	}

	response.Success(w, http.StatusCreated, "Destination created successfully", destination)
}

func (h *DestinationHandler) GetAllDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.destinationUsecase.GetAllDestinations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get destinations")
		return
	}

	response.Success(w, http.StatusOK, "Destinations retrieved successfully", destinations)
}

func (h *DestinationHandler) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid destination ID")
		return
	}

	destination, err := h.destinationUsecase.GetDestination(r.Context(), id)
	if err != nil {
		if err == usecase.ErrDestinationNotFound {
			response.NotFound(w, "Destination not found")
			return
		}
		response.InternalServerError(w, "Failed to get destination")
		return
	}

	response.Success(w, http.StatusOK, "Destination retrieved successfully", destination)
}
