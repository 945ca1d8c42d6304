package converter

import (
	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:          booking.ID,
		UserID:      booking.UserID,
		GuideID:     booking.GuideID,
		FullName:    booking.FullName,
		Email:       booking.Email,
		Address:     booking.Address,
		Phone:       booking.Phone,
		PeopleCount: booking.PeopleCount,
		Destination: booking.Destination,
		TrekDate:    booking.TrekDate,
		Status:      string(booking.Status),

		PaymentMethod:         string(booking.PaymentMethod),
		PaymentStatus:         string(booking.PaymentStatus),
		PaymentAmount:         booking.PaymentAmount,
		UserPaymentConfirmed:  booking.UserPaymentConfirmed,
		GuidePaymentConfirmed: booking.GuidePaymentConfirmed,

		Rating: booking.Rating,
		Review: booking.Review,

		CompletedAt: booking.CompletedAt,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}

	// Include the related accounts only when preloaded
	if booking.Guide.ID != uuid.Nil {
		response.Guide = UserToSummary(&booking.Guide)
	}
	if booking.User.ID != uuid.Nil {
		response.User = UserToSummary(&booking.User)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// UserToSummary converts a User entity to the trimmed view embedded in
// booking responses
func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Avatar:   user.Avatar,
	}
}
