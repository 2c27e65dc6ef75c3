package get_viewer_bookings

import (
	getViewerBookings "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_viewer_bookings"
)

// BookingResponse одно активное бронирование зрителя
type BookingResponse struct {
	OwnerID   int64   `json:"ownerId"`
	OwnerName *string `json:"ownerName,omitempty"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
}

// ViewerBookingsResponse HTTP response model
type ViewerBookingsResponse struct {
	ViewerID int64             `json:"viewerId"`
	Bookings []BookingResponse `json:"bookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getViewerBookings.Response) *ViewerBookingsResponse {
	bookings := make([]BookingResponse, 0, len(resp.Bookings))

	for _, booking := range resp.Bookings {
		bookings = append(bookings, BookingResponse{
			OwnerID:   booking.OwnerID,
			OwnerName: booking.OwnerName,
			Date:      booking.Date,
			Time:      booking.Time,
		})
	}

	return &ViewerBookingsResponse{
		ViewerID: resp.ViewerID,
		Bookings: bookings,
	}
}
