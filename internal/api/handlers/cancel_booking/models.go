package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	OwnerID int64  `json:"ownerId"`
	Date    string `json:"date"` // "2026-09-01"
	Time    string `json:"time"` // "09:30"
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	OwnerID int64  `json:"ownerId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	State   string `json:"state"` // open | booked

	PromotedViewerID *int64 `json:"promotedViewerId,omitempty"`
	WaitlistCount    int    `json:"waitlistCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(actorID int64) (*cancelBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := time.Parse(domain.TimeFormat, r.Time)
	if err != nil {
		return nil, err
	}

	return &cancelBooking.Request{
		ActorID: actorID,
		OwnerID: r.OwnerID,
		Date:    date,
		Hour:    slotTime.Hour(),
		Minute:  slotTime.Minute(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		OwnerID:          resp.OwnerID,
		Date:             resp.Date.Format(domain.DateFormat),
		Time:             domain.FormatSlotTime(resp.Hour, resp.Minute),
		State:            resp.State,
		PromotedViewerID: resp.PromotedViewerID,
		WaitlistCount:    resp.WaitlistCount,
	}
}
