package toggle_availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	toggleAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/toggle_availability"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Date string `json:"date"` // "2026-09-01"
	Time string `json:"time"` // "09:30"
}

// SlotResponse HTTP response model
type SlotResponse struct {
	OwnerID int64  `json:"ownerId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	State   string `json:"state"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ToggleSlotRequest) ToUseCaseRequest(actorID, ownerID int64) (*toggleAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := time.Parse(domain.TimeFormat, r.Time)
	if err != nil {
		return nil, err
	}

	return &toggleAvailability.Request{
		ActorID: actorID,
		OwnerID: ownerID,
		Date:    date,
		Hour:    slotTime.Hour(),
		Minute:  slotTime.Minute(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *toggleAvailability.Response) *SlotResponse {
	return &SlotResponse{
		OwnerID: resp.OwnerID,
		Date:    resp.Date.Format(domain.DateFormat),
		Time:    domain.FormatSlotTime(resp.Hour, resp.Minute),
		State:   resp.State,
	}
}
