package submit_appointments

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	submitAppointments "github.com/m04kA/SMC-ScheduleService/internal/usecase/submit_appointments"
)

// SlotSelection один выбранный слот в HTTP запросе
type SlotSelection struct {
	OwnerID int64  `json:"ownerId"`
	Date    string `json:"date"` // "2026-09-01"
	Time    string `json:"time"` // "09:30"
}

// SubmitAppointmentsRequest HTTP request model
type SubmitAppointmentsRequest struct {
	Selections []SlotSelection `json:"selections"`
}

// SlotOutcomeResponse результат обработки одного слота
type SlotOutcomeResponse struct {
	OwnerID  int64  `json:"ownerId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`             // booked | waitlisted | failed
	Position *int   `json:"position,omitempty"` // только для waitlisted
	Reason   string `json:"reason,omitempty"`   // только для failed
}

// SubmitAppointmentsResponse HTTP response model
type SubmitAppointmentsResponse struct {
	Results []SlotOutcomeResponse `json:"results"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitAppointmentsRequest) ToUseCaseRequest(viewerID int64) (*submitAppointments.Request, error) {
	selections := make([]submitAppointments.Selection, 0, len(r.Selections))

	for _, sel := range r.Selections {
		date, err := time.Parse(domain.DateFormat, sel.Date)
		if err != nil {
			return nil, err
		}

		slotTime, err := time.Parse(domain.TimeFormat, sel.Time)
		if err != nil {
			return nil, err
		}

		selections = append(selections, submitAppointments.Selection{
			OwnerID: sel.OwnerID,
			Date:    date,
			Hour:    slotTime.Hour(),
			Minute:  slotTime.Minute(),
		})
	}

	return &submitAppointments.Request{
		ViewerID:   viewerID,
		Selections: selections,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitAppointments.Response) *SubmitAppointmentsResponse {
	results := make([]SlotOutcomeResponse, 0, len(resp.Results))

	for _, result := range resp.Results {
		results = append(results, SlotOutcomeResponse{
			OwnerID:  result.OwnerID,
			Date:     result.Date.Format(domain.DateFormat),
			Time:     domain.FormatSlotTime(result.Hour, result.Minute),
			Status:   result.Status,
			Position: result.Position,
			Reason:   result.Reason,
		})
	}

	return &SubmitAppointmentsResponse{Results: results}
}
