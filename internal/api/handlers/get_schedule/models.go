package get_schedule

import (
	getSchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_schedule"
)

// BookedByResponse зритель, занимающий слот
type BookedByResponse struct {
	UserID int64   `json:"userId"`
	Name   *string `json:"name,omitempty"`
}

// SlotResponse один слот дня
type SlotResponse struct {
	Time          string            `json:"time"`
	State         string            `json:"state"` // closed | open | booked
	BookedBy      *BookedByResponse `json:"bookedBy,omitempty"`
	WaitlistCount int               `json:"waitlistCount"`
}

// DayResponse один день окна расписания
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	OwnerID int64         `json:"ownerId"`
	Days    []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response) *ScheduleResponse {
	days := make([]DayResponse, 0, len(resp.Days))

	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			respSlot := SlotResponse{
				Time:          slot.Time,
				State:         slot.State,
				WaitlistCount: slot.WaitlistCount,
			}
			if slot.BookedBy != nil {
				respSlot.BookedBy = &BookedByResponse{
					UserID: slot.BookedBy.UserID,
					Name:   slot.BookedBy.Name,
				}
			}
			slots = append(slots, respSlot)
		}
		days = append(days, DayResponse{Date: day.Date, Slots: slots})
	}

	return &ScheduleResponse{
		OwnerID: resp.OwnerID,
		Days:    days,
	}
}
