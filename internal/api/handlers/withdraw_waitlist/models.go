package withdraw_waitlist

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	withdrawWaitlist "github.com/m04kA/SMC-ScheduleService/internal/usecase/withdraw_waitlist"
)

// WithdrawWaitlistRequest HTTP request model
type WithdrawWaitlistRequest struct {
	OwnerID int64  `json:"ownerId"`
	Date    string `json:"date"` // "2026-09-01"
	Time    string `json:"time"` // "09:30"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *WithdrawWaitlistRequest) ToUseCaseRequest(viewerID int64) (*withdrawWaitlist.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotTime, err := time.Parse(domain.TimeFormat, r.Time)
	if err != nil {
		return nil, err
	}

	return &withdrawWaitlist.Request{
		ViewerID: viewerID,
		OwnerID:  r.OwnerID,
		Date:     date,
		Hour:     slotTime.Hour(),
		Minute:   slotTime.Minute(),
	}, nil
}
