package toggle_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	key := domain.SlotKey{
		OwnerID: req.OwnerID,
		Date:    domain.DateOnly(req.Date),
		Hour:    req.Hour,
		Minute:  req.Minute,
	}
	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Переключать можно только дни скользящего окна: прошедшие дни уже
	// удалены, дни за горизонтом ещё не опубликованы
	today := domain.DateOnly(now)
	windowEnd := today.AddDate(0, 0, domain.ScheduleWindowDays-1)
	if key.Date.Before(today) || key.Date.After(windowEnd) {
		return fmt.Errorf("%w: %s", ErrDateOutsideWindow, key.Date.Format(domain.DateFormat))
	}

	return nil
}
