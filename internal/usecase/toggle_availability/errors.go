package toggle_availability

import "errors"

var (
	// ErrNotOwner возвращается, когда слот переключает не владелец расписания
	ErrNotOwner = errors.New("toggle_availability: caller is not the schedule owner")

	// ErrSlotOccupied возвращается при попытке закрыть слот с активным бронированием
	ErrSlotOccupied = errors.New("toggle_availability: slot has an active booking")

	// ErrDateOutsideWindow возвращается, когда дата вне скользящего окна расписания
	ErrDateOutsideWindow = errors.New("toggle_availability: date is outside the schedule window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("toggle_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("toggle_availability: internal error")
)
