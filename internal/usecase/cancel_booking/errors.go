package cancel_booking

import "errors"

var (
	// ErrSlotNotFound возвращается при неизвестной комбинации (владелец, дата, время)
	ErrSlotNotFound = errors.New("cancel_booking: timeslot not found")

	// ErrNoActiveBooking возвращается, когда в слоте нечего отменять
	ErrNoActiveBooking = errors.New("cancel_booking: slot has no active booking")

	// ErrAccessDenied возвращается, когда отменить бронирование пытается
	// не занимающий слот зритель и не владелец расписания
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
