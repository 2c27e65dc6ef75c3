package withdraw_waitlist

import "errors"

var (
	// ErrSlotNotFound возвращается при неизвестной комбинации (владелец, дата, время)
	ErrSlotNotFound = errors.New("withdraw_waitlist: timeslot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("withdraw_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("withdraw_waitlist: internal error")
)
