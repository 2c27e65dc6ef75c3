package submit_appointments

import "errors"

var (
	// ErrSelectionLimitExceeded возвращается, когда после схлопывания повторов
	// выбрано больше слотов, чем разрешено одной заявкой.
	// Заявка отклоняется целиком, ни один слот не обрабатывается
	ErrSelectionLimitExceeded = errors.New("submit_appointments: selection limit exceeded")

	// ErrEmptySelection возвращается, когда заявка не содержит ни одного слота
	ErrEmptySelection = errors.New("submit_appointments: empty selection")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_appointments: internal error")
)
